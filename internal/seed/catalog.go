package seed

import "github.com/stagedoor/greenroom/internal/domain"

// Catalog is the full set of reference data a deployment reconciles at
// startup. Entries never carry ids; the store assigns those.
type Catalog struct {
	Productions []domain.Production
	Members     []domain.Member
	Awards      []domain.Award
	Products    []domain.Product
}

// Builtin returns the stock catalog shipped with the binary. A deployment can
// replace or extend individual entries with an overlay file; see ParseCatalog.
func Builtin() Catalog {
	return Catalog{
		Productions: []domain.Production{
			{
				Title:    "Twelfth Night",
				Season:   "2013-2014",
				Venue:    "Memorial Hall",
				OpensOn:  "2014-03-07",
				ClosesOn: "2014-03-15",
				Synopsis: "Shipwrecks, disguises and misdirected love in Illyria.",
			},
			{
				Title:    "Our Town",
				Season:   "2014-2015",
				Venue:    "Memorial Hall",
				OpensOn:  "2014-11-14",
				ClosesOn: "2014-11-22",
				Synopsis: "Thornton Wilder's portrait of Grover's Corners, staged without scenery.",
			},
			{
				Title:    "The Pirates of Penzance",
				Season:   "2015-2016",
				Venue:    "Riverside Pavilion",
				OpensOn:  "2016-06-10",
				ClosesOn: "2016-06-25",
				Synopsis: "Gilbert and Sullivan's very model of a modern comic operetta.",
			},
			{
				Title:    "A Midsummer Night's Dream",
				Season:   "2016-2017",
				Venue:    "Memorial Hall",
				OpensOn:  "2017-02-17",
				ClosesOn: "2017-02-25",
				Synopsis: "Lovers, fairies and rude mechanicals loose in the same wood.",
			},
		},
		Members: []domain.Member{
			{FirstName: "Alice", LastName: "Hartley", JoinedYear: 2012, Bio: "Founding member and frequent lead."},
			{FirstName: "Ben", LastName: "Okafor", JoinedYear: 2013, Bio: "Director of the annual musical."},
			{FirstName: "Carol", LastName: "Jennings", JoinedYear: 2014, Bio: "Stage manager and props workshop lead."},
			{FirstName: "Dana", LastName: "Whitfield", JoinedYear: 2015, Bio: "Lighting and sound designer."},
			{FirstName: "Eli", LastName: "Moreno", JoinedYear: 2016, Bio: "Set construction and front of house."},
		},
		Awards: []domain.Award{
			{Year: 2015, Name: "Best Ensemble", Type: domain.AwardTypeWinner, Category: "PLAY", Recipient: "Alice Hartley"},
			{Year: 2015, Name: "Best Director", Type: domain.AwardTypeNominee, Category: "PLAY", Recipient: "Ben Okafor"},
			{Year: 2016, Name: "Best Musical Direction", Type: domain.AwardTypeWinner, Category: "MUSICAL", Recipient: "Ben Okafor"},
			{Year: 2017, Name: "Best Ensemble", Type: domain.AwardTypeNominee, Category: "PLAY", Recipient: "The Company"},
		},
		Products: []domain.Product{
			{Name: "Season Poster", Description: "A2 poster for the current season.", PriceCents: 1500, Badge: "NEW"},
			{Name: "Tote Bag", Description: "Canvas tote with the company crest.", PriceCents: 1200},
			{Name: "Enamel Pin", Description: "Collectible pin, one design per season.", PriceCents: 800},
		},
	}
}
