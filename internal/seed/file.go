package seed

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/stagedoor/greenroom/internal/domain"
	"github.com/stagedoor/greenroom/internal/reconcile"
)

// CatalogSchemaV1 is the schema header an overlay file must carry.
const CatalogSchemaV1 = "greenroom.catalog.v1"

type catalogFile struct {
	Schema      string            `yaml:"schema"`
	Productions []productionEntry `yaml:"productions,omitempty"`
	Members     []memberEntry     `yaml:"members,omitempty"`
	Awards      []awardEntry      `yaml:"awards,omitempty"`
	Products    []productEntry    `yaml:"products,omitempty"`
}

type productionEntry struct {
	Title    string `yaml:"title"`
	Season   string `yaml:"season"`
	Venue    string `yaml:"venue,omitempty"`
	OpensOn  string `yaml:"opens_on,omitempty"`
	ClosesOn string `yaml:"closes_on,omitempty"`
	Synopsis string `yaml:"synopsis,omitempty"`
	Archived bool   `yaml:"archived,omitempty"`
}

type memberEntry struct {
	FirstName  string `yaml:"first_name"`
	LastName   string `yaml:"last_name"`
	JoinedYear int    `yaml:"joined_year,omitempty"`
	Bio        string `yaml:"bio,omitempty"`
	Archived   bool   `yaml:"archived,omitempty"`
}

type awardEntry struct {
	Year      int    `yaml:"year"`
	Name      string `yaml:"name"`
	Type      string `yaml:"type"`
	Category  string `yaml:"category"`
	Recipient string `yaml:"recipient,omitempty"`
}

type productEntry struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	PriceCents  int    `yaml:"price_cents,omitempty"`
	Badge       string `yaml:"badge,omitempty"`
	Archived    bool   `yaml:"archived,omitempty"`
}

// ParseCatalog decodes and validates an overlay file. Validation rejects the
// whole file before any store contact: unknown schema, missing identity
// fields, bad award types and entries that collide on an alternate key are
// all parse-time errors, not seed-time ones.
func ParseCatalog(input []byte) (Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(input, &file); err != nil {
		return Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}
	if strings.TrimSpace(file.Schema) != CatalogSchemaV1 {
		return Catalog{}, fmt.Errorf("catalog.schema must be %q", CatalogSchemaV1)
	}

	var catalog Catalog

	seenProductions := make(map[ProductionKey]struct{}, len(file.Productions))
	for i, e := range file.Productions {
		if strings.TrimSpace(e.Title) == "" {
			return Catalog{}, fmt.Errorf("catalog.productions[%d].title is required", i)
		}
		if strings.TrimSpace(e.Season) == "" {
			return Catalog{}, fmt.Errorf("catalog.productions[%d].season is required", i)
		}
		p := domain.Production{
			Title:    e.Title,
			Season:   e.Season,
			Venue:    e.Venue,
			OpensOn:  e.OpensOn,
			ClosesOn: e.ClosesOn,
			Synopsis: e.Synopsis,
			Archived: e.Archived,
		}
		k := ProductionKeyOf(p)
		if _, ok := seenProductions[k]; ok {
			return Catalog{}, fmt.Errorf("catalog.productions[%d] must be unique (duplicate %q in season %q)", i, e.Title, e.Season)
		}
		seenProductions[k] = struct{}{}
		catalog.Productions = append(catalog.Productions, p)
	}

	seenMembers := make(map[MemberKey]struct{}, len(file.Members))
	for i, e := range file.Members {
		if strings.TrimSpace(e.FirstName) == "" {
			return Catalog{}, fmt.Errorf("catalog.members[%d].first_name is required", i)
		}
		if strings.TrimSpace(e.LastName) == "" {
			return Catalog{}, fmt.Errorf("catalog.members[%d].last_name is required", i)
		}
		m := domain.Member{
			FirstName:  e.FirstName,
			LastName:   e.LastName,
			JoinedYear: e.JoinedYear,
			Bio:        e.Bio,
			Archived:   e.Archived,
		}
		k := MemberKeyOf(m)
		if _, ok := seenMembers[k]; ok {
			return Catalog{}, fmt.Errorf("catalog.members[%d] must be unique (duplicate %q %q)", i, e.FirstName, e.LastName)
		}
		seenMembers[k] = struct{}{}
		catalog.Members = append(catalog.Members, m)
	}

	seenAwards := make(map[AwardKey]struct{}, len(file.Awards))
	for i, e := range file.Awards {
		if e.Year <= 0 {
			return Catalog{}, fmt.Errorf("catalog.awards[%d].year is required", i)
		}
		if strings.TrimSpace(e.Name) == "" {
			return Catalog{}, fmt.Errorf("catalog.awards[%d].name is required", i)
		}
		if e.Type != domain.AwardTypeWinner && e.Type != domain.AwardTypeNominee {
			return Catalog{}, fmt.Errorf("catalog.awards[%d].type must be %s or %s", i, domain.AwardTypeWinner, domain.AwardTypeNominee)
		}
		if strings.TrimSpace(e.Category) == "" {
			return Catalog{}, fmt.Errorf("catalog.awards[%d].category is required", i)
		}
		a := domain.Award{
			Year:      e.Year,
			Name:      e.Name,
			Type:      e.Type,
			Category:  e.Category,
			Recipient: e.Recipient,
		}
		k := AwardKeyOf(a)
		if _, ok := seenAwards[k]; ok {
			return Catalog{}, fmt.Errorf("catalog.awards[%d] must be unique (duplicate %q, %d, %s, %s)", i, e.Name, e.Year, e.Type, e.Category)
		}
		seenAwards[k] = struct{}{}
		catalog.Awards = append(catalog.Awards, a)
	}

	seenProducts := make(map[ProductKey]struct{}, len(file.Products))
	for i, e := range file.Products {
		if strings.TrimSpace(e.Name) == "" {
			return Catalog{}, fmt.Errorf("catalog.products[%d].name is required", i)
		}
		p := domain.Product{
			Name:        e.Name,
			Description: e.Description,
			PriceCents:  e.PriceCents,
			Badge:       e.Badge,
			Archived:    e.Archived,
		}
		k := ProductKeyOf(p)
		if _, ok := seenProducts[k]; ok {
			return Catalog{}, fmt.Errorf("catalog.products[%d] must be unique (duplicate %q)", i, e.Name)
		}
		seenProducts[k] = struct{}{}
		catalog.Products = append(catalog.Products, p)
	}

	return catalog, nil
}

// Merge layers an overlay catalog over a base one. An overlay entry replaces
// the base entry with the same alternate key and is appended otherwise, so a
// deployment can retouch one award without restating the whole catalog.
func Merge(base, overlay Catalog) Catalog {
	return Catalog{
		Productions: mergeByKey(base.Productions, overlay.Productions, ProductionKeyOf),
		Members:     mergeByKey(base.Members, overlay.Members, MemberKeyOf),
		Awards:      mergeByKey(base.Awards, overlay.Awards, AwardKeyOf),
		Products:    mergeByKey(base.Products, overlay.Products, ProductKeyOf),
	}
}

func mergeByKey[E any, K comparable](base, overlay []E, key reconcile.KeyFunc[E, K]) []E {
	if len(overlay) == 0 {
		return base
	}

	merged := make([]E, len(base))
	copy(merged, base)

	index := make(map[K]int, len(merged))
	for i, e := range merged {
		index[key(e)] = i
	}

	for _, e := range overlay {
		if i, ok := index[key(e)]; ok {
			merged[i] = e
			continue
		}
		index[key(e)] = len(merged)
		merged = append(merged, e)
	}

	return merged
}
