package domain

// Production represents a staged show in a given season (e.g. "Our Town",
// season "2014-2015"). Title and season together identify a production; the
// same title restaged in a later season is a separate record.
type Production struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Season   string `json:"season"`
	Venue    string `json:"venue,omitempty"`
	OpensOn  string `json:"opensOn,omitempty"`
	ClosesOn string `json:"closesOn,omitempty"`
	Synopsis string `json:"synopsis,omitempty"`
	Archived bool   `json:"archived"`

	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}
