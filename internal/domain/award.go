package domain

// Award type values. A festival can hand the same award name to a winner and
// to nominees in the same year, so the type is part of the award's identity.
const (
	AwardTypeWinner  = "WINNER"
	AwardTypeNominee = "NOMINEE"
)

// Award represents a festival or association award attributed to the company.
// An award is identified by year, name, type and category together; none of
// those fields alone is unique.
type Award struct {
	ID        string `json:"id"`
	Year      int    `json:"year"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Category  string `json:"category"`
	Recipient string `json:"recipient,omitempty"`

	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}
