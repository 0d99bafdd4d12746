package domain

// Product represents an item in the company shop (posters, tickets,
// merchandise). Product names are unique across the shop.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	PriceCents  int    `json:"priceCents"`
	Badge       string `json:"badge,omitempty"`
	Archived    bool   `json:"archived"`

	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}
