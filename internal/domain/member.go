package domain

// Member represents a company member: an actor, director or crew member
// listed on the site. Members are identified by first and last name.
type Member struct {
	ID         string `json:"id"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	JoinedYear int    `json:"joinedYear,omitempty"`
	Bio        string `json:"bio,omitempty"`
	Archived   bool   `json:"archived"`

	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}
