package models

// NewClient carries already validated registration data into the data layer.
type NewClient struct {
	FirstName string
	LastName  string
	Email     string
	Telephone string
	Pesel     string
}

type Client struct {
	ID        int64  `db:"id" json:"id"`
	FirstName string `db:"first_name" json:"firstName"`
	LastName  string `db:"last_name" json:"lastName"`
	Email     string `db:"email" json:"email"`
	Telephone string `db:"telephone" json:"telephone"`
	Pesel     string `db:"pesel" json:"pesel"`
}
