package models

import "time"

// TripSummary is the read projection of a trip returned by the listings.
// Country holds at most one associated country name; nil when the trip has none.
type TripSummary struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	DateFrom    time.Time `db:"date_from" json:"dateFrom"`
	DateTo      time.Time `db:"date_to" json:"dateTo"`
	MaxPeople   int       `db:"max_people" json:"maxPeople"`
	Country     *string   `db:"country_name" json:"country"`
}
