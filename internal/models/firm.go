package models

import "time"

// LawFirm is an attorney office that can host a closing.
// Coordinates is nil until the firm address has been geocoded.
type LawFirm struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	StreetAddress string       `json:"street_address"`
	City          string       `json:"city"`
	State         string       `json:"state"`
	ZipCode       string       `json:"zip_code"`
	Phone         string       `json:"phone"`
	Email         string       `json:"email"`
	Website       string       `json:"website,omitempty"`
	Coordinates   *Coordinates `json:"coordinates,omitempty"`
	Rating        float64      `json:"rating"`
	ReviewsCount  int          `json:"reviews_count"`
	Specialties   []string     `json:"specialties"`
	Hours         string       `json:"hours"`
	IsActive      bool         `json:"is_active"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// RankedFirm is a law firm with its distance in miles from the searched location.
type RankedFirm struct {
	LawFirm

	Distance float64 `json:"distance"`
}
