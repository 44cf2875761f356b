package models

import (
	"fmt"
	"time"
)

// ApplicationStatus is the review state of a law firm application.
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusApproved ApplicationStatus = "approved"
	StatusDenied   ApplicationStatus = "denied"
)

// Application is a law firm's request to be listed.
type Application struct {
	ID                  string            `json:"id"`
	FirmName            string            `json:"firm_name"             validate:"required"`
	ContactPersonName   string            `json:"contact_person_name"   validate:"required"`
	ContactPersonTitle  string            `json:"contact_person_title"  validate:"required"`
	StreetAddress       string            `json:"street_address"        validate:"required"`
	City                string            `json:"city"                  validate:"required"`
	State               string            `json:"state"                 validate:"required"`
	ZipCode             string            `json:"zip_code"              validate:"required"`
	Phone               string            `json:"phone"                 validate:"required"`
	Email               string            `json:"email"                 validate:"required,email"`
	Website             string            `json:"website,omitempty"     validate:"omitempty,url"`
	YearsInBusiness     string            `json:"years_in_business"`
	NumberOfAttorneys   string            `json:"number_of_attorneys"`
	Specialties         []string          `json:"specialties"`
	ServicesOffered     []string          `json:"services_offered"`
	AverageClosingTime  string            `json:"average_closing_time"`
	BusinessHours       string            `json:"business_hours"`
	WeekendAvailability bool              `json:"weekend_availability"`
	EmergencyServices   bool              `json:"emergency_services"`
	AdditionalInfo      string            `json:"additional_info,omitempty"`
	TermsAccepted       bool              `json:"terms_accepted"        validate:"eq=true"`
	MarketingConsent    bool              `json:"marketing_consent"`
	Status              ApplicationStatus `json:"status"`
	AdminNotes          string            `json:"admin_notes,omitempty"`
	ReviewedBy          string            `json:"reviewed_by,omitempty"`
	ReviewedAt          *time.Time        `json:"reviewed_at,omitempty"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
}

// PostalAddress formats the application address for geocoding.
func (a Application) PostalAddress() string {
	return fmt.Sprintf("%s, %s, %s %s", a.StreetAddress, a.City, a.State, a.ZipCode)
}

// Review carries an admin decision on an application.
type Review struct {
	Notes      string
	ReviewedBy string
}
