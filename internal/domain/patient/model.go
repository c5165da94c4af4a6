// Package patient covers registration and lookup of the people a health unit
// serves, plus the per-patient clinical profile.
package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patient table.
type Patient struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	FirstName       string     `db:"first_name" json:"first_name"`
	LastName        string     `db:"last_name" json:"last_name"`
	Sex             string     `db:"sex" json:"sex"`
	DateOfBirth     *time.Time `db:"date_of_birth" json:"date_of_birth,omitempty"`
	AgeMonths       *int       `db:"age_months" json:"age_months,omitempty"`
	Village         *string    `db:"village" json:"village,omitempty"`
	GuardianName    *string    `db:"guardian_name" json:"guardian_name,omitempty"`
	GuardianContact *string    `db:"guardian_contact" json:"guardian_contact,omitempty"`
	RegisteredBy    *string    `db:"registered_by" json:"registered_by,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

// PatientProfile maps to the patient_profile table. A profile row is created
// automatically by a database trigger when the patient is registered, so the
// API only ever reads or updates it.
type PatientProfile struct {
	ID                uuid.UUID `db:"id" json:"id"`
	PatientID         uuid.UUID `db:"patient_id" json:"patient_id"`
	BloodType         *string   `db:"blood_type" json:"blood_type,omitempty"`
	Allergies         *string   `db:"allergies" json:"allergies,omitempty"`
	ChronicConditions *string   `db:"chronic_conditions" json:"chronic_conditions,omitempty"`
	ImmunizationNotes *string   `db:"immunization_notes" json:"immunization_notes,omitempty"`
	Notes             *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}
