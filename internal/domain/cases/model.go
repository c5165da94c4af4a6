// Package cases tracks clinical visits: one case per presenting complaint,
// with a vitals snapshot, a status lifecycle and free-text visit notes.
package cases

import (
	"time"

	"github.com/google/uuid"
)

// Case statuses. A case opens at registration and moves
// open -> in-treatment -> referred or closed.
const (
	StatusOpen        = "open"
	StatusInTreatment = "in-treatment"
	StatusReferred    = "referred"
	StatusClosed      = "closed"
)

// Case maps to the clinical_case table.
type Case struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	PatientID       uuid.UUID  `db:"patient_id" json:"patient_id"`
	ChiefComplaint  string     `db:"chief_complaint" json:"chief_complaint"`
	Status          string     `db:"status" json:"status"`
	Temperature     *float64   `db:"temperature" json:"temperature,omitempty"`
	RespiratoryRate *int       `db:"respiratory_rate" json:"respiratory_rate,omitempty"`
	WeightKg        *float64   `db:"weight_kg" json:"weight_kg,omitempty"`
	MUAC            *float64   `db:"muac" json:"muac,omitempty"`
	FollowUpDate    *time.Time `db:"follow_up_date" json:"follow_up_date,omitempty"`
	CreatedBy       *string    `db:"created_by" json:"created_by,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

// CaseNote maps to the case_note table.
type CaseNote struct {
	ID        uuid.UUID `db:"id" json:"id"`
	CaseID    uuid.UUID `db:"case_id" json:"case_id"`
	Author    *string   `db:"author" json:"author,omitempty"`
	Body      string    `db:"body" json:"body"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
