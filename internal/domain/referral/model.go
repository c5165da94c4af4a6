// Package referral handles transfers of a patient's case to a higher
// facility, with an urgency tier and an accept/decline workflow.
package referral

import (
	"time"

	"github.com/google/uuid"
)

// Referral urgencies, matching the tiers the decision support module emits.
const (
	UrgencyRoutine   = "routine"
	UrgencyUrgent    = "urgent"
	UrgencyEmergency = "emergency"
)

// Referral statuses. A referral starts pending; the receiving facility
// accepts or declines it, an accepted referral moves in-transit and then
// completes.
const (
	StatusPending   = "pending"
	StatusAccepted  = "accepted"
	StatusDeclined  = "declined"
	StatusInTransit = "in-transit"
	StatusCompleted = "completed"
)

// Referral maps to the referral table.
type Referral struct {
	ID           uuid.UUID `db:"id" json:"id"`
	CaseID       uuid.UUID `db:"case_id" json:"case_id"`
	PatientID    uuid.UUID `db:"patient_id" json:"patient_id"`
	FromFacility string    `db:"from_facility" json:"from_facility"`
	ToFacility   string    `db:"to_facility" json:"to_facility"`
	Reason       string    `db:"reason" json:"reason"`
	Urgency      string    `db:"urgency" json:"urgency"`
	Status       string    `db:"status" json:"status"`
	ReferredBy   *string   `db:"referred_by" json:"referred_by,omitempty"`
	Note         *string   `db:"note" json:"note,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
