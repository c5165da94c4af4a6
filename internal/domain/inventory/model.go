// Package inventory manages the medication catalog, stock levels and
// dispensing. Stock moves only through receipts and dispenses, and a dispense
// that would drive stock negative is refused.
package inventory

import (
	"time"

	"github.com/google/uuid"
)

// Medication maps to the medication table.
type Medication struct {
	ID               uuid.UUID `db:"id" json:"id"`
	Name             string    `db:"name" json:"name"`
	GenericName      *string   `db:"generic_name" json:"generic_name,omitempty"`
	Form             *string   `db:"form" json:"form,omitempty"`
	Strength         *string   `db:"strength" json:"strength,omitempty"`
	Unit             string    `db:"unit" json:"unit"`
	StockQuantity    int       `db:"stock_quantity" json:"stock_quantity"`
	ReorderThreshold int       `db:"reorder_threshold" json:"reorder_threshold"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// StockReceipt maps to the stock_receipt table: one incoming delivery.
type StockReceipt struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	MedicationID uuid.UUID  `db:"medication_id" json:"medication_id"`
	Quantity     int        `db:"quantity" json:"quantity"`
	BatchNumber  *string    `db:"batch_number" json:"batch_number,omitempty"`
	ExpiryDate   *time.Time `db:"expiry_date" json:"expiry_date,omitempty"`
	ReceivedBy   *string    `db:"received_by" json:"received_by,omitempty"`
	Note         *string    `db:"note" json:"note,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}

// Dispense maps to the dispense table: one hand-out of medication to a
// patient, optionally tied to a case.
type Dispense struct {
	ID                 uuid.UUID  `db:"id" json:"id"`
	MedicationID       uuid.UUID  `db:"medication_id" json:"medication_id"`
	PatientID          uuid.UUID  `db:"patient_id" json:"patient_id"`
	CaseID             *uuid.UUID `db:"case_id" json:"case_id,omitempty"`
	Quantity           int        `db:"quantity" json:"quantity"`
	DosageInstructions *string    `db:"dosage_instructions" json:"dosage_instructions,omitempty"`
	DispensedBy        *string    `db:"dispensed_by" json:"dispensed_by,omitempty"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
}
