package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrInsufficientStock is returned when a dispense would drive the stock of a
// medication negative.
var ErrInsufficientStock = errors.New("insufficient stock")

type MedicationRepository interface {
	Create(ctx context.Context, m *Medication) error
	GetByID(ctx context.Context, id uuid.UUID) (*Medication, error)
	Update(ctx context.Context, m *Medication) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, query string, limit, offset int) ([]*Medication, int, error)
	ListLowStock(ctx context.Context) ([]*Medication, error)
	// Stock movements
	IncrementStock(ctx context.Context, id uuid.UUID, qty int) error
	DecrementStock(ctx context.Context, id uuid.UUID, qty int) error
	// Receipts
	AddReceipt(ctx context.Context, receipt *StockReceipt) error
	GetReceipts(ctx context.Context, medicationID uuid.UUID) ([]*StockReceipt, error)
}

type DispenseRepository interface {
	Create(ctx context.Context, d *Dispense) error
	List(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Dispense, int, error)
}
