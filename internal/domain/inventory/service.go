package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// TxRunner executes fn inside a database transaction carried on the context.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

type Service struct {
	medications MedicationRepository
	dispenses   DispenseRepository
	runTx       TxRunner
}

func NewService(medications MedicationRepository, dispenses DispenseRepository, runTx TxRunner) *Service {
	return &Service{medications: medications, dispenses: dispenses, runTx: runTx}
}

func (s *Service) CreateMedication(ctx context.Context, m *Medication) error {
	if m.Name == "" {
		return fmt.Errorf("name is required")
	}
	if m.Unit == "" {
		return fmt.Errorf("unit is required")
	}
	if m.StockQuantity < 0 {
		return fmt.Errorf("stock_quantity cannot be negative")
	}
	return s.medications.Create(ctx, m)
}

func (s *Service) GetMedication(ctx context.Context, id uuid.UUID) (*Medication, error) {
	return s.medications.GetByID(ctx, id)
}

func (s *Service) UpdateMedication(ctx context.Context, m *Medication) error {
	if m.Name == "" {
		return fmt.Errorf("name is required")
	}
	return s.medications.Update(ctx, m)
}

func (s *Service) DeleteMedication(ctx context.Context, id uuid.UUID) error {
	return s.medications.Delete(ctx, id)
}

func (s *Service) ListMedications(ctx context.Context, query string, limit, offset int) ([]*Medication, int, error) {
	return s.medications.List(ctx, query, limit, offset)
}

func (s *Service) ListLowStock(ctx context.Context) ([]*Medication, error) {
	return s.medications.ListLowStock(ctx)
}

// ReceiveStock records an incoming delivery and raises the stock level in the
// same transaction.
func (s *Service) ReceiveStock(ctx context.Context, receipt *StockReceipt) error {
	if receipt.MedicationID == uuid.Nil {
		return fmt.Errorf("medication_id is required")
	}
	if receipt.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}
	return s.runTx(ctx, func(ctx context.Context) error {
		if err := s.medications.AddReceipt(ctx, receipt); err != nil {
			return err
		}
		return s.medications.IncrementStock(ctx, receipt.MedicationID, receipt.Quantity)
	})
}

func (s *Service) GetReceipts(ctx context.Context, medicationID uuid.UUID) ([]*StockReceipt, error) {
	return s.medications.GetReceipts(ctx, medicationID)
}

// DispenseMedication decrements stock and records the dispense atomically.
// Over-dispensing fails with ErrInsufficientStock and leaves both the stock
// level and the dispense log untouched.
func (s *Service) DispenseMedication(ctx context.Context, d *Dispense) error {
	if d.MedicationID == uuid.Nil {
		return fmt.Errorf("medication_id is required")
	}
	if d.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if d.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}
	return s.runTx(ctx, func(ctx context.Context) error {
		if err := s.medications.DecrementStock(ctx, d.MedicationID, d.Quantity); err != nil {
			return err
		}
		return s.dispenses.Create(ctx, d)
	})
}

func (s *Service) ListDispenses(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Dispense, int, error) {
	return s.dispenses.List(ctx, patientID, limit, offset)
}
