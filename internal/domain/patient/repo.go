package patient

import (
	"context"

	"github.com/google/uuid"
)

type PatientRepository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, name string, limit, offset int) ([]*Patient, int, error)
	// Profile
	GetProfile(ctx context.Context, patientID uuid.UUID) (*PatientProfile, error)
	UpdateProfile(ctx context.Context, profile *PatientProfile) error
}
