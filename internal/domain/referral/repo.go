package referral

import (
	"context"

	"github.com/google/uuid"
)

type ReferralRepository interface {
	Create(ctx context.Context, ref *Referral) error
	GetByID(ctx context.Context, id uuid.UUID) (*Referral, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	List(ctx context.Context, patientID uuid.UUID, status string, limit, offset int) ([]*Referral, int, error)
}
