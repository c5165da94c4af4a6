package imnci

import (
	"context"

	"github.com/google/uuid"
)

type AssessmentRepository interface {
	Create(ctx context.Context, a *Assessment, results []*AssessmentResult) error
	GetByID(ctx context.Context, id uuid.UUID) (*Assessment, error)
	GetResults(ctx context.Context, assessmentID uuid.UUID) ([]*AssessmentResult, error)
	ListByCase(ctx context.Context, caseID uuid.UUID, limit, offset int) ([]*Assessment, int, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Assessment, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
