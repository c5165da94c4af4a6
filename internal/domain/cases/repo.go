package cases

import (
	"context"

	"github.com/google/uuid"
)

type CaseRepository interface {
	Create(ctx context.Context, cs *Case) error
	GetByID(ctx context.Context, id uuid.UUID) (*Case, error)
	Update(ctx context.Context, cs *Case) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, patientID uuid.UUID, status string, limit, offset int) ([]*Case, int, error)
	// Notes
	AddNote(ctx context.Context, note *CaseNote) error
	GetNotes(ctx context.Context, caseID uuid.UUID) ([]*CaseNote, error)
}
