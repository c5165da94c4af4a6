package cases

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	cases CaseRepository
}

func NewService(cases CaseRepository) *Service {
	return &Service{cases: cases}
}

var validStatuses = map[string]bool{
	StatusOpen: true, StatusInTreatment: true, StatusReferred: true, StatusClosed: true,
}

// validTransitions encodes the case lifecycle. Closed is terminal.
var validTransitions = map[string][]string{
	StatusOpen:        {StatusInTreatment, StatusReferred, StatusClosed},
	StatusInTreatment: {StatusReferred, StatusClosed},
	StatusReferred:    {StatusClosed},
	StatusClosed:      {},
}

func canTransition(from, to string) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func (s *Service) OpenCase(ctx context.Context, cs *Case) error {
	if cs.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if cs.ChiefComplaint == "" {
		return fmt.Errorf("chief_complaint is required")
	}
	if cs.Status == "" {
		cs.Status = StatusOpen
	}
	if !validStatuses[cs.Status] {
		return fmt.Errorf("invalid status: %s", cs.Status)
	}
	return s.cases.Create(ctx, cs)
}

func (s *Service) GetCase(ctx context.Context, id uuid.UUID) (*Case, error) {
	return s.cases.GetByID(ctx, id)
}

// UpdateCase applies field changes and enforces the status lifecycle when the
// update moves the case to a different status.
func (s *Service) UpdateCase(ctx context.Context, cs *Case) error {
	existing, err := s.cases.GetByID(ctx, cs.ID)
	if err != nil {
		return err
	}
	if cs.Status == "" {
		cs.Status = existing.Status
	}
	if !validStatuses[cs.Status] {
		return fmt.Errorf("invalid status: %s", cs.Status)
	}
	if cs.Status != existing.Status && !canTransition(existing.Status, cs.Status) {
		return fmt.Errorf("cannot move case from %s to %s", existing.Status, cs.Status)
	}
	if cs.ChiefComplaint == "" {
		cs.ChiefComplaint = existing.ChiefComplaint
	}
	cs.PatientID = existing.PatientID
	return s.cases.Update(ctx, cs)
}

func (s *Service) DeleteCase(ctx context.Context, id uuid.UUID) error {
	return s.cases.Delete(ctx, id)
}

func (s *Service) ListCases(ctx context.Context, patientID uuid.UUID, status string, limit, offset int) ([]*Case, int, error) {
	if status != "" && !validStatuses[status] {
		return nil, 0, fmt.Errorf("invalid status: %s", status)
	}
	return s.cases.List(ctx, patientID, status, limit, offset)
}

func (s *Service) AddNote(ctx context.Context, note *CaseNote) error {
	if note.CaseID == uuid.Nil {
		return fmt.Errorf("case_id is required")
	}
	if note.Body == "" {
		return fmt.Errorf("body is required")
	}
	if _, err := s.cases.GetByID(ctx, note.CaseID); err != nil {
		return fmt.Errorf("case not found")
	}
	return s.cases.AddNote(ctx, note)
}

func (s *Service) GetNotes(ctx context.Context, caseID uuid.UUID) ([]*CaseNote, error) {
	return s.cases.GetNotes(ctx, caseID)
}
