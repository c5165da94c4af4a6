package patient

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	patients PatientRepository
}

func NewService(patients PatientRepository) *Service {
	return &Service{patients: patients}
}

var validSexes = map[string]bool{
	"male": true, "female": true,
}

func (s *Service) RegisterPatient(ctx context.Context, p *Patient) error {
	if p.FirstName == "" {
		return fmt.Errorf("first_name is required")
	}
	if p.LastName == "" {
		return fmt.Errorf("last_name is required")
	}
	if p.Sex == "" {
		return fmt.Errorf("sex is required")
	}
	if !validSexes[p.Sex] {
		return fmt.Errorf("invalid sex: %s", p.Sex)
	}
	if p.DateOfBirth == nil && p.AgeMonths == nil {
		return fmt.Errorf("date_of_birth or age_months is required")
	}
	return s.patients.Create(ctx, p)
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *Service) UpdatePatient(ctx context.Context, p *Patient) error {
	if p.Sex != "" && !validSexes[p.Sex] {
		return fmt.Errorf("invalid sex: %s", p.Sex)
	}
	return s.patients.Update(ctx, p)
}

func (s *Service) DeletePatient(ctx context.Context, id uuid.UUID) error {
	return s.patients.Delete(ctx, id)
}

func (s *Service) ListPatients(ctx context.Context, name string, limit, offset int) ([]*Patient, int, error) {
	return s.patients.List(ctx, name, limit, offset)
}

func (s *Service) GetProfile(ctx context.Context, patientID uuid.UUID) (*PatientProfile, error) {
	return s.patients.GetProfile(ctx, patientID)
}

func (s *Service) UpdateProfile(ctx context.Context, profile *PatientProfile) error {
	if profile.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	return s.patients.UpdateProfile(ctx, profile)
}
