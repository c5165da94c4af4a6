package referral

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	referrals ReferralRepository
}

func NewService(referrals ReferralRepository) *Service {
	return &Service{referrals: referrals}
}

var validUrgencies = map[string]bool{
	UrgencyRoutine: true, UrgencyUrgent: true, UrgencyEmergency: true,
}

var validStatuses = map[string]bool{
	StatusPending: true, StatusAccepted: true, StatusDeclined: true,
	StatusInTransit: true, StatusCompleted: true,
}

// validTransitions encodes the referral workflow. Declined and completed are
// terminal.
var validTransitions = map[string][]string{
	StatusPending:   {StatusAccepted, StatusDeclined},
	StatusAccepted:  {StatusInTransit},
	StatusInTransit: {StatusCompleted},
	StatusDeclined:  {},
	StatusCompleted: {},
}

func canTransition(from, to string) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func (s *Service) CreateReferral(ctx context.Context, ref *Referral) error {
	if ref.CaseID == uuid.Nil {
		return fmt.Errorf("case_id is required")
	}
	if ref.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if ref.ToFacility == "" {
		return fmt.Errorf("to_facility is required")
	}
	if ref.Reason == "" {
		return fmt.Errorf("reason is required")
	}
	if ref.Urgency == "" {
		ref.Urgency = UrgencyRoutine
	}
	if !validUrgencies[ref.Urgency] {
		return fmt.Errorf("invalid urgency: %s", ref.Urgency)
	}
	ref.Status = StatusPending
	return s.referrals.Create(ctx, ref)
}

func (s *Service) GetReferral(ctx context.Context, id uuid.UUID) (*Referral, error) {
	return s.referrals.GetByID(ctx, id)
}

func (s *Service) UpdateReferralStatus(ctx context.Context, id uuid.UUID, status string) (*Referral, error) {
	if !validStatuses[status] {
		return nil, fmt.Errorf("invalid status: %s", status)
	}
	ref, err := s.referrals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canTransition(ref.Status, status) {
		return nil, fmt.Errorf("cannot move referral from %s to %s", ref.Status, status)
	}
	if err := s.referrals.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	ref.Status = status
	return ref, nil
}

func (s *Service) ListReferrals(ctx context.Context, patientID uuid.UUID, status string, limit, offset int) ([]*Referral, int, error) {
	if status != "" && !validStatuses[status] {
		return nil, 0, fmt.Errorf("invalid status: %s", status)
	}
	return s.referrals.List(ctx, patientID, status, limit, offset)
}
