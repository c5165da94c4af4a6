package imnci

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
)

// ── Mock Repository ──

type mockAssessmentRepo struct {
	data    map[uuid.UUID]*Assessment
	results map[uuid.UUID][]*AssessmentResult
}

func newMockAssessmentRepo() *mockAssessmentRepo {
	return &mockAssessmentRepo{
		data:    make(map[uuid.UUID]*Assessment),
		results: make(map[uuid.UUID][]*AssessmentResult),
	}
}

func (m *mockAssessmentRepo) Create(_ context.Context, a *Assessment, results []*AssessmentResult) error {
	a.ID = uuid.New()
	m.data[a.ID] = a
	for _, res := range results {
		res.ID = uuid.New()
		res.AssessmentID = a.ID
	}
	m.results[a.ID] = results
	return nil
}
func (m *mockAssessmentRepo) GetByID(_ context.Context, id uuid.UUID) (*Assessment, error) {
	if a, ok := m.data[id]; ok {
		return a, nil
	}
	return nil, fmt.Errorf("not found")
}
func (m *mockAssessmentRepo) GetResults(_ context.Context, assessmentID uuid.UUID) ([]*AssessmentResult, error) {
	if _, ok := m.data[assessmentID]; !ok {
		return nil, fmt.Errorf("not found")
	}
	return m.results[assessmentID], nil
}
func (m *mockAssessmentRepo) ListByCase(_ context.Context, caseID uuid.UUID, limit, offset int) ([]*Assessment, int, error) {
	var out []*Assessment
	for _, a := range m.data {
		if a.CaseID == caseID {
			out = append(out, a)
		}
	}
	return out, len(out), nil
}
func (m *mockAssessmentRepo) ListByPatient(_ context.Context, patientID uuid.UUID, limit, offset int) ([]*Assessment, int, error) {
	var out []*Assessment
	for _, a := range m.data {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	return out, len(out), nil
}
func (m *mockAssessmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.data, id)
	delete(m.results, id)
	return nil
}

func passthroughTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService() *Service {
	return NewService(newMockAssessmentRepo(), passthroughTx)
}

// ── Service Tests ──

func TestService_CreateAssessment(t *testing.T) {
	svc := newTestService()
	detail, err := svc.CreateAssessment(context.Background(), &AssessmentRequest{
		CaseID:      uuid.New(),
		PatientID:   uuid.New(),
		AgeMonths:   intPtr(10),
		DangerSigns: &DangerSignsObservation{},
		Cough:       &CoughObservation{HasCough: true, RespiratoryRate: intPtr(55)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(detail.Results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(detail.Results))
	}
	if detail.Results[0].Domain != DomainDangerSigns || detail.Results[1].Domain != DomainCough {
		t.Errorf("results out of encounter order: %s, %s",
			detail.Results[0].Domain, detail.Results[1].Domain)
	}
	if detail.Results[1].Classification != "Pneumonia" {
		t.Errorf("cough classification = %q, want Pneumonia (age filled from request)",
			detail.Results[1].Classification)
	}
	if detail.Overall.OverallColor != ColorYellow {
		t.Errorf("overall color = %q, want yellow", detail.Overall.OverallColor)
	}
}

func TestService_CreateAssessment_MissingCaseID(t *testing.T) {
	svc := newTestService()
	_, err := svc.CreateAssessment(context.Background(), &AssessmentRequest{
		PatientID:   uuid.New(),
		DangerSigns: &DangerSignsObservation{},
	})
	if err == nil {
		t.Error("expected error for missing case_id")
	}
}

func TestService_CreateAssessment_MissingPatientID(t *testing.T) {
	svc := newTestService()
	_, err := svc.CreateAssessment(context.Background(), &AssessmentRequest{
		CaseID:      uuid.New(),
		DangerSigns: &DangerSignsObservation{},
	})
	if err == nil {
		t.Error("expected error for missing patient_id")
	}
}

func TestService_CreateAssessment_NoObservations(t *testing.T) {
	svc := newTestService()
	_, err := svc.CreateAssessment(context.Background(), &AssessmentRequest{
		CaseID:    uuid.New(),
		PatientID: uuid.New(),
	})
	if err == nil {
		t.Error("expected error for empty observation set")
	}
}

func TestService_CreateAssessment_DangerSignsFeedDownstream(t *testing.T) {
	// A positive danger signs check escalates the cough and fever classifiers
	// even when the caller left their danger flag unset.
	svc := newTestService()
	detail, err := svc.CreateAssessment(context.Background(), &AssessmentRequest{
		CaseID:      uuid.New(),
		PatientID:   uuid.New(),
		AgeMonths:   intPtr(24),
		DangerSigns: &DangerSignsObservation{LethargicUnconscious: true},
		Cough:       &CoughObservation{HasCough: true},
		Fever:       &FeverObservation{HasFever: true},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	byDomain := map[string]*AssessmentResult{}
	for _, r := range detail.Results {
		byDomain[r.Domain] = r
	}
	if byDomain[DomainCough].Classification != "Severe Pneumonia or Very Severe Disease" {
		t.Errorf("cough = %q", byDomain[DomainCough].Classification)
	}
	if byDomain[DomainFever].Classification != "Very Severe Febrile Disease" {
		t.Errorf("fever = %q", byDomain[DomainFever].Classification)
	}
	if detail.Overall.ReferralUrgency != UrgencyEmergency {
		t.Errorf("urgency = %q, want emergency", detail.Overall.ReferralUrgency)
	}
}

func TestService_GetAssessment_RecomputesOverall(t *testing.T) {
	svc := newTestService()
	created, err := svc.CreateAssessment(context.Background(), &AssessmentRequest{
		CaseID:    uuid.New(),
		PatientID: uuid.New(),
		Diarrhea:  &DiarrheaObservation{HasDiarrhea: true, LethargicUnconscious: true},
		Nutrition: &NutritionObservation{},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	detail, err := svc.GetAssessment(context.Background(), created.Assessment.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.Overall.OverallColor != ColorRed {
		t.Errorf("overall color = %q, want red", detail.Overall.OverallColor)
	}
	if detail.Overall.OverallClassification != "REFER URGENTLY - Severe Classification" {
		t.Errorf("classification = %q", detail.Overall.OverallClassification)
	}
	if len(detail.Overall.CriticalFindings) != 1 || detail.Overall.CriticalFindings[0] != "Severe Dehydration" {
		t.Errorf("criticalFindings = %v", detail.Overall.CriticalFindings)
	}
}

func TestService_GetOverall(t *testing.T) {
	svc := newTestService()
	created, err := svc.CreateAssessment(context.Background(), &AssessmentRequest{
		CaseID:    uuid.New(),
		PatientID: uuid.New(),
		Ear:       &EarObservation{HasEarProblem: true, EarPain: true},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	overall, err := svc.GetOverall(context.Background(), created.Assessment.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if overall.OverallClassification != "Treatment at PHU - Follow up required" {
		t.Errorf("classification = %q", overall.OverallClassification)
	}
}

func TestService_GetAssessment_NotFound(t *testing.T) {
	svc := newTestService()
	if _, err := svc.GetAssessment(context.Background(), uuid.New()); err == nil {
		t.Error("expected error for unknown id")
	}
}

func TestService_ListAssessmentsByCase(t *testing.T) {
	svc := newTestService()
	caseID := uuid.New()
	for i := 0; i < 2; i++ {
		_, err := svc.CreateAssessment(context.Background(), &AssessmentRequest{
			CaseID:      caseID,
			PatientID:   uuid.New(),
			DangerSigns: &DangerSignsObservation{},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	items, total, err := svc.ListAssessmentsByCase(context.Background(), caseID, 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Errorf("total = %d, len = %d, want 2", total, len(items))
	}
}

func TestService_DeleteAssessment(t *testing.T) {
	svc := newTestService()
	created, err := svc.CreateAssessment(context.Background(), &AssessmentRequest{
		CaseID:      uuid.New(),
		PatientID:   uuid.New(),
		DangerSigns: &DangerSignsObservation{},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.DeleteAssessment(context.Background(), created.Assessment.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.GetAssessment(context.Background(), created.Assessment.ID); err == nil {
		t.Error("expected error after delete")
	}
}
