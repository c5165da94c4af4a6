package cases

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
)

// ── Mock Repository ──

type mockCaseRepo struct {
	data  map[uuid.UUID]*Case
	notes map[uuid.UUID][]*CaseNote
}

func newMockCaseRepo() *mockCaseRepo {
	return &mockCaseRepo{
		data:  make(map[uuid.UUID]*Case),
		notes: make(map[uuid.UUID][]*CaseNote),
	}
}

func (m *mockCaseRepo) Create(_ context.Context, cs *Case) error {
	cs.ID = uuid.New()
	m.data[cs.ID] = cs
	return nil
}
func (m *mockCaseRepo) GetByID(_ context.Context, id uuid.UUID) (*Case, error) {
	if cs, ok := m.data[id]; ok {
		return cs, nil
	}
	return nil, fmt.Errorf("not found")
}
func (m *mockCaseRepo) Update(_ context.Context, cs *Case) error {
	if _, ok := m.data[cs.ID]; !ok {
		return fmt.Errorf("not found")
	}
	m.data[cs.ID] = cs
	return nil
}
func (m *mockCaseRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.data, id)
	return nil
}
func (m *mockCaseRepo) List(_ context.Context, patientID uuid.UUID, status string, limit, offset int) ([]*Case, int, error) {
	var out []*Case
	for _, cs := range m.data {
		if patientID != uuid.Nil && cs.PatientID != patientID {
			continue
		}
		if status != "" && cs.Status != status {
			continue
		}
		out = append(out, cs)
	}
	return out, len(out), nil
}
func (m *mockCaseRepo) AddNote(_ context.Context, note *CaseNote) error {
	note.ID = uuid.New()
	m.notes[note.CaseID] = append(m.notes[note.CaseID], note)
	return nil
}
func (m *mockCaseRepo) GetNotes(_ context.Context, caseID uuid.UUID) ([]*CaseNote, error) {
	return m.notes[caseID], nil
}

func newTestService() *Service {
	return NewService(newMockCaseRepo())
}

func openTestCase(t *testing.T, svc *Service) *Case {
	t.Helper()
	cs := &Case{PatientID: uuid.New(), ChiefComplaint: "cough and fever"}
	if err := svc.OpenCase(context.Background(), cs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return cs
}

// ── Service Tests ──

func TestService_OpenCase(t *testing.T) {
	svc := newTestService()
	cs := openTestCase(t, svc)
	if cs.Status != StatusOpen {
		t.Errorf("status = %q, want open", cs.Status)
	}
}

func TestService_OpenCase_MissingPatientID(t *testing.T) {
	svc := newTestService()
	err := svc.OpenCase(context.Background(), &Case{ChiefComplaint: "fever"})
	if err == nil {
		t.Error("expected error for missing patient_id")
	}
}

func TestService_OpenCase_MissingComplaint(t *testing.T) {
	svc := newTestService()
	err := svc.OpenCase(context.Background(), &Case{PatientID: uuid.New()})
	if err == nil {
		t.Error("expected error for missing chief_complaint")
	}
}

func TestService_UpdateCase_StatusLifecycle(t *testing.T) {
	tests := []struct {
		from, to string
		ok       bool
	}{
		{StatusOpen, StatusInTreatment, true},
		{StatusOpen, StatusReferred, true},
		{StatusOpen, StatusClosed, true},
		{StatusInTreatment, StatusReferred, true},
		{StatusInTreatment, StatusClosed, true},
		{StatusInTreatment, StatusOpen, false},
		{StatusReferred, StatusClosed, true},
		{StatusReferred, StatusInTreatment, false},
		{StatusClosed, StatusOpen, false},
		{StatusClosed, StatusInTreatment, false},
	}
	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			svc := newTestService()
			cs := openTestCase(t, svc)
			cs.Status = tt.from
			update := &Case{ID: cs.ID, Status: tt.to}
			err := svc.UpdateCase(context.Background(), update)
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && err == nil {
				t.Errorf("expected transition %s -> %s to be rejected", tt.from, tt.to)
			}
		})
	}
}

func TestService_UpdateCase_KeepsStatusWhenOmitted(t *testing.T) {
	svc := newTestService()
	cs := openTestCase(t, svc)
	temp := 38.5
	update := &Case{ID: cs.ID, Temperature: &temp}
	if err := svc.UpdateCase(context.Background(), update); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := svc.GetCase(context.Background(), cs.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != StatusOpen {
		t.Errorf("status = %q, want open", got.Status)
	}
	if got.ChiefComplaint != "cough and fever" {
		t.Errorf("chief_complaint = %q, want preserved", got.ChiefComplaint)
	}
}

func TestService_UpdateCase_InvalidStatus(t *testing.T) {
	svc := newTestService()
	cs := openTestCase(t, svc)
	err := svc.UpdateCase(context.Background(), &Case{ID: cs.ID, Status: "resolved"})
	if err == nil {
		t.Error("expected error for invalid status")
	}
}

func TestService_ListCases_Filters(t *testing.T) {
	svc := newTestService()
	patientID := uuid.New()
	cs := &Case{PatientID: patientID, ChiefComplaint: "diarrhea"}
	if err := svc.OpenCase(context.Background(), cs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	openTestCase(t, svc)

	items, total, err := svc.ListCases(context.Background(), patientID, "", 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || len(items) != 1 {
		t.Errorf("total = %d, want 1 for patient filter", total)
	}

	_, total, err = svc.ListCases(context.Background(), uuid.Nil, StatusOpen, 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 {
		t.Errorf("total = %d, want 2 open cases", total)
	}
}

func TestService_ListCases_InvalidStatus(t *testing.T) {
	svc := newTestService()
	if _, _, err := svc.ListCases(context.Background(), uuid.Nil, "bogus", 20, 0); err == nil {
		t.Error("expected error for invalid status filter")
	}
}

func TestService_AddNote(t *testing.T) {
	svc := newTestService()
	cs := openTestCase(t, svc)
	note := &CaseNote{CaseID: cs.ID, Body: "started ORS plan B"}
	if err := svc.AddNote(context.Background(), note); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	notes, err := svc.GetNotes(context.Background(), cs.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notes) != 1 || notes[0].Body != "started ORS plan B" {
		t.Errorf("notes = %+v", notes)
	}
}

func TestService_AddNote_MissingBody(t *testing.T) {
	svc := newTestService()
	cs := openTestCase(t, svc)
	if err := svc.AddNote(context.Background(), &CaseNote{CaseID: cs.ID}); err == nil {
		t.Error("expected error for missing body")
	}
}

func TestService_AddNote_UnknownCase(t *testing.T) {
	svc := newTestService()
	err := svc.AddNote(context.Background(), &CaseNote{CaseID: uuid.New(), Body: "note"})
	if err == nil {
		t.Error("expected error for unknown case")
	}
}
