package imnci

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// TxRunner executes fn inside a database transaction carried on the context.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

// AssessmentRequest is the observation set submitted for one encounter.
// Each domain is optional; omitted domains are not classified.
type AssessmentRequest struct {
	CaseID      uuid.UUID               `json:"case_id"`
	PatientID   uuid.UUID               `json:"patient_id"`
	AssessedBy  *string                 `json:"assessed_by,omitempty"`
	AgeMonths   *int                    `json:"age_months,omitempty"`
	Note        *string                 `json:"note,omitempty"`
	DangerSigns *DangerSignsObservation `json:"danger_signs,omitempty"`
	Cough       *CoughObservation       `json:"cough,omitempty"`
	Diarrhea    *DiarrheaObservation    `json:"diarrhea,omitempty"`
	Fever       *FeverObservation       `json:"fever,omitempty"`
	Ear         *EarObservation         `json:"ear,omitempty"`
	Nutrition   *NutritionObservation   `json:"nutrition,omitempty"`
}

// AssessmentDetail is a stored assessment with its domain results and the
// overall disposition recomputed from them.
type AssessmentDetail struct {
	Assessment *Assessment         `json:"assessment"`
	Results    []*AssessmentResult `json:"results"`
	Overall    OverallAssessment   `json:"overall"`
}

type Service struct {
	assessments AssessmentRepository
	runTx       TxRunner
}

func NewService(assessments AssessmentRepository, runTx TxRunner) *Service {
	return &Service{assessments: assessments, runTx: runTx}
}

// CreateAssessment classifies every submitted observation domain in encounter
// order, persists the assessment with its results atomically, and returns the
// stored record with the aggregated disposition.
func (s *Service) CreateAssessment(ctx context.Context, req *AssessmentRequest) (*AssessmentDetail, error) {
	if req.CaseID == uuid.Nil {
		return nil, fmt.Errorf("case_id is required")
	}
	if req.PatientID == uuid.Nil {
		return nil, fmt.Errorf("patient_id is required")
	}

	// The danger signs result feeds the externally computed danger flag of the
	// cough and fever classifiers when the caller has not set it.
	dangerPresent := false
	if req.DangerSigns != nil {
		dangerPresent = req.DangerSigns.Any()
	}

	type step struct {
		domain string
		result ClassificationResult
	}
	var steps []step
	if req.DangerSigns != nil {
		steps = append(steps, step{DomainDangerSigns, AssessDangerSigns(*req.DangerSigns)})
	}
	if req.Cough != nil {
		obs := *req.Cough
		obs.HasDangerSigns = obs.HasDangerSigns || dangerPresent
		if obs.AgeMonths == 0 && req.AgeMonths != nil {
			obs.AgeMonths = *req.AgeMonths
		}
		steps = append(steps, step{DomainCough, AssessCough(obs)})
	}
	if req.Diarrhea != nil {
		steps = append(steps, step{DomainDiarrhea, AssessDiarrhea(*req.Diarrhea)})
	}
	if req.Fever != nil {
		obs := *req.Fever
		obs.HasDangerSigns = obs.HasDangerSigns || dangerPresent
		steps = append(steps, step{DomainFever, AssessFever(obs)})
	}
	if req.Ear != nil {
		steps = append(steps, step{DomainEar, AssessEar(*req.Ear)})
	}
	if req.Nutrition != nil {
		steps = append(steps, step{DomainNutrition, AssessNutrition(*req.Nutrition)})
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("at least one observation domain is required")
	}

	a := &Assessment{
		CaseID:     req.CaseID,
		PatientID:  req.PatientID,
		AssessedBy: req.AssessedBy,
		AgeMonths:  req.AgeMonths,
		Note:       req.Note,
	}
	results := make([]*AssessmentResult, 0, len(steps))
	classifications := make([]ClassificationResult, 0, len(steps))
	for i, st := range steps {
		row := &AssessmentResult{
			Domain:           st.domain,
			Classification:   st.result.Classification,
			Color:            string(st.result.Color),
			RequiresReferral: st.result.RequiresReferral,
			Position:         i,
		}
		if st.result.Urgency != "" {
			u := string(st.result.Urgency)
			row.Urgency = &u
		}
		if st.result.Treatment != "" {
			t := st.result.Treatment
			row.Treatment = &t
		}
		results = append(results, row)
		classifications = append(classifications, st.result)
	}

	err := s.runTx(ctx, func(ctx context.Context) error {
		return s.assessments.Create(ctx, a, results)
	})
	if err != nil {
		return nil, err
	}

	return &AssessmentDetail{
		Assessment: a,
		Results:    results,
		Overall:    Aggregate(classifications),
	}, nil
}

// GetAssessment returns a stored assessment with its results and the overall
// disposition recomputed from them. The overall is never cached.
func (s *Service) GetAssessment(ctx context.Context, id uuid.UUID) (*AssessmentDetail, error) {
	a, err := s.assessments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	results, err := s.assessments.GetResults(ctx, id)
	if err != nil {
		return nil, err
	}
	classifications := make([]ClassificationResult, 0, len(results))
	for _, r := range results {
		classifications = append(classifications, r.ToClassificationResult())
	}
	return &AssessmentDetail{
		Assessment: a,
		Results:    results,
		Overall:    Aggregate(classifications),
	}, nil
}

// GetOverall returns only the aggregated disposition for a stored assessment.
func (s *Service) GetOverall(ctx context.Context, id uuid.UUID) (*OverallAssessment, error) {
	results, err := s.assessments.GetResults(ctx, id)
	if err != nil {
		return nil, err
	}
	classifications := make([]ClassificationResult, 0, len(results))
	for _, r := range results {
		classifications = append(classifications, r.ToClassificationResult())
	}
	overall := Aggregate(classifications)
	return &overall, nil
}

func (s *Service) ListAssessmentsByCase(ctx context.Context, caseID uuid.UUID, limit, offset int) ([]*Assessment, int, error) {
	return s.assessments.ListByCase(ctx, caseID, limit, offset)
}

func (s *Service) ListAssessmentsByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Assessment, int, error) {
	return s.assessments.ListByPatient(ctx, patientID, limit, offset)
}

func (s *Service) DeleteAssessment(ctx context.Context, id uuid.UUID) error {
	return s.assessments.Delete(ctx, id)
}
