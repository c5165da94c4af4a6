// Package imnci implements the IMNCI (Integrated Management of Neonatal and
// Childhood Illness) classification protocol: six per-domain classifiers, an
// aggregator that folds domain results into one patient disposition, and
// persistence of completed assessments against a case.
package imnci

import (
	"time"

	"github.com/google/uuid"
)

// Color is the IMNCI severity tier. Severity order is strictly
// green < yellow < pink < red. No current rule produces pink; it exists in
// the ordering and the display table for future rules.
type Color string

const (
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorPink   Color = "pink"
	ColorRed    Color = "red"
)

var colorRank = map[Color]int{
	ColorGreen:  0,
	ColorYellow: 1,
	ColorPink:   2,
	ColorRed:    3,
}

// Urgency is the referral urgency tier, ordered routine < urgent < emergency.
// UrgencyNone only appears on the overall disposition, never on a domain result.
type Urgency string

const (
	UrgencyNone      Urgency = "none"
	UrgencyRoutine   Urgency = "routine"
	UrgencyUrgent    Urgency = "urgent"
	UrgencyEmergency Urgency = "emergency"
)

var urgencyRank = map[Urgency]int{
	UrgencyNone:      0,
	UrgencyRoutine:   1,
	UrgencyUrgent:    2,
	UrgencyEmergency: 3,
}

// ColorDisplay is display metadata for one severity tier.
type ColorDisplay struct {
	Color       Color  `json:"color"`
	Label       string `json:"label"`
	Hex         string `json:"hex"`
	Description string `json:"description"`
}

// ColorDisplays returns the display table in ascending severity order.
func ColorDisplays() []ColorDisplay {
	return []ColorDisplay{
		{Color: ColorGreen, Label: "Home Care", Hex: "#16a34a", Description: "Child can be managed at home with caregiver counseling"},
		{Color: ColorYellow, Label: "Treat at Facility", Hex: "#eab308", Description: "Treat at the health unit and schedule follow up"},
		{Color: ColorPink, Label: "Pre-Referral Treatment", Hex: "#ec4899", Description: "Give pre-referral treatment before transfer"},
		{Color: ColorRed, Label: "Urgent Referral", Hex: "#dc2626", Description: "Give pre-referral treatment and refer urgently to hospital"},
	}
}

// Observation records. All optional numeric measurements are pointers; a nil
// measurement never triggers a positive-severity branch on its own.

type DangerSignsObservation struct {
	NotAbleToDrink       bool `json:"not_able_to_drink"`
	VomitsEverything     bool `json:"vomits_everything"`
	HistoryOfConvulsions bool `json:"history_of_convulsions"`
	LethargicUnconscious bool `json:"lethargic_unconscious"`
	ConvulsingNow        bool `json:"convulsing_now"`
}

// Any reports whether at least one general danger sign is present.
func (o DangerSignsObservation) Any() bool {
	return o.NotAbleToDrink || o.VomitsEverything || o.HistoryOfConvulsions ||
		o.LethargicUnconscious || o.ConvulsingNow
}

type CoughObservation struct {
	HasCough        bool `json:"has_cough"`
	DurationDays    *int `json:"duration_days,omitempty"`
	RespiratoryRate *int `json:"respiratory_rate,omitempty"`
	AgeMonths       int  `json:"age_months"`
	ChestIndrawing  bool `json:"chest_indrawing"`
	Stridor         bool `json:"stridor"`
	HasDangerSigns  bool `json:"has_danger_signs"`
}

type DiarrheaObservation struct {
	HasDiarrhea          bool `json:"has_diarrhea"`
	DurationDays         *int `json:"duration_days,omitempty"`
	BloodInStool         bool `json:"blood_in_stool"`
	SunkenEyes           bool `json:"sunken_eyes"`
	SkinPinchVerySlow    bool `json:"skin_pinch_very_slow"`
	SkinPinchSlow        bool `json:"skin_pinch_slow"`
	RestlessIrritable    bool `json:"restless_irritable"`
	DrinksEagerly        bool `json:"drinks_eagerly"`
	NotAbleToDrink       bool `json:"not_able_to_drink"`
	LethargicUnconscious bool `json:"lethargic_unconscious"`
}

// Malaria rapid-test result values. An empty string means not tested.
const (
	MalariaTestPositive = "positive"
	MalariaTestNegative = "negative"
)

type FeverObservation struct {
	HasFever        bool     `json:"has_fever"`
	DurationDays    *int     `json:"duration_days,omitempty"`
	Temperature     *float64 `json:"temperature,omitempty"`
	StiffNeck       bool     `json:"stiff_neck"`
	MalariaTest     string   `json:"malaria_test,omitempty"`
	GeneralizedRash bool     `json:"generalized_rash"`
	RunnyNose       bool     `json:"runny_nose"`
	MouthUlcers     bool     `json:"mouth_ulcers"`
	PusDrainingEye  bool     `json:"pus_draining_eye"`
	CornealClouding bool     `json:"corneal_clouding"`
	HasDangerSigns  bool     `json:"has_danger_signs"`
}

type EarObservation struct {
	HasEarProblem           bool `json:"has_ear_problem"`
	EarPain                 bool `json:"ear_pain"`
	EarDischarge            bool `json:"ear_discharge"`
	DischargeDurationDays   *int `json:"discharge_duration_days,omitempty"`
	TenderSwellingBehindEar bool `json:"tender_swelling_behind_ear"`
}

type NutritionObservation struct {
	VisibleSevereWasting bool     `json:"visible_severe_wasting"`
	BilateralEdema       bool     `json:"bilateral_edema"`
	WeightForAgeZScore   *float64 `json:"weight_for_age_z_score,omitempty"`
	MUAC                 *float64 `json:"muac,omitempty"`
	PalmarPallor         bool     `json:"palmar_pallor"`
	SeverePalmarPallor   bool     `json:"severe_palmar_pallor"`
}

// ClassificationResult is the output of one domain classifier. Immutable once
// produced; downstream steps only read it.
type ClassificationResult struct {
	Classification   string  `json:"classification"`
	Color            Color   `json:"color"`
	RequiresReferral bool    `json:"requires_referral"`
	Urgency          Urgency `json:"urgency,omitempty"`
	Treatment        string  `json:"treatment,omitempty"`
}

// OverallAssessment is the aggregated disposition across all domain results.
// It has no independent lifecycle and is recomputed whenever the underlying
// result set changes.
type OverallAssessment struct {
	OverallClassification string   `json:"overall_classification"`
	OverallColor          Color    `json:"overall_color"`
	RequiresReferral      bool     `json:"requires_referral"`
	ReferralUrgency       Urgency  `json:"referral_urgency"`
	CriticalFindings      []string `json:"critical_findings"`
}

// Assessment domain identifiers, in encounter order.
const (
	DomainDangerSigns = "danger_signs"
	DomainCough       = "cough"
	DomainDiarrhea    = "diarrhea"
	DomainFever       = "fever"
	DomainEar         = "ear"
	DomainNutrition   = "nutrition"
)

// Assessment maps to the assessment table: one completed IMNCI encounter
// for a case.
type Assessment struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	CaseID     uuid.UUID  `db:"case_id" json:"case_id"`
	PatientID  uuid.UUID  `db:"patient_id" json:"patient_id"`
	AssessedBy *string    `db:"assessed_by" json:"assessed_by,omitempty"`
	AgeMonths  *int       `db:"age_months" json:"age_months,omitempty"`
	Note       *string    `db:"note" json:"note,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

// AssessmentResult maps to the assessment_result table: one domain
// classification stored against an assessment. Position preserves encounter
// order for the aggregator's criticalFindings.
type AssessmentResult struct {
	ID               uuid.UUID `db:"id" json:"id"`
	AssessmentID     uuid.UUID `db:"assessment_id" json:"assessment_id"`
	Domain           string    `db:"domain" json:"domain"`
	Classification   string    `db:"classification" json:"classification"`
	Color            string    `db:"color" json:"color"`
	RequiresReferral bool      `db:"requires_referral" json:"requires_referral"`
	Urgency          *string   `db:"urgency" json:"urgency,omitempty"`
	Treatment        *string   `db:"treatment" json:"treatment,omitempty"`
	Position         int       `db:"position" json:"position"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

// ToClassificationResult converts a stored row back to the classifier output
// shape consumed by the aggregator.
func (r *AssessmentResult) ToClassificationResult() ClassificationResult {
	res := ClassificationResult{
		Classification:   r.Classification,
		Color:            Color(r.Color),
		RequiresReferral: r.RequiresReferral,
	}
	if r.Urgency != nil {
		res.Urgency = Urgency(*r.Urgency)
	}
	if r.Treatment != nil {
		res.Treatment = *r.Treatment
	}
	return res
}
