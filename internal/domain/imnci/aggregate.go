package imnci

// Overall disposition labels, keyed by final severity tier and referral need.
const (
	overallReferUrgently = "REFER URGENTLY - Severe Classification"
	overallRefer         = "REFER - Treatment Required at Higher Facility"
	overallTreatAtPHU    = "Treatment at PHU - Follow up required"
	overallHomeCare      = "Child can be treated at home"
)

// Aggregate folds domain results into one overall disposition. It is a pure
// reduction over the full slice with no short-circuiting: callers may pass a
// partial result set mid-assessment and recompute as further domains complete.
// Critical findings are the classification labels of referral-requiring
// results, in encounter order.
func Aggregate(results []ClassificationResult) OverallAssessment {
	overall := OverallAssessment{
		OverallColor:     ColorGreen,
		ReferralUrgency:  UrgencyNone,
		CriticalFindings: []string{},
	}

	maxUrgency := UrgencyNone
	for _, r := range results {
		if colorRank[r.Color] > colorRank[overall.OverallColor] {
			overall.OverallColor = r.Color
		}
		if r.RequiresReferral {
			overall.RequiresReferral = true
			overall.CriticalFindings = append(overall.CriticalFindings, r.Classification)
		}
		if r.Urgency != "" && urgencyRank[r.Urgency] > urgencyRank[maxUrgency] {
			maxUrgency = r.Urgency
		}
	}

	// An urgency tier only applies when something actually needs referral.
	if overall.RequiresReferral {
		overall.ReferralUrgency = maxUrgency
	}

	switch {
	case colorRank[overall.OverallColor] >= colorRank[ColorRed]:
		overall.OverallClassification = overallReferUrgently
	case colorRank[overall.OverallColor] >= colorRank[ColorYellow] && overall.RequiresReferral:
		overall.OverallClassification = overallRefer
	case colorRank[overall.OverallColor] >= colorRank[ColorYellow]:
		overall.OverallClassification = overallTreatAtPHU
	default:
		overall.OverallClassification = overallHomeCare
	}
	return overall
}
