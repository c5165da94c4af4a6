package imnci

// The six domain classifiers. Each is a pure, total function over its
// observation record: no I/O, no validation, no shared state. Missing optional
// measurements are treated as absent and never trigger a severity branch on
// their own. Rule order within each classifier is a load-bearing contract:
// the first matching rule wins.

// AssessDangerSigns classifies the general danger signs check.
func AssessDangerSigns(obs DangerSignsObservation) ClassificationResult {
	if obs.Any() {
		return ClassificationResult{
			Classification:   "General Danger Signs Present",
			Color:            ColorRed,
			RequiresReferral: true,
			Urgency:          UrgencyEmergency,
			Treatment: "Give first dose of intramuscular antibiotic and refer URGENTLY to hospital. " +
				"Treat to prevent low blood sugar. Keep the child warm on the way.",
		}
	}
	return ClassificationResult{
		Classification: "No General Danger Signs",
		Color:          ColorGreen,
	}
}

// fastBreathingThreshold returns the age-banded breaths-per-minute cutoff.
func fastBreathingThreshold(ageMonths int) int {
	switch {
	case ageMonths < 2:
		return 60
	case ageMonths < 12:
		return 50
	default:
		return 40
	}
}

// AssessCough classifies cough or difficult breathing. HasDangerSigns is
// computed externally by the danger signs check and passed in.
func AssessCough(obs CoughObservation) ClassificationResult {
	if !obs.HasCough {
		return ClassificationResult{
			Classification: "No Cough or Breathing Problem",
			Color:          ColorGreen,
		}
	}

	rate := 0
	if obs.RespiratoryRate != nil {
		rate = *obs.RespiratoryRate
	}
	fastBreathing := rate >= fastBreathingThreshold(obs.AgeMonths)

	if obs.HasDangerSigns || obs.Stridor || obs.ChestIndrawing {
		return ClassificationResult{
			Classification:   "Severe Pneumonia or Very Severe Disease",
			Color:            ColorRed,
			RequiresReferral: true,
			Urgency:          UrgencyEmergency,
			Treatment:        "Give first dose of an appropriate antibiotic and refer URGENTLY to hospital.",
		}
	}
	if fastBreathing {
		return ClassificationResult{
			Classification: "Pneumonia",
			Color:          ColorYellow,
			Treatment: "Give oral amoxicillin for 5 days. Soothe the throat and relieve the cough " +
				"with a safe remedy. Advise the caregiver to return immediately if breathing becomes " +
				"fast or difficult. Follow up in 2 days.",
		}
	}
	// The 14-day advisory is descriptive treatment text only, not a referral flag.
	return ClassificationResult{
		Classification: "No Pneumonia: Cough or Cold",
		Color:          ColorGreen,
		Treatment: "Soothe the throat and relieve the cough with a safe home remedy. " +
			"If coughing has lasted more than 14 days, refer for assessment. " +
			"Follow up in 5 days if not improving.",
	}
}

// AssessDiarrhea classifies diarrhea and dehydration status. Severe
// dehydration is checked before dysentery and persistent diarrhea, so a case
// satisfying several predicates classifies by the most severe rule.
func AssessDiarrhea(obs DiarrheaObservation) ClassificationResult {
	if !obs.HasDiarrhea {
		return ClassificationResult{
			Classification: "No Diarrhea",
			Color:          ColorGreen,
		}
	}

	if obs.LethargicUnconscious || obs.NotAbleToDrink || (obs.SunkenEyes && obs.SkinPinchVerySlow) {
		return ClassificationResult{
			Classification:   "Severe Dehydration",
			Color:            ColorRed,
			RequiresReferral: true,
			Urgency:          UrgencyEmergency,
			Treatment: "Plan C: start IV fluid immediately if able, otherwise refer URGENTLY to " +
				"hospital with the caregiver giving frequent sips of ORS on the way. " +
				"If the child can drink, give ORS by mouth while the drip is set up.",
		}
	}
	if obs.RestlessIrritable || obs.SunkenEyes || obs.DrinksEagerly || obs.SkinPinchSlow {
		return ClassificationResult{
			Classification: "Some Dehydration",
			Color:          ColorYellow,
			Treatment: "Plan B: give ORS over 4 hours at the health unit, then reassess. " +
				"Give zinc supplement for 10 to 14 days. Show the caregiver how to prepare ORS at home.",
		}
	}
	if obs.BloodInStool {
		return ClassificationResult{
			Classification: "Dysentery",
			Color:          ColorYellow,
			Treatment: "Give ciprofloxacin for 3 days. Treat dehydration per plan. " +
				"Follow up in 2 days.",
		}
	}
	if obs.DurationDays != nil && *obs.DurationDays >= 14 {
		return ClassificationResult{
			Classification:   "Persistent Diarrhea",
			Color:            ColorYellow,
			RequiresReferral: true,
			Urgency:          UrgencyRoutine,
			Treatment: "Refer for assessment. Advise the caregiver on feeding during diarrhea. " +
				"Give zinc supplement for 10 to 14 days.",
		}
	}
	return ClassificationResult{
		Classification: "No Dehydration",
		Color:          ColorGreen,
		Treatment: "Plan A: give extra fluid at home and continue feeding. " +
			"Give zinc supplement for 10 to 14 days. Advise the caregiver when to return immediately.",
	}
}

// AssessFever classifies fever, measles patterns and malaria test outcomes.
func AssessFever(obs FeverObservation) ClassificationResult {
	if !obs.HasFever {
		return ClassificationResult{
			Classification: "No Fever",
			Color:          ColorGreen,
		}
	}

	if obs.HasDangerSigns || obs.StiffNeck {
		return ClassificationResult{
			Classification:   "Very Severe Febrile Disease",
			Color:            ColorRed,
			RequiresReferral: true,
			Urgency:          UrgencyEmergency,
			Treatment: "Give first dose of artesunate or quinine for severe malaria. " +
				"Give first dose of an appropriate antibiotic. Treat to prevent low blood sugar " +
				"and refer URGENTLY to hospital.",
		}
	}

	// Generalized rash with runny nose is the measles pattern.
	if obs.GeneralizedRash && obs.RunnyNose {
		if obs.CornealClouding || obs.MouthUlcers || obs.PusDrainingEye {
			return ClassificationResult{
				Classification:   "Severe Complicated Measles",
				Color:            ColorRed,
				RequiresReferral: true,
				Urgency:          UrgencyEmergency,
				Treatment:        "Give vitamin A. Give first dose of an appropriate antibiotic and refer URGENTLY to hospital.",
			}
		}
		return ClassificationResult{
			Classification: "Measles with Eye or Mouth Complications",
			Color:          ColorYellow,
			Treatment: "Give vitamin A. Apply tetracycline eye ointment if pus is draining from the eye. " +
				"Apply gentian violet to mouth ulcers. Follow up in 2 days.",
		}
	}

	if obs.MalariaTest == MalariaTestPositive {
		return ClassificationResult{
			Classification: "Malaria",
			Color:          ColorYellow,
			Treatment: "Give artemether-lumefantrine for 3 days. Give one dose of paracetamol for " +
				"high fever. Advise the caregiver to return immediately if the fever persists. " +
				"Follow up in 3 days if fever persists.",
		}
	}

	classification := "Fever - Cause Unknown"
	if obs.MalariaTest == MalariaTestNegative {
		classification = "Fever - No Malaria"
	}
	res := ClassificationResult{
		Classification: classification,
		Color:          ColorGreen,
		Treatment: "Give one dose of paracetamol for high fever. " +
			"Advise the caregiver to return if the fever persists for more than 2 days.",
	}
	if obs.DurationDays != nil && *obs.DurationDays >= 7 {
		res.RequiresReferral = true
		res.Urgency = UrgencyRoutine
		res.Treatment = "Fever has been present 7 days or more: refer for assessment. " +
			"Give one dose of paracetamol for high fever."
	}
	return res
}

// AssessEar classifies ear problems.
func AssessEar(obs EarObservation) ClassificationResult {
	if !obs.HasEarProblem {
		return ClassificationResult{
			Classification: "No Ear Problem",
			Color:          ColorGreen,
		}
	}

	if obs.TenderSwellingBehindEar {
		return ClassificationResult{
			Classification:   "Mastoiditis",
			Color:            ColorRed,
			RequiresReferral: true,
			Urgency:          UrgencyUrgent,
			Treatment: "Give first dose of an appropriate antibiotic and first dose of paracetamol " +
				"for pain. Refer URGENTLY to hospital.",
		}
	}
	if obs.DischargeDurationDays != nil && *obs.DischargeDurationDays >= 14 {
		return ClassificationResult{
			Classification:   "Chronic Ear Infection",
			Color:            ColorYellow,
			RequiresReferral: true,
			Urgency:          UrgencyRoutine,
			Treatment:        "Dry the ear by wicking. Refer for assessment.",
		}
	}
	if obs.EarDischarge || obs.EarPain {
		return ClassificationResult{
			Classification: "Acute Ear Infection",
			Color:          ColorYellow,
			Treatment: "Give oral amoxicillin for 5 days. Give paracetamol for pain. " +
				"Dry the ear by wicking if discharge is present. Follow up in 5 days.",
		}
	}
	return ClassificationResult{
		Classification: "No Ear Infection",
		Color:          ColorGreen,
	}
}

// Anthropometric cutoffs for acute malnutrition.
const (
	muacSevereCutoff   = 11.5
	muacModerateCutoff = 12.5
	zScoreSevereCutoff = -3.0
	zScoreModCutoff    = -2.0
)

// AssessNutrition classifies nutritional status and anemia. A missing MUAC or
// z-score never counts as malnutrition.
func AssessNutrition(obs NutritionObservation) ClassificationResult {
	muacSevere := obs.MUAC != nil && *obs.MUAC < muacSevereCutoff
	zSevere := obs.WeightForAgeZScore != nil && *obs.WeightForAgeZScore < zScoreSevereCutoff

	if obs.VisibleSevereWasting || obs.BilateralEdema || muacSevere || zSevere {
		return ClassificationResult{
			Classification:   "Severe Acute Malnutrition",
			Color:            ColorRed,
			RequiresReferral: true,
			Urgency:          UrgencyUrgent,
			Treatment: "Give first dose of an appropriate antibiotic. Refer URGENTLY to hospital " +
				"or therapeutic feeding programme. Keep the child warm on the way.",
		}
	}
	if obs.SeverePalmarPallor {
		return ClassificationResult{
			Classification:   "Severe Anemia",
			Color:            ColorRed,
			RequiresReferral: true,
			Urgency:          UrgencyUrgent,
			Treatment:        "Refer URGENTLY to hospital for assessment and possible transfusion.",
		}
	}

	muacModerate := obs.MUAC != nil && *obs.MUAC >= muacSevereCutoff && *obs.MUAC < muacModerateCutoff
	zModerate := obs.WeightForAgeZScore != nil &&
		*obs.WeightForAgeZScore >= zScoreSevereCutoff && *obs.WeightForAgeZScore < zScoreModCutoff
	if muacModerate || zModerate {
		return ClassificationResult{
			Classification: "Moderate Acute Malnutrition",
			Color:          ColorYellow,
			Treatment: "Enroll in supplementary feeding programme. Assess feeding and counsel the " +
				"caregiver. Follow up in 30 days.",
		}
	}
	if obs.PalmarPallor {
		return ClassificationResult{
			Classification: "Anemia",
			Color:          ColorYellow,
			Treatment: "Give iron and folic acid for 14 days. Give mebendazole if the child is " +
				"1 year or older and has had no dose in the previous 6 months. Follow up in 14 days.",
		}
	}
	return ClassificationResult{
		Classification: "No Malnutrition or Anemia",
		Color:          ColorGreen,
		Treatment: "If the child is less than 2 years old, assess feeding and counsel the caregiver. " +
			"Praise good feeding practices.",
	}
}
