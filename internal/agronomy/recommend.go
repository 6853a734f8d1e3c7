// Package agronomy projects a variety's static care profile onto the current
// month. No state, no persistence; the rules fire in declaration order.
package agronomy

import (
	"fmt"
	"time"
)

// Recommendation kinds.
const (
	TypeCareSuggestion = "CARE_SUGGESTION"
	TypeTaskReminder   = "TASK_REMINDER"
	TypeSeasonalTip    = "SEASONAL_TIP"
)

// Urgency levels, lowest to highest.
const (
	UrgencyMedium   = "MEDIUM"
	UrgencyHigh     = "HIGH"
	UrgencyCritical = "CRITICAL"
)

// CareProfile is the slice of an olive variety the rules read.
type CareProfile struct {
	Name             string
	WaterNeeds       string
	PruningNeeds     string
	FertilizingNeeds string
	WindTolerance    string
	PeakHarvestMonth time.Month
}

// Recommendation is one qualitative care suggestion.
type Recommendation struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Urgency string `json:"urgency"`
}

// Recommend emits care suggestions for a variety in a given month. Output
// order is rule order; no dedup or priority merge is performed.
func Recommend(profile CareProfile, month time.Month) []Recommendation {
	var recs []Recommendation

	// Irrigation through the dry season
	if profile.WaterNeeds == "HIGH" && month >= time.May && month <= time.September {
		recs = append(recs, Recommendation{
			Type:    TypeCareSuggestion,
			Title:   "Αυξημένο πότισμα",
			Message: fmt.Sprintf("Η ποικιλία %s χρειάζεται εντατικό πότισμα αυτή την εποχή. Ποτίστε 2-3 φορές την εβδομάδα.", profile.Name),
			Urgency: UrgencyHigh,
		})
	}

	// Winter pruning window
	if profile.PruningNeeds == "INTENSIVE" && (month == time.January || month == time.February) {
		recs = append(recs, Recommendation{
			Type:    TypeTaskReminder,
			Title:   "Χειμερινό κλάδεμα",
			Message: fmt.Sprintf("Η ποικιλία %s χρειάζεται εντατικό κλάδεμα. Ιδανική περίοδος για διαμόρφωση κόμης.", profile.Name),
			Urgency: UrgencyHigh,
		})
	}

	// Spring fertilizing
	if profile.FertilizingNeeds == "HIGH" && (month == time.March || month == time.April) {
		recs = append(recs, Recommendation{
			Type:    TypeTaskReminder,
			Title:   "Ανοιξιάτικη λίπανση",
			Message: fmt.Sprintf("Η ποικιλία %s ωφελείται από λίπανση πριν την άνθιση.", profile.Name),
			Urgency: UrgencyMedium,
		})
	}

	// Frost exposure for wind-sensitive varieties
	if profile.WindTolerance == "LOW" && (month == time.December || month == time.January || month == time.February) {
		recs = append(recs, Recommendation{
			Type:    TypeCareSuggestion,
			Title:   "Προστασία από παγετό",
			Message: fmt.Sprintf("Η ποικιλία %s είναι ευαίσθητη σε κρύο αέρα. Εξετάστε αντιπαγετική προστασία.", profile.Name),
			Urgency: UrgencyMedium,
		})
	}

	// Harvest peak
	peak := profile.PeakHarvestMonth
	if peak == 0 {
		peak = time.October
	}
	if month == peak {
		recs = append(recs, Recommendation{
			Type:    TypeSeasonalTip,
			Title:   "Περίοδος συγκομιδής",
			Message: fmt.Sprintf("Κύρια περίοδος συγκομιδής για την %s. Παρακολουθήστε την ωρίμανση των καρπών.", profile.Name),
			Urgency: UrgencyCritical,
		})
	}

	return recs
}
