package agronomy

import (
	"testing"
	"time"
)

func TestRecommendWateringInSummer(t *testing.T) {
	profile := CareProfile{Name: "Καλαμών", WaterNeeds: "HIGH"}

	recs := Recommend(profile, time.July)
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}
	if recs[0].Type != TypeCareSuggestion || recs[0].Urgency != UrgencyHigh {
		t.Errorf("unexpected recommendation: %+v", recs[0])
	}

	// Same profile outside the dry season
	if recs := Recommend(profile, time.November); len(recs) != 0 {
		t.Errorf("expected no recommendations in November, got %d", len(recs))
	}
}

func TestRecommendPruningWindow(t *testing.T) {
	profile := CareProfile{Name: "Καλαμών", PruningNeeds: "INTENSIVE"}

	for _, m := range []time.Month{time.January, time.February} {
		recs := Recommend(profile, m)
		if len(recs) != 1 || recs[0].Type != TypeTaskReminder {
			t.Errorf("month %s: expected pruning reminder, got %+v", m, recs)
		}
	}
	if recs := Recommend(profile, time.March); len(recs) != 0 {
		t.Errorf("expected no pruning reminder in March, got %+v", recs)
	}
}

func TestRecommendHarvestPeak(t *testing.T) {
	// Default peak is October
	recs := Recommend(CareProfile{Name: "Κορωνέικη"}, time.October)
	if len(recs) != 1 || recs[0].Urgency != UrgencyCritical {
		t.Fatalf("expected critical harvest tip, got %+v", recs)
	}

	// Explicit peak overrides the default
	profile := CareProfile{Name: "Χονδρολιά", PeakHarvestMonth: time.September}
	if recs := Recommend(profile, time.September); len(recs) != 1 {
		t.Errorf("expected harvest tip in September, got %+v", recs)
	}
	if recs := Recommend(profile, time.October); len(recs) != 0 {
		t.Errorf("expected no harvest tip in October, got %+v", recs)
	}
}

func TestRecommendRuleOrder(t *testing.T) {
	// A thirsty, intensively pruned variety in January fires pruning only;
	// in July watering only; rules never merge.
	profile := CareProfile{
		Name:             "Καλαμών",
		WaterNeeds:       "HIGH",
		PruningNeeds:     "INTENSIVE",
		FertilizingNeeds: "HIGH",
	}

	recs := Recommend(profile, time.March)
	if len(recs) != 1 || recs[0].Title != "Ανοιξιάτικη λίπανση" {
		t.Errorf("expected fertilizing reminder in March, got %+v", recs)
	}
}
