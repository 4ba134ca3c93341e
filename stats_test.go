package cepac

import "testing"

func TestRunStats_MergeSumsAllFields(t *testing.T) {
	a := NewRunStats()
	b := NewRunStats()

	a.recordCost(100, 90, SubgroupOnART)
	a.RecordLifeMonth(1, 0.9, 0.8)
	a.recordDeath(CauseHIV, 12)
	a.RecordOI(OIPCP)
	a.RecordTBEvent(TBActivePulm)
	a.RecordPatientFinalized(&Patient{})

	b.recordCost(50, 45, SubgroupOnART)
	b.RecordLifeMonth(1, 0.9, 0.8)
	b.recordDeath(CauseTB, 24)
	b.RecordOI(OIPCP)
	b.RecordPatientFinalized(&Patient{})

	a.Merge(b)

	if got := a.TotalCostsDiscounted(); got != 135 {
		t.Errorf(UnequalFloatParameterError, "merged total discounted cost", 135, got)
	}
	if got := a.TotalCostsUndiscounted(); got != 150 {
		t.Errorf(UnequalFloatParameterError, "merged total undiscounted cost", 150, got)
	}
	if got := a.CostsBySubgroup()[SubgroupOnART]; got != 135 {
		t.Errorf(UnequalFloatParameterError, "merged SubgroupOnART total", 135, got)
	}
	if got := a.NumPatients(); got != 2 {
		t.Errorf(UnequalIntParameterError, "merged patient count", 2, got)
	}
	if got := a.TotalLifeMonthsDiscounted(); got != 1.8 {
		t.Errorf(UnequalFloatParameterError, "merged discounted life months", 1.8, got)
	}
	if got := a.DeathsByCause()[CauseHIV]; got != 1 {
		t.Errorf(UnequalIntParameterError, "merged HIV death count", 1, got)
	}
	if got := a.DeathsByCause()[CauseTB]; got != 1 {
		t.Errorf(UnequalIntParameterError, "merged TB death count", 1, got)
	}
	if got := len(a.DeathMonths()); got != 2 {
		t.Errorf(UnequalIntParameterError, "merged death-month record count", 2, got)
	}
	if got := a.OICounts()[OIPCP]; got != 2 {
		t.Errorf(UnequalIntParameterError, "merged PCP count", 2, got)
	}
	if got := a.TBEvents()[TBActivePulm]; got != 1 {
		t.Errorf(UnequalIntParameterError, "merged TB event count", 1, got)
	}
}

func TestRunStats_IncidenceCountersTrackByMonth(t *testing.T) {
	s := NewRunStats()
	s.RecordIncidentHIVInfection(5)
	s.RecordIncidentHIVInfection(5)
	s.RecordHIVNegAtStart(5)

	if got := s.IncidentHIVInfections(5); got != 2 {
		t.Errorf(UnequalIntParameterError, "incident infections at month 5", 2, got)
	}
	if got := s.HIVNegAtStart(5); got != 1 {
		t.Errorf(UnequalIntParameterError, "HIV-negative-at-start at month 5", 1, got)
	}
	if got := s.IncidentHIVInfections(6); got != 0 {
		t.Errorf(UnequalIntParameterError, "incident infections at an unrecorded month", 0, got)
	}
}
