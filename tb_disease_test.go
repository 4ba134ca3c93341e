package cepac

import "testing"

func TestTBDiseaseUpdater_InfectionMintsLineage(t *testing.T) {
	p := newTestPatient()
	p.disease.alive = true
	stats := NewRunStats()
	m := newMutator(p, stats, nil)

	ctx := &SimContext{
		TBModuleEnabled: true,
		TB: TBInputs{
			InfectionProbByCD4AgeBin: map[int]map[int]float64{
				0: {0: 1}, // certain infection at CD4 stratum 0, age bin 0
			},
			StrainWeightsOnInfection: [3]float64{1, 0, 0},
		},
	}

	u := &tbDiseaseUpdater{}
	u.PerformMonthlyUpdates(p, ctx, m)

	if p.TB().State() != TBLatent {
		t.Fatalf(UnequalIntParameterError, "TB state after a certain infection draw", int(TBLatent), int(p.TB().State()))
	}
	if p.TB().LineageID().IsNil() {
		t.Errorf(UnexpectedErrorWhileError, "checking lineage id after infection", "lineage id is nil")
	}
}

func TestTBDiseaseUpdater_SkipsWhenModuleDisabled(t *testing.T) {
	p := newTestPatient()
	stats := NewRunStats()
	m := newMutator(p, stats, nil)
	ctx := &SimContext{TBModuleEnabled: false}

	u := &tbDiseaseUpdater{}
	u.PerformMonthlyUpdates(p, ctx, m)

	if p.TB().State() != TBUninfected {
		t.Errorf(UnequalIntParameterError, "TB state with the module disabled", int(TBUninfected), int(p.TB().State()))
	}
}

func TestTBDiseaseUpdater_SkipsWhenDead(t *testing.T) {
	p := newTestPatient()
	p.disease.alive = false
	stats := NewRunStats()
	m := newMutator(p, stats, nil)
	ctx := &SimContext{
		TBModuleEnabled: true,
		TB: TBInputs{
			InfectionProbByCD4AgeBin: map[int]map[int]float64{0: {0: 1}},
		},
	}

	u := &tbDiseaseUpdater{}
	u.PerformMonthlyUpdates(p, ctx, m)

	if p.TB().State() != TBUninfected {
		t.Errorf(UnequalIntParameterError, "TB state for a dead patient", int(TBUninfected), int(p.TB().State()))
	}
}
