package cepac

import (
	"testing"

	"github.com/segmentio/ksuid"
)

func newTestPatient() *Patient {
	rng := NewStream(FixedSeed, 1)
	p := NewPatient(1, rng)
	return p
}

func TestMutator_KillFreezesDeathState(t *testing.T) {
	p := newTestPatient()
	stats := NewRunStats()
	m := newMutator(p, stats, nil)
	m.SetDiscount(NewDiscountRate(0), nil)

	m.Kill(CauseHIV, 500)
	if p.IsAlive() {
		t.Errorf(UnequalStringParameterError, "IsAlive after Kill", "false", "true")
	}
	costAfterFirstKill := p.General().CostsDiscounted()

	// A second Kill call must be a no-op: once dead, no field may change.
	m.Kill(CauseTB, 999)
	if cause := p.Disease().CauseOfDeath(); cause != CauseHIV {
		t.Errorf(UnequalIntParameterError, "cause of death after redundant Kill", int(CauseHIV), int(cause))
	}
	if got := p.General().CostsDiscounted(); got != costAfterFirstKill {
		t.Errorf(UnequalFloatParameterError, "death cost after redundant Kill", costAfterFirstKill, got)
	}
}

func TestMutator_AddCostAccumulatesTotalAndSubgroup(t *testing.T) {
	p := newTestPatient()
	stats := NewRunStats()
	m := newMutator(p, stats, nil)
	m.SetDiscount(NewDiscountRate(0), nil)

	m.AddCost(100, SubgroupOnART)
	m.AddCost(50, SubgroupOnART)
	m.AddCost(25, SubgroupPreART)

	if got := p.General().CostsDiscounted(); got != 175 {
		t.Errorf(UnequalFloatParameterError, "total discounted cost", 175, got)
	}
	if got := p.General().CostsBySubgroup(SubgroupOnART); got != 150 {
		t.Errorf(UnequalFloatParameterError, "SubgroupOnART total", 150, got)
	}
	if got := p.General().CostsBySubgroup(SubgroupPreART); got != 25 {
		t.Errorf(UnequalFloatParameterError, "SubgroupPreART total", 25, got)
	}
	if got := stats.TotalCostsDiscounted(); got != 175 {
		t.Errorf(UnequalFloatParameterError, "RunStats total discounted cost", 175, got)
	}
	bySubgroup := stats.CostsBySubgroup()
	if got := bySubgroup[SubgroupOnART]; got != 150 {
		t.Errorf(UnequalFloatParameterError, "RunStats SubgroupOnART total", 150, got)
	}
}

func TestMutator_AddCostZeroAmountIsNoOp(t *testing.T) {
	p := newTestPatient()
	stats := NewRunStats()
	m := newMutator(p, stats, nil)
	m.SetDiscount(NewDiscountRate(0), nil)

	m.AddCost(0, SubgroupOnART)
	if got := p.General().CostsDiscounted(); got != 0 {
		t.Errorf(UnequalFloatParameterError, "cost after AddCost(0,...)", 0, got)
	}
}

func TestMutator_TBLineagePersistsAcrossEscalation(t *testing.T) {
	p := newTestPatient()
	stats := NewRunStats()
	m := newMutator(p, stats, nil)

	m.SetTBStrain(StrainDS)
	lineage := ksuid.New()
	m.SetTBLineage(lineage)
	if p.TB().LineageID().String() != lineage.String() {
		t.Errorf(UnequalStringParameterError, "lineage id after SetTBLineage", lineage.String(), p.TB().LineageID().String())
	}

	// Escalating resistance keeps the same lineage handle; only rolling a
	// fresh infection mints a new one.
	m.SetTBStrain(StrainMDR)
	if p.TB().LineageID().String() != lineage.String() {
		t.Errorf(UnequalStringParameterError, "lineage id after strain escalation", lineage.String(), p.TB().LineageID().String())
	}
}
