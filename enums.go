package cepac

// Gender enumerates patient sex at model entry.
type Gender int

const (
	Female Gender = iota
	Male
)

// HIVState enumerates the adult HIV infection state machine.
type HIVState int

const (
	HIVNegative HIVState = iota
	HIVAcute
	HIVAsympChronic
	HIVSympChronic
)

// PediatricHIVState enumerates the pediatric-specific infection state
// machine, distinguishing in-utero/peripartum/postpartum acquisition.
type PediatricHIVState int

const (
	PedHIVNegative PediatricHIVState = iota
	PedHIVInUtero
	PedHIVPeripartum
	PedHIVPostpartum
)

// PediatricAgeCategory buckets age for pediatric slope/eligibility
// lookups.
type PediatricAgeCategory int

const (
	AgeUnder1 PediatricAgeCategory = iota
	Age1to2
	Age2to5
	Age5to12
	Age12to18
	AgeAdult
)

// MaternalStatus enumerates the mother's HIV/CD4 status used to seed a
// pediatric patient's priors.
type MaternalStatus int

const (
	MaternalNegative MaternalStatus = iota
	MaternalChronicHighCD4
	MaternalChronicLowCD4
	MaternalAcute
)

// BreastfeedingMode enumerates infant feeding practice, which gates
// ongoing transmission risk and proph eligibility.
type BreastfeedingMode int

const (
	BreastfeedingNone BreastfeedingMode = iota
	BreastfeedingExclusive
	BreastfeedingMixed
	BreastfeedingComplementary
	BreastfeedingReplacement
)

// HVLStratum is a categorical viral-load bucket; higher index means
// higher viral load.
type HVLStratum int

const (
	HVLVeryLow HVLStratum = iota
	HVLLow
	HVLMed
	HVLHigh
	HVLVeryHigh
	numHVLStrata = int(HVLVeryHigh) + 1
)

// OIType enumerates the acute-opportunistic-infection catalog. The order
// here is the fixed walk order used by acute OI selection (§4.5).
type OIType int

const (
	OIPCP OIType = iota
	OIMAC
	OITuberculosisAsOI // only used when TB module disabled, REDESIGN FLAG (iii)
	OICandidiasis
	OIBacterialPneumonia
	OIToxoplasmosis
	OICMV
	OICryptococcosis
	numOITypes = int(OICryptococcosis) + 1
)

// CareState enumerates the HIV-care continuum position of a patient.
type CareState int

const (
	CareNegative CareState = iota
	CareUndetected
	CareUnlinked
	CareInCare
	CareLTFU
	CareReturned
)

// PrEPStatus enumerates a negative patient's relationship to PrEP.
type PrEPStatus int

const (
	PrEPNever PrEPStatus = iota
	PrEPOn
	PrEPDroppedOut
)

// EfficacyState enumerates an ART regimen's current efficacy.
type EfficacyState int

const (
	EfficacySuccess EfficacyState = iota
	EfficacyFailure
)

// ARTStopType enumerates why an ART regimen was stopped.
type ARTStopType int

const (
	StopNone ARTStopType = iota
	StopMaxMonths
	StopMajorToxicity
	StopChronicToxicitySwitch
	StopObservedFailure
	StopLTFU
	StopSTI
)

// HeterogeneityOutcome indexes the per-patient ART response factors
// derived from the response logit (§4.6).
type HeterogeneityOutcome int

const (
	OutcomeSuppression HeterogeneityOutcome = iota
	OutcomeLateFailure
	OutcomeARTEffectOI
	OutcomeARTEffectCHRM
	OutcomeARTEffectMortality
	OutcomeResistance
	OutcomeToxicity
	OutcomeCost
	OutcomeRestart
	OutcomeResuppression
	numHeterogeneityOutcomes = int(OutcomeResuppression) + 1
)

// ToxicitySeverity enumerates the severity band of an ARTToxicityEffect.
type ToxicitySeverity int

const (
	ToxicityMinor ToxicitySeverity = iota
	ToxicityChronic
	ToxicityMajor
)

// ToxicityDuration enumerates how long an ARTToxicityEffect's QOL/cost
// contribution stays in scope.
type ToxicityDuration int

const (
	DurationThisMonth ToxicityDuration = iota
	DurationSubRegimen
	DurationRegimen
	DurationUntilDeath
)

// TBState enumerates the TB natural-history state machine.
type TBState int

const (
	TBUninfected TBState = iota
	TBLatent
	TBActivePulm
	TBActiveExtrapulm
	TBPreviouslyTreated
	TBTreatmentDefault
)

// TBStrain enumerates drug-resistance category, monotonically
// increasing in resistance.
type TBStrain int

const (
	StrainDS TBStrain = iota
	StrainMDR
	StrainXDR
)

// TBCareState mirrors CareState but for the TB-specific continuum used
// when HIV/TB clinics are not integrated.
type TBCareState int

const (
	TBCareUnlinked TBCareState = iota
	TBCareInCare
	TBCareLTFU
	TBCareRTC
)

// MortalityCause labels a recorded cause of death.
type MortalityCause int

const (
	CauseBackground MortalityCause = iota
	CauseHIV
	CauseOI
	CauseCHRM
	CauseToxicity
	CauseTB
	CauseProphToxicity
)

// CostSubgroup enumerates the parallel cost/time totals accumulated
// alongside the headline total, per §4.13.
type CostSubgroup int

const (
	SubgroupHIVNegative CostSubgroup = iota
	SubgroupPreLink
	SubgroupPreART
	SubgroupOnART
	SubgroupLTFUAfterART
	SubgroupLTFUNeverART
	SubgroupRTC
	SubgroupNeverLostOnART
	SubgroupOnARTFirst6Months
	SubgroupOn1stLineART
	SubgroupOn2ndPlusLineART
	numCostSubgroups = int(SubgroupOn2ndPlusLineART) + 1
)
