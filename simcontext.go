package cepac

// SimContext holds every parameter table for a run, grouped by subsystem
// as value types owned by the context (§9: "group by subsystem ... pass
// by const reference / immutable handle"). It is immutable once
// constructed and is safe to share read-only across goroutines (§5).
type SimContext struct {
	InputVersion string

	Cohort CohortInputs
	RNG    RNGInputs

	General    GeneralInputs
	Pediatric  PediatricInputs
	CHRM       CHRMInputs
	OI         OIInputs
	CD4HVL     CD4HVLInputs
	ART        ARTInputs
	Proph      ProphInputs
	TB         TBInputs
	Testing    TestingInputs
	PrEP       PrEPInputs
	Behavior   BehaviorInputs
	Mortality  MortalityInputs
	Cost       CostInputs
	Transmission TransmissionInputs

	DynamicTransmissionEnabled bool
	TBModuleEnabled            bool
	PediatricModuleEnabled     bool
	TBAsGenericOIWhenDisabled  bool // REDESIGN FLAG (iii)
}

// CohortInputs controls how many patients to simulate and the seeding
// policy.
type CohortInputs struct {
	NumPatients int
	SeedMode    SeedMode
	FixedSeed   int64
}

// RNGInputs is retained as a distinct group even though it currently only
// carries the discount rates, mirroring the way the original keeps
// orthogonal numeric-utility config separate from domain config.
type RNGInputs struct {
	DiscountRateAnnual    float64
	AltDiscountRatesAnnual []float64
}

// GeneralInputs covers age/gender/risk-factor initial draws and the
// base HIV-incidence table (§4.3).
type GeneralInputs struct {
	UseCustomAgeDist bool
	AgeMean          float64
	AgeStdDev        float64
	AgeStrata        []AgeStratum

	MaleFraction float64

	InitialHIVStateWeights [4]float64 // indexed by HIVState

	// IncidenceByGenderAgeRisk[gender][ageBin][riskStratum]
	IncidenceByGenderAgeRisk map[Gender]map[int]map[int]float64
	IncidenceReductionByMonth map[int]float64

	RiskCategoryProbs []float64

	CD4Mean, CD4StdDev float64
	CD4SqrtTransform   bool
	CD4Max             float64

	// HVLDistByCD4Stratum[cd4Stratum] gives categorical weights over
	// HVLStratum.
	HVLDistByCD4Stratum map[int][numHVLStrata]float64
}

// AgeStratum is one bucket of the up-to-8-stratum custom age CDF.
type AgeStratum struct {
	MinMonths, MaxMonths int
	Weight               float64
}

// PediatricInputs covers maternal-status priors, breastfeeding, and EID
// eligibility (§4.9 pediatric notes, §3 pediatric fields).
type PediatricInputs struct {
	MaternalStatusWeights [4]float64
	BreastfeedingWeights  [5]float64
	DefaultBreastfeedingStopAgeMonths int
	EIDEligibilityAgeMonths int
	EIDSensitivity, EIDSpecificity float64
	EIDReturnDelayMonths int

	// BirthTransmissionProb is the combined in-utero/peripartum
	// mother-to-child transmission probability rolled once at birth for
	// an infant exposed to an HIV-positive mother.
	BirthTransmissionProb float64
	// PostpartumMonthlyTransmissionProb is the per-month breastfeeding
	// transmission probability for an infant who tested negative at
	// birth but is still breastfeeding from an HIV-positive mother.
	PostpartumMonthlyTransmissionProb float64
	// InfantProphDurationMonths is how long infant proph (line 0) is
	// kept on from birth before being stopped, absent an earlier
	// confirmed-negative EID result.
	InfantProphDurationMonths int
	// EIDFalsePositiveLinkProb is the probability a false-positive EID
	// result is acted on (linked to care) rather than caught on repeat
	// testing.
	EIDFalsePositiveLinkProb float64
}

// CHRMInputs covers chronic-condition incidence and cost/mortality
// effects, keyed by condition index.
type CHRMInputs struct {
	NumConditions    int
	MonthlyIncidence []float64
	DeathRateRatio   []float64
	MonthlyCost      []float64
}

// OIInputs covers the acute-OI catalog (§4.5).
type OIInputs struct {
	// BaseProbByCD4Stratum[oi][cd4Stratum]
	BaseProbByCD4Stratum map[OIType]map[int]float64
	ARTMultiplier        map[OIType]float64
	DeathRateRatio       map[OIType]float64
	HistoryDurationMonths map[OIType]int
	ResidualDRR          map[OIType]float64

	LogGateCD4Min, LogGateCD4Max float64
	LogGateExcluded              map[OIType]bool
}

// CD4HVLInputs covers natural-history and on-ART slope tables (§4.4).
type CD4HVLInputs struct {
	// OffARTDeclineMean/StdDev[cd4Stratum][hvlStratum]
	OffARTDeclineMean   map[int]map[HVLStratum]float64
	OffARTDeclineStdDev map[int]map[HVLStratum]float64
	BetweenSubjectIncrementStdDev float64

	HVLProgressProb float64 // monthly prob of moving 1 stratum toward setpoint/target

	StageBoundaryMonths [2]int // up to 3 stages

	// OnARTSlopeMean/StdDev[responseType][stage][ageCategory]
	OnARTSlopeMean   map[int]map[int]map[PediatricAgeCategory]float64
	OnARTSlopeStdDev map[int]map[int]map[PediatricAgeCategory]float64

	FailMultiplierEarly float64
	FailMultiplierLate  float64
	FailMultiplierCutoffMonth int

	PediatricEarlyMaxAgeMonths int
}

// ARTInputs covers regimen eligibility, response heterogeneity, and stop
// policy (§4.6).
type ARTInputs struct {
	NumRegimens int

	EligibleCD4Min, EligibleCD4Max float64
	EligibleHVLMin, EligibleHVLMax HVLStratum
	MinMonthToStart, MaxMonthToStart int
	MonthsSincePreviousStopRequired int

	ResponseLogitMean, ResponseLogitStdDev float64

	// ThresholdsByOutcome[outcome] = {L1, L2, lo, hi, exponentiate}
	ThresholdsByOutcome [numHeterogeneityOutcomes]ResponseThreshold

	ProbInitialEfficacy []float64 // indexed by regimen
	EfficacyHorizonMonths []int
	ResuppressionHorizonMonths []int
	ProbLateFail []float64

	MaxMonthsOnRegimen []int
	ObservedFailureCD4DropThreshold float64
	ObservedFailureHVLRiseThreshold int
	ObservedFailureWindowMonths     int
	ObservedFailureCD4Threshold     float64
	ObservedFailureOIThreshold      int
	MonthsFromObservedFailureToStop int

	Toxicity []ARTToxicityTemplate

	// STI (structured treatment interruption) parameters (§4.6 Stop).
	STIEligibleMonths int
	STIStartProb      float64
	STIDurationMonths int
}

// ResponseThreshold parameterizes PiecewiseLinearResponse for one
// heterogeneity outcome.
type ResponseThreshold struct {
	L1, L2, Lo, Hi float64
	Exponentiate   bool
}

// ARTToxicityTemplate is rolled independently at regimen start (§4.6).
type ARTToxicityTemplate struct {
	RegimenIndex int
	Severity     ToxicitySeverity
	DurationKind ToxicityDuration
	Probability  float64
	StartMonthMean, StartMonthStdDev float64
	QOLModifier, MonthlyCost, DeathRateRatio float64
	TimeToImpactMonths int
}

// ProphInputs covers non-TB OI prophylaxis (§4.8).
type ProphInputs struct {
	Lines map[OIType][]ProphLineInputs

	// NonComplianceProb is rolled once at care linkage: the probability
	// a newly proph-eligible patient falls into the subgroup that never
	// reliably takes prophylaxis (§3 Proph "non-compliance flag").
	NonComplianceProb float64
}

// ProphLineInputs is one line in an OI's proph ladder.
type ProphLineInputs struct {
	StartCD4Max, StopCD4Min float64
	MinMonth                int
	MajorToxProb, MinorToxProb float64
	MajorToxDRR             float64
	SwitchOnMajorTox        bool
	ResistanceOnsetMonth    int
	ResistanceDRR           float64
	MonthlyCost             float64
}

// TBInputs covers the full TB subsystem (§4.9).
type TBInputs struct {
	InfectionProbByCD4AgeBin map[int]map[int]float64
	ReinfectionMultiplier    float64
	StrainWeightsOnInfection [3]float64

	ActivationStage1Months int
	ActivationProbStage1ByCD4 map[int]float64
	ActivationProbStage2ByCD4 map[int]float64
	PulmonaryFraction         float64
	SputumHighFraction        float64

	RelapseRateMultiplier, RelapseExponent float64
	RelapseThresholdMonths                int
	RelapseEfficacyHorizonMonths          int
	RelapseCD4Multiplier                  map[int]float64
	RelapseTreatmentDefaultMultiplier      float64

	SelfCureEnabled bool
	MonthsToSelfCure int

	NaturalHistoryMultiplierSegment1 float64
	NaturalHistoryMultiplierSegment2 float64
	NaturalHistorySegmentBoundaryMonth int

	DiagnosticChain []TBDiagnosticTest

	Treatment []TBTreatmentLine

	ProphLines []TBProphLineInputs

	IntegratedHIVTBClinic bool
	MaxMonthsLTFU         int
	LTFUProbByStage       map[TBState]float64
	RTCProbByHIVState     map[HIVState]float64
}

// TBDiagnosticTest is one slot in the ordered diagnostic-test chain.
type TBDiagnosticTest struct {
	Name string

	AcceptProb, PickupProb float64
	Cost                   float64
	// SensitivityByState[trueState] gives the sensitivity by true TB
	// state; Specificity is one value that does not vary by HIV state or
	// CD4 band.
	SensitivityByState map[TBState]float64
	Specificity        float64
	ReturnDelayMonths  int
	ResetOnNoPickup    bool

	// IncludesDST marks a test whose positive result is followed by a
	// drug-susceptibility test before treatment starts, gating the
	// strain-weighted initial-line choice on an observed rather than a
	// true strain (§4.9).
	IncludesDST           bool
	DSTReturnDelayMonths int

	EmpiricStartOnPositiveProb float64
	EmpiricStopOnNegativeProb  float64

	NextOnPositive, NextOnNegative int // index into DiagnosticChain, -1 = end

	RequireSymptoms       bool
	OnHIVDiagnosis        bool
	ObservedCD4Max        float64
	CalendarMonthMin      int
	PeriodicIntervalMonths int
	MinMonthsPostTreatment int
}

// TBTreatmentLine is one line in the multi-line ordered TB regimen
// ladder.
type TBTreatmentLine struct {
	InitialLineWeightByStrain map[TBStrain]float64
	Stage1Months, Stage2Months int
	Stage1ToxProb, Stage2ToxProb float64
	SuccessProbByHIVCD4 map[int]float64
	EarlyObservedFailureMonth int
	ConfirmTestCost           float64
	MaxRepeats                int
	ResistanceIncreaseProbOnFailure float64
	AntiInfectionEfficacy, AntiActivationEfficacy, AntiReinfectionEfficacy float64
	EfficacyHorizonMonths int
	PostEfficacyDecayMonths int
}

// TBProphLineInputs is one line in the TB proph ladder (§4.9).
type TBProphLineInputs struct {
	KnownHIVPositiveOnly bool
	ObservedCD4Max       float64
	RequireOnART         bool
	StartProb            float64
	MaxMonthsOnProph     int
	OnProphEfficacy      float64
	PostProphEfficacy    float64
	PostProphDecayMonths int
	MajorToxProb         float64
	MonthlyCost          float64
}

// TestingInputs covers HIV testing programs and linkage (§4.10).
type TestingInputs struct {
	InitialDetectionProbByState [4]float64
	OIDetectionProb             map[OIType]float64

	ProgramStartAgeMonths int
	AcceptDistribution    [5]float64 // across HIV states
	AcceptIntervalMonths  []int
	AcceptIntervalWeights []float64
	ReturnForResultsProb  float64
	SensitivityByState    [4]float64
	SpecificityByState    [4]float64
	CostPerTest           float64

	BackgroundStartAgeMonths int
	BackgroundAcceptProb     [4]float64
	BackgroundReturnProb     float64
	BackgroundPositiveProb   [4]float64

	LinkageProbByOI     map[OIType]float64
	LinkageProbDefault  float64
}

// PrEPInputs covers PrEP rollout, uptake, dropout, and incidence
// modification (§4.10).
type PrEPInputs struct {
	Enabled            bool
	RolloutShape       float64
	RolloutDuration    int
	UptakeProbByRisk   []float64
	CoverageProb       float64
	IncidenceMultiplier float64
	QOLModifier        float64
	MonthlyCost        float64
	DropoutRatePre     float64
	DropoutRatePost    float64
	DropoutThresholdMonth int
	ReuptakeAfterDropout bool
}

// BehaviorInputs covers adherence interventions and LTFU/RTC logits
// (§4.12).
type BehaviorInputs struct {
	Interventions []AdherenceInterventionInputs

	LTFUCovariateWeights LTFUWeights
	LTFUThreshold        ResponseThreshold
	RTCWeights           RTCWeights
}

// AdherenceInterventionInputs parameterizes one of up to N sequential
// adherence-intervention periods.
type AdherenceInterventionInputs struct {
	DurationMean, DurationStdDev float64
	LogitMean, LogitStdDev       float64
	DistributionKind             string // normal | truncated-normal | squared-normal
	MonthlyCost, StartCost       float64
}

// LTFUWeights parameterizes the LTFU logistic regression.
type LTFUWeights struct {
	Intercept, Age, CD4, Gender, OIHistory, PriorToxicity, RiskFactor float64
}

// RTCWeights parameterizes the return-to-care logistic regression.
// CD4Threshold is the CD4 count (cells/uL) below which LowCD4Coefficient
// is added to the logit; the two are kept separate because one is a
// count and the other a log-odds coefficient (§4.12).
type RTCWeights struct {
	Background, LowCD4Coefficient, AcuteSevereOI, AcuteMildOI, TBPositive float64
	CD4Threshold float64
}

// MortalityInputs covers background mortality tables and the cohort-wide
// multiplier (§4.7).
type MortalityInputs struct {
	// BackgroundRateByAgeGender[ageYears][gender]
	BackgroundRateByAgeGender map[int]map[Gender]float64
	CohortMultiplier          float64
	ApplyMultiplierToSurvivalCurve bool

	// CostOfDeathByAgeARTState[ageBand][onART]
	CostOfDeathByAgeARTState map[int]map[bool]float64

	// HIVDeathRateRatioByCD4HVL[cd4Stratum][hvlStratum] is the HIV
	// disease-progression death-rate ratio applied against background
	// mortality every month a patient is HIV-positive (§4.7, §8 S2).
	HIVDeathRateRatioByCD4HVL map[int]map[HVLStratum]float64
}

// CostInputs covers routine monthly cost/QOL tables not otherwise
// attached to a specific subsystem.
type CostInputs struct {
	RoutineMonthlyCost float64
	BackgroundQOLByGenderAge map[Gender]map[int]float64
	ClinicVisitCost          float64
}

// TransmissionInputs covers the dynamic-transmission feedback hook
// (§4.11).
type TransmissionInputs struct {
	// RateByCD4HVL[cd4Stratum][hvlStratum]
	RateByCD4HVL map[int]map[HVLStratum]float64
	AcuteStateOverrideRate float64
	TimePeriodMultiplier   map[int]float64
	WarmupMonths           int
}
