package cepac

// Site identifiers passed to every Stream draw so that a trace or a
// historical-reproducibility audit can attribute a draw to the exact
// call site that made it (§4.1). Grouped by updater; values only need to
// be distinct within this package. siteRiskFactor reserves a contiguous
// block of 32 ids, one per configurable risk factor.
const (
	siteAgeStratumPick = iota
	siteAgeWithinStratum
	siteAgeNormal
	siteGenderDraw
	siteInitialHIVState
	siteCD4Sqrt
	siteCD4Normal
	siteHVLInitial
	siteRiskFactor // through siteRiskFactor+31
)

const siteRiskFactorBlockEnd = siteRiskFactor + 32

const (
	siteMaternalStatus = siteRiskFactorBlockEnd + iota
	siteMaternalART
	siteMaternalSuppress
	siteBreastfeeding

	siteHIVInfectionDraw
	siteAcuteToChronicDraw

	siteCHRMIncidence

	siteToxicityFireDraw
	siteToxicityStartMonth

	siteTBInfectionDraw
	siteTBStrainDraw
	siteTBActivationDraw
	siteTBPulmSplitDraw
	siteTBSputumDraw
	siteTBRelapseDraw
	siteTBSelfCureDraw

	siteAcuteOIDraw // through siteAcuteOIDraw+(numOITypes-1)

	siteMortalityDrawBase = siteAcuteOIDraw + 8
)

const (
	siteMortalityDraw = siteMortalityDrawBase + iota
	siteMortalityCauseDraw

	siteCD4Slope
	siteHVLStep
	siteCD4PctSlope
	siteEnvelopeSlope

	siteHIVTestAccept
	siteHIVTestReturn
	siteHIVTestResult
	siteHIVTestInterval
	siteLinkageDraw
	sitePrEPUptake
	sitePrEPCoverage
	sitePrEPDropout

	siteAdherenceStart
	siteAdherenceDuration
	siteAdherenceLogit
	siteLTFUDraw
	siteRTCDraw

	siteARTResponseLogit
	siteARTInitialEfficacy
	siteARTLateFail
	siteARTRestart
	siteARTResuppression

	siteLabTestSchedule
	siteLabTestNoise

	siteClinicVisitDraw
	siteARTStartDraw
	siteProphStartDraw
	siteProphToxDraw
	siteProphResistanceDraw

	siteTBTestAccept
	siteTBTestPickup
	siteTBTestResult
	siteTBTreatmentLineDraw
	siteTBTreatmentToxDraw
	siteTBTreatmentSuccessDraw
	siteTBProphStartDraw
	siteTBProphToxDraw
	siteTBLTFUDraw
	siteTBRTCDraw

	siteTransmissionDraw

	siteMTCTBirthDraw
	siteMTCTRouteDraw
	sitePostpartumTransmissionDraw
	siteEIDResultDraw
	siteEIDLinkDraw
	siteSTIStartDraw

	siteOIObservedDraw // through siteOIObservedDraw+7 (numOITypes)

	siteProphNonComplianceDraw = siteOIObservedDraw + 8
)
