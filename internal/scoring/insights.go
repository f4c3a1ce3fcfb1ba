package scoring

import "math"

// Well-known question ids the financial model reads directly. They are part
// of the default catalog's contract with the insight calculations; a custom
// catalog that omits them still scores, it just produces default-driven
// insights.
const (
	QMonthlyBilling    = "monthly_patient_billing"
	QPatientARDays     = "patient_ar_days"
	QHDHPPercentage    = "hdhp_percentage"
	QUnpaidBadDebt     = "unpaid_and_bad_debt"
	QAutopayEnrollment = "autopay_enrollment"
	QStaffBurden       = "billing_staff_burden"
	QConvenienceFee    = "convenience_fee"
	QPaymentOptions    = "payment_options"
)

// Insights is the dollar-denominated financial picture derived from the
// diagnostic answers. All currency values are whole annual dollars unless
// named otherwise.
type Insights struct {
	Segment      string `json:"segment"`
	SegmentLabel string `json:"segment_label"`

	MonthlyBilling float64 `json:"monthly_billing"`
	AnnualBilling  float64 `json:"annual_billing"`
	DailyBilling   float64 `json:"daily_billing"`

	ARDays                 float64 `json:"ar_days"`
	TargetARDays           int     `json:"target_ar_days"`
	CashInAR               int     `json:"cash_in_ar"`
	ProjectedARDays        int     `json:"projected_ar_days"`
	CashFreedByARReduction int     `json:"cash_freed_by_ar_reduction"`
	PotentialFreedCash     int     `json:"potential_freed_cash"`

	BadDebtRate    float64 `json:"bad_debt_rate"`
	CurrentBadDebt int     `json:"current_bad_debt"`
	BadDebtSavings int     `json:"bad_debt_savings"`

	AutopayEnrollment        float64 `json:"autopay_enrollment"`
	AutopayTarget            float64 `json:"autopay_target"`
	ARDaysReductionByAutopay int     `json:"ar_days_reduction_by_autopay"`
	AutopayOpportunity       int     `json:"autopay_opportunity"`

	PaymentPlanOpportunity int `json:"payment_plan_opportunity"`

	CurrentStaffCost int `json:"current_staff_cost"`
	StaffTimeSavings int `json:"staff_time_savings"`

	AnnualCardFeesAbsorbed int `json:"annual_card_fees_absorbed"`
	CreditCardFeeSavings   int `json:"credit_card_fee_savings"`

	HDHPPercent         float64 `json:"hdhp_percent"`
	HDHPExposure        int     `json:"hdhp_exposure"`
	ProjectedHDHPGrowth int     `json:"projected_hdhp_growth"`

	TotalFinancialOpportunity int `json:"total_financial_opportunity"`
}

// numericAnswer reads a diagnostic answer, falling back to the catalog
// question's configured default, then to fallback when the question is
// absent from the catalog entirely.
func (e *Engine) numericAnswer(answers AnswerSet, id string, fallback float64) float64 {
	if v, ok := answers.Number(id); ok {
		return v
	}
	if q := e.catalog.Question(id); q != nil && q.Default != 0 {
		return q.Default
	}
	return fallback
}

// CalculateInsights derives the financial opportunity model from the
// diagnostic answers. Unanswered diagnostics fall back to catalog defaults
// so a partial assessment still produces a coherent dollar story.
func (e *Engine) CalculateInsights(answers AnswerSet) Insights {
	seg := e.segment(answers)
	bench := e.catalog.BenchmarkFor(seg.ID)
	metrics := e.catalog.Projection.Metrics
	stats := e.catalog.Stats

	monthly := e.numericAnswer(answers, QMonthlyBilling, 75000)
	annual := monthly * 12
	daily := annual / 365
	arDays := e.numericAnswer(answers, QPatientARDays, 45)
	hdhpPct := e.numericAnswer(answers, QHDHPPercentage, 30) / 100

	targetAR := bench.TargetARDays
	if targetAR == 0 {
		targetAR = 35
	}

	projectedAR := int(math.Round(arDays * (1 - metrics.ARDaysReduction)))
	cashFreed := int(math.Round(daily * (arDays - float64(projectedAR))))

	badDebtAnswer := answers.StringOr(QUnpaidBadDebt, "chase_manual")
	badDebtRate, ok := e.catalog.BadDebtRates[badDebtAnswer]
	if !ok {
		badDebtRate = 0.04
	}
	currentBadDebt := int(math.Round(annual * badDebtRate))
	badDebtSavings := int(math.Round(float64(currentBadDebt) * metrics.BadDebtReduction))

	autopayPct := answers.NumberOr(QAutopayEnrollment, 0) / 100
	autopayGap := math.Max(0, metrics.AutopayTarget-autopayPct)
	arReductionByAutopay := int(math.Round(arDays * autopayGap * 0.8))
	autopayOpportunity := int(math.Round(daily * float64(arReductionByAutopay)))

	staffAnswer := answers.StringOr(QStaffBurden, "part_of_roles")
	staffCost, ok := e.catalog.StaffCosts[staffAnswer]
	if !ok {
		staffCost = 30000
	}
	staffSavings := int(math.Round(float64(staffCost) * metrics.StaffSavingsRate))

	feeAnswer := answers.StringOr(QConvenienceFee, "absorb")
	cardFees := 0
	if feeAnswer == "absorb" || feeAnswer == "considering" {
		cardFees = int(math.Round(annual * stats.CardPaymentShare * stats.CreditCardFeeRate))
	}

	hdhpExposure := int(math.Round(annual * hdhpPct))
	hdhpGrowth := int(math.Round(float64(hdhpExposure) * stats.HDHPGrowthRate))

	potentialFreed := 0
	if arDays > float64(targetAR) {
		potentialFreed = int(math.Round(daily * (arDays - float64(targetAR))))
	}

	return Insights{
		Segment:      seg.ID,
		SegmentLabel: seg.Label,

		MonthlyBilling: monthly,
		AnnualBilling:  annual,
		DailyBilling:   daily,

		ARDays:                 arDays,
		TargetARDays:           targetAR,
		CashInAR:               int(math.Round(daily * arDays)),
		ProjectedARDays:        projectedAR,
		CashFreedByARReduction: cashFreed,
		PotentialFreedCash:     potentialFreed,

		BadDebtRate:    badDebtRate,
		CurrentBadDebt: currentBadDebt,
		BadDebtSavings: badDebtSavings,

		AutopayEnrollment:        autopayPct * 100,
		AutopayTarget:            metrics.AutopayTarget * 100,
		ARDaysReductionByAutopay: arReductionByAutopay,
		AutopayOpportunity:       autopayOpportunity,

		PaymentPlanOpportunity: int(math.Round(float64(currentBadDebt) * metrics.PlanRecoveryRate)),

		CurrentStaffCost: staffCost,
		StaffTimeSavings: staffSavings,

		AnnualCardFeesAbsorbed: cardFees,
		CreditCardFeeSavings:   cardFees,

		HDHPPercent:         hdhpPct * 100,
		HDHPExposure:        hdhpExposure,
		ProjectedHDHPGrowth: hdhpGrowth,

		TotalFinancialOpportunity: cashFreed + badDebtSavings + staffSavings,
	}
}
