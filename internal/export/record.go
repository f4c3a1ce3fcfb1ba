package export

import (
	"time"

	"github.com/google/uuid"

	"github.com/clearbill/assess/internal/scoring"
)

// Respondent is the contact block captured alongside a submission.
type Respondent struct {
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
	Organization string `json:"organization,omitempty"`
}

// ForceSnapshot is the compact per-force row carried in exports.
type ForceSnapshot struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Exposure int    `json:"exposure"`
	Level    string `json:"level"`
}

// Record is one completed submission flattened for export: webhook payload,
// CSV row, and database archive all read from this shape.
type Record struct {
	ID         string            `json:"id"`
	Timestamp  time.Time         `json:"timestamp"`
	Respondent Respondent        `json:"respondent"`
	Segment    string            `json:"segment"`
	Answers    scoring.AnswerSet `json:"answers"`

	Overall    int   `json:"overall"`
	Categories []int `json:"categories"`

	AnnualBilling             float64 `json:"annual_billing"`
	ARDays                    float64 `json:"ar_days"`
	CashInAR                  int     `json:"cash_in_ar"`
	TotalFinancialOpportunity int     `json:"total_financial_opportunity"`
	BadDebtRate               float64 `json:"bad_debt_rate"`
	CurrentBadDebt            int     `json:"current_bad_debt"`

	ResiliencyIndex      int             `json:"resiliency_index"`
	ResiliencyLevel      string          `json:"resiliency_level"`
	ProjectedIndex       int             `json:"projected_index"`
	ProjectedImprovement int             `json:"projected_improvement"`
	Forces               []ForceSnapshot `json:"forces,omitempty"`

	Version string `json:"version"`
}

// RecordVersion tags the export payload schema.
const RecordVersion = "2.0"

// NewRecord flattens a finished report into an export record.
func NewRecord(respondent Respondent, answers scoring.AnswerSet, report scoring.Report) Record {
	rec := Record{
		ID:         uuid.NewString(),
		Timestamp:  time.Now().UTC(),
		Respondent: respondent,
		Segment:    report.Scores.Segment,
		Answers:    answers,

		Overall:    report.Scores.Overall,
		Categories: report.Scores.Categories,

		AnnualBilling:             report.Insights.AnnualBilling,
		ARDays:                    report.Insights.ARDays,
		CashInAR:                  report.Insights.CashInAR,
		TotalFinancialOpportunity: report.Insights.TotalFinancialOpportunity,
		BadDebtRate:               report.Insights.BadDebtRate,
		CurrentBadDebt:            report.Insights.CurrentBadDebt,

		ResiliencyIndex:      report.Resiliency.Index,
		ResiliencyLevel:      report.Resiliency.Level,
		ProjectedIndex:       report.Resiliency.ProjectedIndex,
		ProjectedImprovement: report.Resiliency.ProjectedImprovement,

		Version: RecordVersion,
	}
	for _, f := range report.Resiliency.Forces {
		rec.Forces = append(rec.Forces, ForceSnapshot{
			ID: f.ID, Name: f.Name, Exposure: f.AmplifiedExposure, Level: f.Level,
		})
	}
	return rec
}
