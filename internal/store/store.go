package store

import (
	"context"
	"time"

	"github.com/clearbill/assess/internal/export"
)

// SubmissionFilter narrows ListSubmissions. Zero values mean "no filter".
type SubmissionFilter struct {
	Segment  string
	Since    *time.Time
	MinScore *int
	Limit    int
	Offset   int
}

// SubmissionStats is the aggregate view served by the admin stats endpoint.
type SubmissionStats struct {
	TotalSubmissions   int            `json:"total_submissions"`
	AvgOverall         float64        `json:"avg_overall"`
	AvgResiliencyIndex float64        `json:"avg_resiliency_index"`
	TotalOpportunity   int64          `json:"total_opportunity"`
	BySegment          map[string]int `json:"by_segment"`
}

// Store archives completed submissions. The server runs without one when no
// database is configured; callers must tolerate a nil Store.
type Store interface {
	SaveSubmission(ctx context.Context, rec *export.Record) error
	GetSubmission(ctx context.Context, id string) (*export.Record, error)
	ListSubmissions(ctx context.Context, filter SubmissionFilter) ([]*export.Record, error)
	GetStats(ctx context.Context) (*SubmissionStats, error)
	Close() error
}
