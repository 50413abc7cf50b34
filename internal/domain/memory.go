package domain

import (
	"context"
	"time"
)

// AssessmentRecord is one completed assessment persisted for history.
type AssessmentRecord struct {
	ID         string    `json:"id"`
	Company    string    `json:"company"`
	Industry   Industry  `json:"industry"`
	TenantURL  string    `json:"tenant_url"`
	Score      int       `json:"score"`
	ChunkCount int       `json:"chunk_count"`
	Delivered  int       `json:"delivered"`
	Fallback   bool      `json:"fallback"`
	CreatedAt  time.Time `json:"created_at"`
}

// AssessmentStore handles persistent storage of assessment history.
type AssessmentStore interface {
	SaveAssessment(ctx context.Context, rec AssessmentRecord) error
	RecentAssessments(ctx context.Context, limit int) ([]AssessmentRecord, error)
	PurgeOlderThan(ctx context.Context, age time.Duration) (int64, error)
	Close() error
}
