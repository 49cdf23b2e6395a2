package repository

import (
	"context"
	"time"
)

// RunRecord is the metadata persisted for one measurement run. Only
// run metadata is stored here; the measurement table's cell data is
// never persisted.
type RunRecord struct {
	ID           string    `json:"id"`
	ImageSource  string    `json:"image_source"`
	StartedAt    time.Time `json:"started_at"`
	Duration     float64   `json:"duration_sec"`
	ObjectCount  int       `json:"object_count"`
	FeatureNames []string  `json:"feature_names"`
	Connectivity int       `json:"connectivity"`
	Success      bool      `json:"success"`
	ErrorMessage string    `json:"error_message,omitempty"`
}

// RunRepository records measurement run history and answers queries
// over it: one stored run record per measurement invocation.
type RunRepository interface {
	SaveRun(ctx context.Context, run *RunRecord) error
	GetRun(ctx context.Context, id string) (*RunRecord, error)
	ListRuns(ctx context.Context, imageSource string, limit int) ([]*RunRecord, error)
	Close() error
}
