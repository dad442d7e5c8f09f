// Package store persists verification runs and their reports.
package store

import (
	"context"

	"github.com/prooflab/artcheck/internal/model"
	"github.com/prooflab/artcheck/internal/verify"
)

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Status model.RunStatus `json:"status,omitempty"`
	Limit  int             `json:"limit,omitempty"`
	Offset int             `json:"offset,omitempty"`
}

// Store defines the persistence interface for verification runs.
type Store interface {
	CreateRun(ctx context.Context, copyDoc, artwork string, status model.RunStatus, report *verify.Report) (*model.Run, error)
	UpdateRunReport(ctx context.Context, runID string, status model.RunStatus, report *verify.Report) error
	GetRun(ctx context.Context, runID string) (*model.Run, *verify.Report, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error)

	Migrate(ctx context.Context) error
	Close() error
}
