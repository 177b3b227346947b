package repository

import (
	"context"
	"time"

	"c4model/internal/domain"

	"github.com/cockroachdb/errors"
)

// ErrWorkspaceNotFound is returned when a workspace name is not stored
var ErrWorkspaceNotFound = errors.New("workspace not found")

// WorkspaceInfo summarizes a stored workspace
type WorkspaceInfo struct {
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Version       string    `json:"version"`
	Elements      int       `json:"elements"`
	Relationships int       `json:"relationships"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Repository defines the interface for workspace data access
type Repository interface {
	// Read operations
	LoadWorkspace(ctx context.Context, name string) (*domain.Workspace, error)
	ListWorkspaces(ctx context.Context) ([]WorkspaceInfo, error)
	GetElement(ctx context.Context, workspace, key string) (*domain.ElementRecord, error)
	ListInstances(ctx context.Context, workspace, key string) ([]domain.ElementRecord, error)

	// Write operations
	SaveWorkspace(ctx context.Context, ws *domain.Workspace) error
	DeleteWorkspace(ctx context.Context, name string) error

	// Close releases resources
	Close() error
}
