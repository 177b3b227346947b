package service

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"c4model/internal/codec"
	"c4model/internal/domain"
	"c4model/internal/loader"
	"c4model/internal/repository"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// maxParallelLoads bounds concurrent definition parsing in ImportAll
const maxParallelLoads = 4

// WorkspaceService provides business logic for workspace operations
type WorkspaceService struct {
	repo     repository.Repository
	eventBus *EventBus
	log      *zap.SugaredLogger
}

// NewWorkspaceService creates a new workspace service. A nil logger disables logging.
func NewWorkspaceService(repo repository.Repository, eventBus *EventBus, log *zap.SugaredLogger) *WorkspaceService {
	if eventBus == nil {
		eventBus = NewEventBus()
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &WorkspaceService{
		repo:     repo,
		eventBus: eventBus,
		log:      log,
	}
}

// Validate loads a definition file without persisting it
func (s *WorkspaceService) Validate(path string) (*domain.Workspace, error) {
	ws, err := loader.LoadYAML(path)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	if ws.Name == "" {
		ws.Name = nameFromPath(path)
	}
	return ws, nil
}

// Import loads a definition file and stores it, replacing any stored
// workspace of the same name
func (s *WorkspaceService) Import(ctx context.Context, path string) (*domain.Workspace, error) {
	ws, err := s.Validate(path)
	if err != nil {
		s.eventBus.Publish(Event{
			Type:    EventImportFailed,
			Payload: map[string]string{"path": path, "error": err.Error()},
		})
		return nil, err
	}

	if err := s.save(ctx, ws, path); err != nil {
		return nil, err
	}
	return ws, nil
}

// ImportAll parses several definition files concurrently and stores them.
// Nothing is stored if any file fails to parse.
func (s *WorkspaceService) ImportAll(ctx context.Context, paths []string) ([]*domain.Workspace, error) {
	loaded := make([]*domain.Workspace, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelLoads)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ws, err := s.Validate(path)
			if err != nil {
				return err
			}
			loaded[i] = ws
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]string)
	for i, ws := range loaded {
		if prev, ok := seen[ws.Name]; ok {
			return nil, errors.Newf("workspace %q defined in both %s and %s", ws.Name, prev, paths[i])
		}
		seen[ws.Name] = paths[i]
	}

	for i, ws := range loaded {
		if err := s.save(ctx, ws, paths[i]); err != nil {
			return nil, err
		}
	}
	return loaded, nil
}

func (s *WorkspaceService) save(ctx context.Context, ws *domain.Workspace, path string) error {
	if err := s.repo.SaveWorkspace(ctx, ws); err != nil {
		return errors.Wrapf(err, "save workspace %s", ws.Name)
	}

	s.log.Infow("workspace imported",
		"workspace", ws.Name,
		"path", path,
		"elements", ws.Len(),
		"relationships", len(ws.Relationships()),
	)
	s.eventBus.Publish(Event{
		Type:    EventWorkspaceImported,
		Payload: map[string]string{"workspace": ws.Name, "path": path},
	})
	return nil
}

// Get loads a stored workspace
func (s *WorkspaceService) Get(ctx context.Context, name string) (*domain.Workspace, error) {
	return s.repo.LoadWorkspace(ctx, name)
}

// List returns summaries of all stored workspaces
func (s *WorkspaceService) List(ctx context.Context) ([]repository.WorkspaceInfo, error) {
	return s.repo.ListWorkspaces(ctx)
}

// Delete removes a stored workspace
func (s *WorkspaceService) Delete(ctx context.Context, name string) error {
	if err := s.repo.DeleteWorkspace(ctx, name); err != nil {
		return err
	}

	s.log.Infow("workspace deleted", "workspace", name)
	s.eventBus.Publish(Event{
		Type:    EventWorkspaceDeleted,
		Payload: map[string]string{"workspace": name},
	})
	return nil
}

// Instance interns an instance of a stored container and persists it when
// it is new. The boolean reports whether the instance was created.
func (s *WorkspaceService) Instance(ctx context.Context, workspace, alias, name string) (*domain.Container, bool, error) {
	ws, err := s.repo.LoadWorkspace(ctx, workspace)
	if err != nil {
		return nil, false, err
	}

	inst, created, err := ws.Instance(alias, name)
	if err != nil {
		return nil, false, err
	}
	if !created {
		return inst, false, nil
	}

	if err := s.repo.SaveWorkspace(ctx, ws); err != nil {
		return nil, false, errors.Wrapf(err, "save workspace %s", workspace)
	}

	s.log.Infow("instance created", "workspace", workspace, "instance", inst.Alias())
	s.eventBus.Publish(Event{
		Type:    EventInstanceCreated,
		Payload: map[string]string{"workspace": workspace, "instance": inst.Alias()},
	})
	return inst, true, nil
}

// Export writes a stored workspace as a snapshot in the given format
func (s *WorkspaceService) Export(ctx context.Context, workspace, format string, w io.Writer) error {
	exporter, err := codec.ForFormat(format)
	if err != nil {
		return err
	}

	ws, err := s.repo.LoadWorkspace(ctx, workspace)
	if err != nil {
		return err
	}
	return exporter.Export(ws, w)
}

func nameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
