package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"c4model/internal/domain"
	"c4model/internal/repository"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// ============================================================================
// Test Helpers
// ============================================================================

// newTestRepo creates a repository in a temporary directory
func newTestRepo(t testing.TB) *Repository {
	t.Helper()
	repo, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "failed to create test repository")

	t.Cleanup(func() {
		repo.Close()
	})
	return repo
}

func newBankingWorkspace(t *testing.T) *domain.Workspace {
	t.Helper()
	ws := domain.NewWorkspace("banking")
	ws.Description = "Internet banking"

	customer, err := domain.NewPerson("customer", "Customer", "")
	require.NoError(t, err)
	require.NoError(t, ws.Add(customer))

	webApp := domain.MustContainer("web-app", "Web Application", domain.ContainerTypeWebApp, "TS", "Front end").
		WithTags("frontend", "public")
	require.NoError(t, ws.AddContainer(webApp))

	for _, name := range []string{"1", "2"} {
		_, _, err := ws.Instance("web-app", name)
		require.NoError(t, err)
	}

	inst, _ := ws.Container("web-app:1")
	rel := domain.NewRelationship(customer, inst, "Uses")
	rel.Technology = "HTTPS"
	rel.Tags = []string{"sync"}
	require.NoError(t, ws.AddRelationship(rel))
	return ws
}

// ============================================================================
// Helper Function Tests
// ============================================================================

func TestNullToString(t *testing.T) {
	tests := []struct {
		name     string
		input    sql.NullString
		expected string
	}{
		{"valid", sql.NullString{String: "x", Valid: true}, "x"},
		{"null", sql.NullString{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, nullToString(tt.input))
		})
	}
}

func TestMarshalTags(t *testing.T) {
	ns, err := marshalTags(nil)
	require.NoError(t, err)
	assert.False(t, ns.Valid)

	ns, err = marshalTags([]string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, `["a","b"]`, ns.String)

	var out []string
	require.NoError(t, unmarshalJSONField(ns, &out))
	assert.Equal(t, []string{"a", "b"}, out)
}

// ============================================================================
// Repository Tests
// ============================================================================

func TestSaveAndLoadWorkspace(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveWorkspace(ctx, newBankingWorkspace(t)))

	ws, err := repo.LoadWorkspace(ctx, "banking")
	require.NoError(t, err)
	assert.Equal(t, "Internet banking", ws.Description)
	assert.Equal(t, 4, ws.Len())

	webApp, ok := ws.Container("web-app")
	require.True(t, ok)
	assert.Equal(t, 2, webApp.InstanceCount())

	inst, ok := ws.Container("web-app:1")
	require.True(t, ok)
	assert.Same(t, webApp.Instance(1), inst)
	assert.Equal(t, "TS", inst.Technology())
	assert.True(t, inst.Tags().Has("public"))

	rels := ws.Relationships()
	require.Len(t, rels, 1)
	assert.Equal(t, "HTTPS", rels[0].Technology)
	assert.Equal(t, []string{"sync"}, rels[0].Tags)

	customer, ok := ws.Element("customer")
	require.True(t, ok)
	assert.Equal(t, domain.ElementPerson, customer.ElementKind())
}

func TestSaveWorkspaceReplacesContent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveWorkspace(ctx, newBankingWorkspace(t)))

	smaller := domain.NewWorkspace("banking")
	require.NoError(t, smaller.AddStructure(domain.MustStructure("ledger", "Ledger")))
	require.NoError(t, repo.SaveWorkspace(ctx, smaller))

	ws, err := repo.LoadWorkspace(ctx, "banking")
	require.NoError(t, err)
	assert.Equal(t, 1, ws.Len())
	assert.Empty(t, ws.Relationships())
}

func TestLoadWorkspaceNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.LoadWorkspace(context.Background(), "missing")
	assert.True(t, errors.Is(err, repository.ErrWorkspaceNotFound))
}

func TestListAndDeleteWorkspaces(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveWorkspace(ctx, newBankingWorkspace(t)))
	require.NoError(t, repo.SaveWorkspace(ctx, domain.NewWorkspace("empty")))

	infos, err := repo.ListWorkspaces(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "banking", infos[0].Name)
	assert.Equal(t, 4, infos[0].Elements)
	assert.Equal(t, 1, infos[0].Relationships)
	assert.Equal(t, "empty", infos[1].Name)

	require.NoError(t, repo.DeleteWorkspace(ctx, "banking"))
	err = repo.DeleteWorkspace(ctx, "banking")
	assert.True(t, errors.Is(err, repository.ErrWorkspaceNotFound))

	rec, err := repo.GetElement(ctx, "banking", "customer")
	require.NoError(t, err)
	assert.Nil(t, rec, "elements are removed by cascade")
}

func TestGetElementAndListInstances(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.SaveWorkspace(ctx, newBankingWorkspace(t)))

	rec, err := repo.GetElement(ctx, "banking", "web-app:2")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "web-app", rec.Alias)
	assert.Equal(t, "2", rec.Qualifier)
	assert.Equal(t, domain.ContainerTypeWebApp, rec.Type)
	assert.Equal(t, []string{"frontend", "public"}, rec.Tags)

	instances, err := repo.ListInstances(ctx, "banking", "web-app")
	require.NoError(t, err)
	require.Len(t, instances, 2)
	assert.Equal(t, "web-app:1", instances[0].Key)
	assert.Equal(t, "web-app:2", instances[1].Key)

	none, err := repo.ListInstances(ctx, "banking", "customer")
	require.NoError(t, err)
	assert.Empty(t, none)
}

// TestSaveLoadKeepsInstanceKeys is a property-based test using rapid.
// It verifies that persisted instance keys survive a reload unchanged.
func TestSaveLoadKeepsInstanceKeys(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	rapid.Check(t, func(r *rapid.T) {
		ws := domain.NewWorkspace("prop")
		c := domain.MustContainer("svc", "Service", domain.ContainerTypeServerConsole, "Go", "")
		if err := ws.AddContainer(c); err != nil {
			r.Fatalf("add container: %v", err)
		}

		names := rapid.SliceOfNDistinct(rapid.StringMatching(`[a-z0-9]{1,6}`), 1, 10, rapid.ID[string]).Draw(r, "names")
		for _, n := range names {
			if _, _, err := ws.Instance("svc", n); err != nil {
				r.Fatalf("instance %q: %v", n, err)
			}
		}

		if err := repo.SaveWorkspace(ctx, ws); err != nil {
			r.Fatalf("save: %v", err)
		}
		loaded, err := repo.LoadWorkspace(ctx, "prop")
		if err != nil {
			r.Fatalf("load: %v", err)
		}

		lc, ok := loaded.Container("svc")
		if !ok {
			r.Fatalf("canonical container missing")
		}
		if lc.InstanceCount() != len(names) {
			r.Fatalf("got %d instances, want %d", lc.InstanceCount(), len(names))
		}
		for _, n := range names {
			inst, ok := loaded.Container("svc:" + n)
			if !ok || inst != lc.Named(n) {
				r.Fatalf("instance %q not interned after load", n)
			}
		}
	})
}
