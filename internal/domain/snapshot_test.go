package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRestore(t *testing.T) {
	ws := newTestWorkspace(t)
	_, _, err := ws.Instance("web-app", "1")
	require.NoError(t, err)
	_, _, err = ws.Instance("web-app:1", "blue")
	require.NoError(t, err)
	customer, _ := ws.Element("customer")
	inst, _ := ws.Container("web-app:1:blue")
	require.NoError(t, ws.AddRelationship(NewRelationship(customer, inst, "Uses")))

	snap := ws.Snapshot()
	require.Len(t, snap.Elements, 5)

	restored, err := RestoreWorkspace(snap)
	require.NoError(t, err)

	var before, after []string
	for _, e := range ws.Elements() {
		before = append(before, e.Alias())
	}
	for _, e := range restored.Elements() {
		after = append(after, e.Alias())
	}
	assert.Equal(t, before, after)

	c, ok := restored.Container("web-app")
	require.True(t, ok)
	restoredInst, ok := restored.Container("web-app:1")
	require.True(t, ok)
	assert.Same(t, c.Instance(1), restoredInst, "restored instances are interned in the canonical registry")
	assert.Equal(t, "TS", restoredInst.Technology())

	assert.Len(t, restored.Relationships(), 1)
	assert.Equal(t, ElementPerson, mustElement(t, restored, "customer").ElementKind())
}

func TestRestoreWorkspaceRejectsUnknownKind(t *testing.T) {
	_, err := RestoreWorkspace(&Snapshot{
		Name:     "bad",
		Elements: []ElementRecord{{Key: "x", Alias: "x", Kind: "robot"}},
	})
	assert.Error(t, err)
}

func mustElement(t *testing.T, ws *Workspace, key string) Element {
	t.Helper()
	e, ok := ws.Element(key)
	require.True(t, ok, "element %q", key)
	return e
}
