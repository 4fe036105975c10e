package datasource

import (
	"testing"

	"source-manager/feature/datasource/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func source(name string, status models.Status, root string) models.DataSource {
	return models.DataSource{
		Record:     models.Record{Type: models.TypeLaunchBox, Name: name, RelativePath: name},
		RootFolder: root,
		Status:     status,
	}
}

func TestRegistry_AddKeepsOrderAndRejectsDuplicates(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Add(source("b", models.StatusInactive, "/m/b")))
	require.NoError(t, reg.Add(source("a", models.StatusInactive, "/m/a")))

	err := reg.Add(source("a", models.StatusInactive, "/m/other"))
	assert.ErrorIs(t, err, models.ErrDuplicateName)

	snap := reg.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "b", snap[0].Name())
	assert.Equal(t, "a", snap[1].Name())
}

func TestRegistry_RejectsActiveWithoutRoot(t *testing.T) {
	reg := NewRegistry()
	assert.ErrorIs(t, reg.Add(source("a", models.StatusActive, "")), models.ErrNoRootFolder)

	require.NoError(t, reg.Add(source("b", models.StatusUnavailable, "")))
	_, err := reg.SetStatus("b", models.StatusActive)
	assert.ErrorIs(t, err, models.ErrNoRootFolder)

	ds, _ := reg.Get("b")
	assert.Equal(t, models.StatusUnavailable, ds.Status)
}

func TestRegistry_RemoveReindexes(t *testing.T) {
	reg := NewRegistry()
	for _, n := range []string{"a", "b", "c"} {
		require.NoError(t, reg.Add(source(n, models.StatusInactive, "/m/"+n)))
	}

	assert.True(t, reg.Remove("a"))
	assert.False(t, reg.Remove("a"))

	ds, ok := reg.Get("c")
	require.True(t, ok)
	assert.Equal(t, "c", ds.Name())
	assert.Equal(t, 2, reg.Len())
}

func TestRegistry_RemoveWhere(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Add(source("a", models.StatusUnavailable, "")))
	require.NoError(t, reg.Add(source("b", models.StatusActive, "/m/b")))
	require.NoError(t, reg.Add(source("c", models.StatusUnavailable, "")))

	removed := reg.RemoveWhere(func(ds models.DataSource) bool { return ds.Status == models.StatusUnavailable })
	assert.Equal(t, []string{"a", "c"}, removed)
	assert.Equal(t, 1, reg.Len())

	ds, ok := reg.Get("b")
	require.True(t, ok)
	assert.Equal(t, models.StatusActive, ds.Status)
}

func TestRegistry_RestoreUndoesRemoveWhere(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Add(source("a", models.StatusUnavailable, "")))
	require.NoError(t, reg.Add(source("b", models.StatusActive, "/m/b")))

	before := reg.Snapshot()
	reg.RemoveWhere(func(ds models.DataSource) bool { return ds.Status == models.StatusUnavailable })
	require.Equal(t, 1, reg.Len())

	reg.Restore(before)
	assert.Equal(t, before, reg.Snapshot())
	ds, ok := reg.Get("a")
	require.True(t, ok)
	assert.Equal(t, models.StatusUnavailable, ds.Status)
	assert.ErrorIs(t, reg.Add(source("b", models.StatusInactive, "/m/b2")), models.ErrDuplicateName)
}

func TestRegistry_FindByRoot(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Add(source("a", models.StatusInactive, "/media/usb/a")))
	require.NoError(t, reg.Add(source("b", models.StatusUnavailable, "")))

	ds, ok := reg.FindByRoot("/media/usb/a/")
	require.True(t, ok)
	assert.Equal(t, "a", ds.Name())

	_, ok = reg.FindByRoot("")
	assert.False(t, ok)
}

func TestRegistry_SnapshotIsACopy(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Add(source("a", models.StatusInactive, "/m/a")))

	snap := reg.Snapshot()
	snap[0].Status = models.StatusActive

	ds, _ := reg.Get("a")
	assert.Equal(t, models.StatusInactive, ds.Status)
}

func TestRegistry_NotifyCoalesces(t *testing.T) {
	reg := NewRegistry()
	events, cancel := reg.Subscribe()
	defer cancel()

	reg.Notify(0)
	reg.Notify(EventChanged)
	reg.Notify(EventActiveChanged)
	reg.Notify(EventChanged)

	e := <-events
	assert.True(t, e.Has(EventChanged))
	assert.True(t, e.Has(EventActiveChanged))

	select {
	case extra := <-events:
		t.Fatalf("unexpected extra event %s", extra)
	default:
	}
}

func TestRegistry_Unsubscribe(t *testing.T) {
	reg := NewRegistry()
	events, cancel := reg.Subscribe()
	cancel()
	cancel()

	_, open := <-events
	assert.False(t, open)

	// Nobody listening; must not block or panic.
	reg.Notify(EventChanged)
}

func TestEvent_String(t *testing.T) {
	assert.Equal(t, "none", Event(0).String())
	assert.Equal(t, "changed", EventChanged.String())
	assert.Equal(t, "changed|active_changed", (EventChanged | EventActiveChanged).String())
}
