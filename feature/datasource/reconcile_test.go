package datasource

import (
	"context"
	"testing"

	"source-manager/core/reconcile"
	"source-manager/feature/datasource/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestScanAdapter_Decide(t *testing.T) {
	a := &scanAdapter{logger: zap.NewNop()}
	rec := models.Record{Type: models.TypeLaunchBox, Name: "Foo", RelativePath: "Foo"}
	disc := models.DataSource{Record: rec, RootFolder: "/media/usb/Foo", Status: models.StatusInactive}
	loaded := func(status models.Status, root string) models.DataSource {
		return models.DataSource{Record: rec, RootFolder: root, Status: status}
	}

	tests := []struct {
		name          string
		l, d, p       reconcile.Item
		wantType      reconcile.ActionType
		wantStatus    models.Status
		wantRoot      string
		changed       bool
		activeChanged bool
	}{
		{"LDA inactive activates", loaded(models.StatusInactive, "/media/usb/Foo"), disc, rec, reconcile.ActionActivate, models.StatusActive, "/media/usb/Foo", true, true},
		{"LDA unavailable activates", loaded(models.StatusUnavailable, ""), disc, rec, reconcile.ActionActivate, models.StatusActive, "/media/usb/Foo", true, true},
		{"LDA active unchanged", loaded(models.StatusActive, "/media/usb/Foo"), disc, rec, reconcile.ActionNone, "", "", false, false},
		{"LDA active moved", loaded(models.StatusActive, "/media/old/Foo"), disc, rec, reconcile.ActionActivate, models.StatusActive, "/media/usb/Foo", true, false},
		{"LD active deactivates", loaded(models.StatusActive, "/media/usb/Foo"), disc, nil, reconcile.ActionDeactivate, models.StatusInactive, "/media/usb/Foo", true, true},
		{"LD unavailable deactivates", loaded(models.StatusUnavailable, ""), disc, nil, reconcile.ActionDeactivate, models.StatusInactive, "/media/usb/Foo", true, false},
		{"LD inactive unchanged", loaded(models.StatusInactive, "/media/usb/Foo"), disc, nil, reconcile.ActionNone, "", "", false, false},
		{"LD inactive moved", loaded(models.StatusInactive, "/media/old/Foo"), disc, nil, reconcile.ActionDeactivate, models.StatusInactive, "/media/usb/Foo", true, false},
		{"LA active unavailable", loaded(models.StatusActive, "/media/usb/Foo"), nil, rec, reconcile.ActionMarkUnavailable, models.StatusUnavailable, "", true, true},
		{"LA inactive unavailable", loaded(models.StatusInactive, "/media/usb/Foo"), nil, rec, reconcile.ActionMarkUnavailable, models.StatusUnavailable, "", true, false},
		{"LA unavailable unchanged", loaded(models.StatusUnavailable, ""), nil, rec, reconcile.ActionNone, "", "", false, false},
		{"L active removed", loaded(models.StatusActive, "/media/usb/Foo"), nil, nil, reconcile.ActionRemove, models.StatusActive, "/media/usb/Foo", true, true},
		{"L inactive removed", loaded(models.StatusInactive, "/media/usb/Foo"), nil, nil, reconcile.ActionRemove, models.StatusInactive, "/media/usb/Foo", true, false},
		{"DA added active", nil, disc, rec, reconcile.ActionAdd, models.StatusActive, "/media/usb/Foo", true, true},
		{"D added inactive", nil, disc, nil, reconcile.ActionAdd, models.StatusInactive, "/media/usb/Foo", true, false},
		{"A added unavailable", nil, nil, rec, reconcile.ActionAdd, models.StatusUnavailable, "", true, false},
		{"none", nil, nil, nil, reconcile.ActionNone, "", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := reconcile.Result{Key: "Foo", Presence: reconcile.Presence{
				Loaded:     tt.l != nil,
				Discovered: tt.d != nil,
				Persisted:  tt.p != nil,
			}}

			action := a.Decide(result, tt.l, tt.d, tt.p)
			assert.Equal(t, tt.wantType, action.Type)
			assert.Equal(t, tt.changed, action.Changed)
			assert.Equal(t, tt.activeChanged, action.ActiveChanged)
			if tt.wantType == reconcile.ActionNone {
				return
			}

			ds, ok := action.Item.(models.DataSource)
			require.True(t, ok)
			assert.Equal(t, tt.wantStatus, ds.Status)
			assert.Equal(t, tt.wantRoot, ds.RootFolder)
			assert.NoError(t, ds.Check())
		})
	}
}

func TestRegistryMutator(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry()
	m := &registryMutator{registry: reg}
	rec := models.Record{Type: models.TypeLaunchBox, Name: "Foo"}

	require.NoError(t, m.Apply(ctx, reconcile.Action{
		Type: reconcile.ActionAdd, Key: "Foo",
		Item: models.DataSource{Record: rec, RootFolder: "/m/Foo", Status: models.StatusInactive},
	}))
	require.NoError(t, m.Apply(ctx, reconcile.Action{
		Type: reconcile.ActionActivate, Key: "Foo",
		Item: models.DataSource{Record: rec, RootFolder: "/m/Foo", Status: models.StatusActive},
	}))
	ds, _ := reg.Get("Foo")
	assert.Equal(t, models.StatusActive, ds.Status)

	err := m.Apply(ctx, reconcile.Action{
		Type: reconcile.ActionActivate, Key: "Foo",
		Item: models.DataSource{Record: rec, Status: models.StatusActive},
	})
	assert.ErrorIs(t, err, models.ErrNoRootFolder)

	assert.Error(t, m.Apply(ctx, reconcile.Action{Type: reconcile.ActionAdd, Key: "Foo", Item: "bogus"}))

	require.NoError(t, m.Apply(ctx, reconcile.Action{Type: reconcile.ActionRemove, Key: "Foo"}))
	assert.Equal(t, 0, reg.Len())
}
