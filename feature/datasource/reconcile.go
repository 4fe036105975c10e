package datasource

import (
	"context"
	"errors"
	"fmt"

	"source-manager/core/reconcile"
	"source-manager/core/settings"
	"source-manager/core/utils"
	"source-manager/core/volume"
	"source-manager/feature/datasource/codec"
	"source-manager/feature/datasource/models"

	"go.uber.org/zap"
)

// ActiveDataSourcesKey is the settings key holding the persisted active set.
const ActiveDataSourcesKey = "ActiveDataSourcesKey"

// scanAdapter implements reconcile.Adapter for one scan pass.
// The loaded index comes from a registry snapshot taken before the pass,
// so index loading never touches the live registry.
type scanAdapter struct {
	loaded   []models.DataSource
	volumes  []volume.Volume
	docs     *DocumentStore
	settings settings.Store
	logger   *zap.Logger
}

// Name returns the unique name of this adapter.
func (a *scanAdapter) Name() string {
	return "datasource"
}

// LoadIndex implements reconcile.Adapter. Unreadable volumes, malformed
// documents and an unreadable active set all load as absent.
func (a *scanAdapter) LoadIndex(ctx context.Context, source reconcile.Source) (map[string]reconcile.Item, error) {
	switch source {
	case reconcile.SourceLoaded:
		return a.loadRegistry(), nil
	case reconcile.SourceDiscovered:
		return a.loadDocuments(ctx)
	case reconcile.SourcePersisted:
		return a.loadActiveSet(ctx)
	default:
		return nil, fmt.Errorf("unknown source %s", source)
	}
}

func (a *scanAdapter) loadRegistry() map[string]reconcile.Item {
	index := make(map[string]reconcile.Item, len(a.loaded))
	for _, ds := range a.loaded {
		index[ds.Name()] = ds
	}
	return index
}

// loadDocuments reads the document of every volume. Volumes are sorted by
// mount point, so when two volumes list the same name the first one wins.
// A cancelled read fails the index; a partial one would look like missing devices.
func (a *scanAdapter) loadDocuments(ctx context.Context) (map[string]reconcile.Item, error) {
	index := make(map[string]reconcile.Item)
	for _, vol := range a.volumes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		records, found, err := a.docs.Read(vol.MountPoint)
		switch {
		case errors.Is(err, codec.ErrInvalidRecord):
			a.logger.Warn("Skipping invalid data source entries",
				zap.String("volume", vol.MountPoint), zap.Error(err))
		case err != nil:
			a.logger.Warn("Skipping unreadable data source document",
				zap.String("volume", vol.MountPoint), zap.Error(err))
			continue
		}
		if !found {
			continue
		}

		for _, rec := range records {
			if rec.Name == "" {
				continue
			}
			if prev, dup := index[rec.Name]; dup {
				a.logger.Warn("Ignoring duplicate data source name",
					zap.String("name", rec.Name),
					zap.String("volume", vol.MountPoint),
					zap.String("kept", prev.(models.DataSource).RootFolder))
				continue
			}
			index[rec.Name] = models.DataSource{
				Record:     rec,
				RootFolder: codec.ResolveRoot(vol.MountPoint, rec),
				Status:     models.StatusInactive,
			}
		}
	}
	return index, nil
}

func (a *scanAdapter) loadActiveSet(ctx context.Context) (map[string]reconcile.Item, error) {
	index := make(map[string]reconcile.Item)

	blob, ok, err := a.settings.Get(ctx, ActiveDataSourcesKey)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		a.logger.Warn("Failed to read active data sources, treating as empty", zap.Error(err))
		return index, nil
	}
	if !ok {
		return index, nil
	}

	records, err := codec.DecodeActiveSet(blob)
	if err != nil {
		a.logger.Warn("Failed to decode active data sources, treating as empty", zap.Error(err))
		return index, nil
	}
	for _, rec := range records {
		if rec.Name == "" {
			continue
		}
		if _, dup := index[rec.Name]; !dup {
			index[rec.Name] = rec
		}
	}
	return index, nil
}

// Decide implements reconcile.Adapter with the eight-case transition table.
func (a *scanAdapter) Decide(result reconcile.Result, loaded, discovered, persisted reconcile.Item) reconcile.Action {
	var (
		l, _ = loaded.(models.DataSource)
		d, _ = discovered.(models.DataSource)
		p, _ = persisted.(models.Record)
	)

	switch result.Presence.Case() {
	case reconcile.CaseLoadedDiscoveredPersisted:
		if l.Status == models.StatusActive {
			if utils.SamePath(l.RootFolder, d.RootFolder) {
				return noop()
			}
			// The active set keeps the same names; only the location changed.
			return reconcile.Action{
				Type:    reconcile.ActionActivate,
				Reason:  "root folder moved",
				Changed: true,
				Item:    withStatus(l, models.StatusActive, d.RootFolder),
			}
		}
		return reconcile.Action{
			Type:          reconcile.ActionActivate,
			Reason:        "device present and previously active",
			Changed:       true,
			ActiveChanged: true,
			Item:          withStatus(l, models.StatusActive, d.RootFolder),
		}

	case reconcile.CaseLoadedDiscovered:
		if l.Status == models.StatusInactive {
			if utils.SamePath(l.RootFolder, d.RootFolder) {
				return noop()
			}
			return reconcile.Action{
				Type:    reconcile.ActionDeactivate,
				Reason:  "root folder moved",
				Changed: true,
				Item:    withStatus(l, models.StatusInactive, d.RootFolder),
			}
		}
		return reconcile.Action{
			Type:          reconcile.ActionDeactivate,
			Reason:        "device present but not active",
			Changed:       true,
			ActiveChanged: l.Status == models.StatusActive,
			Item:          withStatus(l, models.StatusInactive, d.RootFolder),
		}

	case reconcile.CaseLoadedPersisted:
		if l.Status == models.StatusUnavailable {
			return noop()
		}
		return reconcile.Action{
			Type:          reconcile.ActionMarkUnavailable,
			Reason:        "device missing but previously active",
			Changed:       true,
			ActiveChanged: l.Status == models.StatusActive,
			Item:          withStatus(l, models.StatusUnavailable, ""),
		}

	case reconcile.CaseLoadedOnly:
		return reconcile.Action{
			Type:          reconcile.ActionRemove,
			Reason:        "no longer known to any device or the active set",
			Changed:       true,
			ActiveChanged: l.Status == models.StatusActive,
			Item:          l,
		}

	case reconcile.CaseDiscoveredPersisted:
		return reconcile.Action{
			Type:          reconcile.ActionAdd,
			Reason:        "device present and previously active",
			Changed:       true,
			ActiveChanged: true,
			Item:          withStatus(d, models.StatusActive, d.RootFolder),
		}

	case reconcile.CaseDiscoveredOnly:
		return reconcile.Action{
			Type:    reconcile.ActionAdd,
			Reason:  "new device data source",
			Changed: true,
			Item:    withStatus(d, models.StatusInactive, d.RootFolder),
		}

	case reconcile.CasePersistedOnly:
		return reconcile.Action{
			Type:    reconcile.ActionAdd,
			Reason:  "previously active, device missing",
			Changed: true,
			Item:    models.DataSource{Record: p, Status: models.StatusUnavailable},
		}
	}

	return noop()
}

func noop() reconcile.Action {
	return reconcile.Action{Type: reconcile.ActionNone}
}

func withStatus(ds models.DataSource, status models.Status, root string) models.DataSource {
	ds.Status = status
	ds.RootFolder = root
	return ds
}

// registryMutator applies planned actions to the live registry.
type registryMutator struct {
	registry *Registry
}

// Apply implements reconcile.Mutator.
func (m *registryMutator) Apply(ctx context.Context, action reconcile.Action) error {
	switch action.Type {
	case reconcile.ActionRemove:
		m.registry.Remove(action.Key)
		return nil
	case reconcile.ActionAdd:
		ds, ok := action.Item.(models.DataSource)
		if !ok {
			return fmt.Errorf("unexpected item %T", action.Item)
		}
		return m.registry.Add(ds)
	case reconcile.ActionActivate, reconcile.ActionDeactivate, reconcile.ActionMarkUnavailable:
		ds, ok := action.Item.(models.DataSource)
		if !ok {
			return fmt.Errorf("unexpected item %T", action.Item)
		}
		return m.registry.Replace(ds)
	default:
		return nil
	}
}
