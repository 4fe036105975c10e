package datasource

import (
	"context"
	"fmt"
	"sync"

	"source-manager/core/reconcile"
	"source-manager/core/settings"
	"source-manager/core/utils"
	"source-manager/core/volume"
	"source-manager/feature/datasource/codec"
	"source-manager/feature/datasource/models"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const scanKey = "scan"

// Manager owns the registry and runs every operation on it.
// All registry mutation happens under mu; scan passes are also collapsed by guard.
type Manager struct {
	mu        sync.Mutex
	registry  *Registry
	validator *Validator
	docs      *DocumentStore
	scanner   volume.Scanner
	settings  settings.Store
	guard     reconcile.Guard
	logger    *zap.Logger
}

// NewManager creates a manager. fsys is used for every probe and document access.
func NewManager(fsys afero.Fs, scanner volume.Scanner, store settings.Store, cfg volume.Config, logger *zap.Logger) *Manager {
	return &Manager{
		registry:  NewRegistry(),
		validator: NewValidator(fsys, cfg.MarkerDepth),
		docs:      NewDocumentStore(fsys, cfg.DocumentName),
		scanner:   scanner,
		settings:  store,
		logger:    logger,
	}
}

// Subscribe returns a channel of change events and a function to stop receiving them.
func (m *Manager) Subscribe() (<-chan Event, func()) {
	return m.registry.Subscribe()
}

// DataSources returns every known data source in registry order.
func (m *Manager) DataSources() []models.DataSource {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.registry.Snapshot()
}

// Get returns the data source registered under name.
func (m *Manager) Get(name string) (models.DataSource, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.registry.Get(name)
}

// HasDataSources reports whether the registry holds anything.
func (m *Manager) HasDataSources() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.registry.Len() > 0
}

// Validate checks whether path can be added as a data source.
func (m *Manager) Validate(ctx context.Context, path string) models.ValidationReport {
	mounts := volume.MountPoints(m.volumes(ctx))

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.validator.Validate(ctx, m.registry, mounts, path)
}

// AddDataSource writes ds into the document at the root of its volume and
// registers it as inactive. The document is created when missing.
func (m *Manager) AddDataSource(ctx context.Context, ds models.DataSource) error {
	if ds.Name() == "" {
		return models.ErrEmptyName
	}
	if !ds.Record.Type.Valid() {
		return fmt.Errorf("unknown data source type %q", ds.Record.Type)
	}
	if ds.RootFolder == "" {
		return fmt.Errorf("%s: %w", ds.Name(), models.ErrNoRootFolder)
	}

	mounts := volume.MountPoints(m.volumes(ctx))

	m.mu.Lock()
	defer m.mu.Unlock()

	volumeRoot := utils.VolumeRoot(ds.RootFolder, mounts)
	if err := m.docs.Upsert(volumeRoot, ds.Record); err != nil {
		return fmt.Errorf("failed to add data source %s: %w", ds.Name(), err)
	}
	m.logger.Info("Data source written to volume document",
		zap.String("name", ds.Name()),
		zap.String("type", string(ds.Record.Type)),
		zap.String("document", m.docs.Path(volumeRoot)))

	if _, exists := m.registry.Get(ds.Name()); exists {
		// The next scan settles which entry owns the name.
		m.logger.Warn("Data source name already registered", zap.String("name", ds.Name()))
		return nil
	}

	ds.Status = models.StatusInactive
	if err := m.registry.Add(ds); err != nil {
		return err
	}
	m.registry.Notify(EventChanged)
	return nil
}

// ScanDataSources reconciles the registry with the attached volumes and the
// persisted active set. Concurrent callers share one pass.
func (m *Manager) ScanDataSources(ctx context.Context) (*reconcile.Plan, error) {
	plan, shared, err := m.guard.Do(ctx, scanKey, m.scan)
	if err != nil {
		return nil, err
	}
	if shared {
		m.logger.Debug("Joined in-flight data source scan")
	}
	return plan, nil
}

func (m *Manager) scan(ctx context.Context) (*reconcile.Plan, error) {
	vols := m.volumes(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	adapter := &scanAdapter{
		loaded:   m.registry.Snapshot(),
		volumes:  vols,
		docs:     m.docs,
		settings: m.settings,
		logger:   m.logger,
	}

	plan, err := reconcile.ReconcileWithPlan(ctx, adapter)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		m.logger.Debug("Data source scan cancelled before apply", zap.Error(err))
		return nil, err
	}

	// A pass is applied whole; cancellation only stops it before this point.
	if _, err := reconcile.ApplyPlan(context.WithoutCancel(ctx), &registryMutator{registry: m.registry}, plan); err != nil {
		return nil, err
	}

	var event Event
	if plan.Summary.AnyChanged() {
		event |= EventChanged
	}
	if plan.Summary.AnyActiveChanged() {
		event |= EventActiveChanged
	}
	m.registry.Notify(event)

	m.logger.Info("Data source scan completed",
		zap.Int("volumes", len(vols)),
		zap.Int("keys", plan.Summary.TotalKeys),
		zap.Int("changed", plan.Summary.Changed),
		zap.Int("active_changed", plan.Summary.ActiveChanged))
	return plan, nil
}

// PresentActive returns the active data sources, scanning first when the registry is empty.
func (m *Manager) PresentActive(ctx context.Context) ([]models.DataSource, error) {
	if !m.HasDataSources() {
		if _, err := m.ScanDataSources(ctx); err != nil {
			return nil, err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.registry.WithStatus(models.StatusActive), nil
}

// UpdateStatus sets the status of name. Setting the current status is a no-op.
// The active set is saved on every change.
func (m *Manager) UpdateStatus(ctx context.Context, name string, status models.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ds, ok := m.registry.Get(name)
	if !ok {
		return fmt.Errorf("%s: %w", name, models.ErrNotFound)
	}
	if ds.Status == status {
		return nil
	}

	old, err := m.registry.SetStatus(name, status)
	if err != nil {
		return err
	}
	if err := m.saveActive(ctx); err != nil {
		if _, rbErr := m.registry.SetStatus(name, old); rbErr != nil {
			m.logger.Error("Failed to roll back status", zap.String("name", name), zap.Error(rbErr))
		}
		return err
	}

	event := EventChanged
	if old == models.StatusActive || status == models.StatusActive {
		event |= EventActiveChanged
	}
	m.registry.Notify(event)

	m.logger.Info("Data source status updated",
		zap.String("name", name),
		zap.String("from", string(old)),
		zap.String("to", string(status)))
	return nil
}

// DeleteUnavailable removes every unavailable data source and returns how many were removed.
func (m *Manager) DeleteUnavailable(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	before := m.registry.Snapshot()
	removed := m.registry.RemoveWhere(func(ds models.DataSource) bool {
		return ds.Status == models.StatusUnavailable
	})
	if len(removed) == 0 {
		return 0, nil
	}

	if err := m.saveActive(ctx); err != nil {
		m.registry.Restore(before)
		return 0, err
	}
	m.registry.Notify(EventChanged)

	m.logger.Info("Removed unavailable data sources", zap.Strings("names", removed))
	return len(removed), nil
}

// SaveActiveDataSources persists every active or unavailable data source.
func (m *Manager) SaveActiveDataSources(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveActive(ctx)
}

func (m *Manager) saveActive(ctx context.Context) error {
	var records []models.Record
	for _, ds := range m.registry.Snapshot() {
		if ds.Status.IsOptedIn() {
			records = append(records, ds.Record)
		}
	}

	blob, err := codec.EncodeActiveSet(records)
	if err != nil {
		return err
	}
	if err := m.settings.Set(ctx, ActiveDataSourcesKey, blob); err != nil {
		return fmt.Errorf("failed to save active data sources: %w", err)
	}
	return nil
}

// volumes lists the attached volumes. A failing scanner means no volumes.
func (m *Manager) volumes(ctx context.Context) []volume.Volume {
	vols, err := m.scanner.Volumes(ctx)
	if err != nil {
		m.logger.Warn("Failed to enumerate volumes", zap.Error(err))
		return nil
	}
	return vols
}
