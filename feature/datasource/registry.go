package datasource

import (
	"fmt"
	"sync"

	"source-manager/core/utils"
	"source-manager/feature/datasource/models"
)

// Event is a set of edge-triggered notifications emitted after a mutation batch.
// Subscribers re-read the registry on any event; no per-item delta is carried.
type Event uint8

const (
	// EventChanged fires when the collection of data sources changed.
	EventChanged Event = 1 << iota
	// EventActiveChanged fires when the set of active data sources changed.
	EventActiveChanged
)

// Has reports whether e contains flag.
func (e Event) Has(flag Event) bool {
	return e&flag != 0
}

func (e Event) String() string {
	switch e {
	case 0:
		return "none"
	case EventChanged:
		return "changed"
	case EventActiveChanged:
		return "active_changed"
	case EventChanged | EventActiveChanged:
		return "changed|active_changed"
	default:
		return fmt.Sprintf("event(%d)", uint8(e))
	}
}

// Registry is the ordered, name-unique collection of known data sources.
// It is not safe for concurrent mutation; the Manager owns it and serializes access.
// Subscribe and Notify may be called from any goroutine.
type Registry struct {
	items []models.DataSource
	index map[string]int

	subMu sync.Mutex
	subs  map[int]chan Event
	next  int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		index: make(map[string]int),
		subs:  make(map[int]chan Event),
	}
}

// Add appends ds. Names are unique; a second Add with the same name fails.
func (r *Registry) Add(ds models.DataSource) error {
	if err := ds.Check(); err != nil {
		return err
	}
	if _, ok := r.index[ds.Name()]; ok {
		return fmt.Errorf("%s: %w", ds.Name(), models.ErrDuplicateName)
	}
	r.index[ds.Name()] = len(r.items)
	r.items = append(r.items, ds)
	return nil
}

// Get returns a copy of the data source registered under name.
func (r *Registry) Get(name string) (models.DataSource, bool) {
	i, ok := r.index[name]
	if !ok {
		return models.DataSource{}, false
	}
	return r.items[i], true
}

// Replace overwrites the entry registered under ds.Name(), keeping its position.
func (r *Registry) Replace(ds models.DataSource) error {
	if err := ds.Check(); err != nil {
		return err
	}
	i, ok := r.index[ds.Name()]
	if !ok {
		return fmt.Errorf("%s: %w", ds.Name(), models.ErrNotFound)
	}
	r.items[i] = ds
	return nil
}

// SetStatus changes the status of name and returns the previous one.
// Activating a data source without a root folder is rejected.
func (r *Registry) SetStatus(name string, status models.Status) (models.Status, error) {
	i, ok := r.index[name]
	if !ok {
		return "", fmt.Errorf("%s: %w", name, models.ErrNotFound)
	}
	next := r.items[i]
	old := next.Status
	next.Status = status
	if err := next.Check(); err != nil {
		return old, err
	}
	r.items[i] = next
	return old, nil
}

// Remove deletes name from the registry. It reports whether name was present.
func (r *Registry) Remove(name string) bool {
	i, ok := r.index[name]
	if !ok {
		return false
	}
	r.items = append(r.items[:i], r.items[i+1:]...)
	r.reindex()
	return true
}

// RemoveWhere deletes every entry match accepts and returns the removed names.
func (r *Registry) RemoveWhere(match func(models.DataSource) bool) []string {
	var removed []string
	kept := r.items[:0]
	for _, ds := range r.items {
		if match(ds) {
			removed = append(removed, ds.Name())
			continue
		}
		kept = append(kept, ds)
	}
	// Clear the tail so removed entries aren't retained by the backing array.
	for i := len(kept); i < len(r.items); i++ {
		r.items[i] = models.DataSource{}
	}
	r.items = kept
	if len(removed) > 0 {
		r.reindex()
	}
	return removed
}

// Restore replaces the contents with items, typically a Snapshot taken before
// a mutation that has to be undone.
func (r *Registry) Restore(items []models.DataSource) {
	r.items = make([]models.DataSource, len(items))
	copy(r.items, items)
	r.reindex()
}

func (r *Registry) reindex() {
	r.index = make(map[string]int, len(r.items))
	for i, ds := range r.items {
		r.index[ds.Name()] = i
	}
}

// Snapshot returns a copy of every entry in insertion order.
func (r *Registry) Snapshot() []models.DataSource {
	out := make([]models.DataSource, len(r.items))
	copy(out, r.items)
	return out
}

// WithStatus returns a copy of every entry with the given status, in insertion order.
func (r *Registry) WithStatus(status models.Status) []models.DataSource {
	var out []models.DataSource
	for _, ds := range r.items {
		if ds.Status == status {
			out = append(out, ds)
		}
	}
	return out
}

// FindByRoot returns the entry whose root folder is the same location as path.
// Entries without a root folder never match.
func (r *Registry) FindByRoot(path string) (models.DataSource, bool) {
	for _, ds := range r.items {
		if ds.RootFolder != "" && utils.SamePath(ds.RootFolder, path) {
			return ds, true
		}
	}
	return models.DataSource{}, false
}

// Len returns the number of registered data sources.
func (r *Registry) Len() int {
	return len(r.items)
}

// Subscribe returns a channel that receives events and a function that cancels the subscription.
// Events not yet consumed are merged into one pending event, so a slow subscriber
// never blocks the owner and never misses that something changed.
func (r *Registry) Subscribe() (<-chan Event, func()) {
	r.subMu.Lock()
	defer r.subMu.Unlock()

	id := r.next
	r.next++
	ch := make(chan Event, 1)
	r.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			r.subMu.Lock()
			defer r.subMu.Unlock()
			delete(r.subs, id)
			close(ch)
		})
	}
}

// Notify delivers e to every subscriber. An empty event is dropped.
func (r *Registry) Notify(e Event) {
	if e == 0 {
		return
	}

	r.subMu.Lock()
	defer r.subMu.Unlock()

	for _, ch := range r.subs {
		pending := e
		for {
			select {
			case ch <- pending:
			default:
				// Buffer full: take the undelivered event and merge it into ours.
				select {
				case prev := <-ch:
					pending |= prev
				default:
				}
				continue
			}
			break
		}
	}
}
