package svcinv

import (
	"sync/atomic"
	"time"
)

// Snapshot is one installed inventory
type Snapshot struct {
	// Generation orders snapshots; higher is newer
	Generation uint64 `yaml:"generation"`

	// Services is the collection returned by the fetch
	Services Collection `yaml:"services"`

	// Err is the fetch failure behind an empty collection, if any
	Err error `yaml:"-"`

	// UpdatedAt is when the snapshot was installed
	UpdatedAt time.Time `yaml:"updated_at"`
}

// Inventory is the single-writer handle for the current service
// collection. Results replace the collection wholesale, and a result
// older than the installed one is rejected, so overlapping fetches can
// finish in any order. The zero value is ready to use.
type Inventory struct {
	current atomic.Pointer[Snapshot]
	next    atomic.Uint64
}

// NewInventory creates an empty Inventory
func NewInventory() *Inventory {
	return &Inventory{}
}

// Begin issues the generation for a new fetch
func (i *Inventory) Begin() uint64 {
	return i.next.Add(1)
}

// Replace installs res if its generation is newer than the installed
// snapshot and reports whether it did.
func (i *Inventory) Replace(res FetchResult) bool {
	services := res.Services
	if services == nil {
		services = Collection{}
	}
	next := &Snapshot{
		Generation: res.Generation,
		Services:   services,
		Err:        res.Err,
		UpdatedAt:  time.Now(),
	}

	for {
		cur := i.current.Load()
		if cur != nil && res.Generation <= cur.Generation {
			return false
		}
		if i.current.CompareAndSwap(cur, next) {
			return true
		}
	}
}

// Seed installs s as generation zero if nothing has been installed yet,
// typically a snapshot loaded from disk at startup.
func (i *Inventory) Seed(s Snapshot) bool {
	s.Generation = 0
	if s.Services == nil {
		s.Services = Collection{}
	}
	return i.current.CompareAndSwap(nil, &s)
}

// Snapshot returns the installed snapshot, or an empty one
func (i *Inventory) Snapshot() Snapshot {
	if cur := i.current.Load(); cur != nil {
		return *cur
	}
	return Snapshot{Services: Collection{}}
}
