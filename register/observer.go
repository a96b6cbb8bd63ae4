package register

import (
	"slices"
)

type observer struct {
	fn func()
}

// Observers is an ordered list of refresh callbacks for views that depend on
// register values. The register package never calls Notify itself; whoever
// commits a write notifies once the write, or a burst of writes, is done.
type Observers struct {
	list      []*observer
	notifying bool
}

// Add registers fn, and returns a function that removes it again.
func (obs *Observers) Add(fn func()) (remove func()) {
	entry := &observer{fn: fn}
	obs.list = append(obs.list, entry)

	return func() {
		obs.list = slices.DeleteFunc(obs.list, func(o *observer) bool {
			return o == entry
		})
	}
}

// Len returns the number of registered callbacks.
func (obs *Observers) Len() int {
	return len(obs.list)
}

// Notify calls every callback in registration order. A Notify issued from
// inside a callback is ignored, so a view that writes a field while
// refreshing does not recurse.
func (obs *Observers) Notify() {
	if obs.notifying {
		return
	}

	obs.notifying = true
	defer func() { obs.notifying = false }()

	for _, entry := range slices.Clone(obs.list) {
		entry.fn()
	}
}
