// SPDX-License-Identifier: EPL-2.0

package decoder

import (
	"sort"
	"sync"
)

// Constructor builds a fresh, unopened decoder instance.
type Constructor func() Decoder

// Entry describes a registered backend. Sniff is optional; backends whose
// format has no usable magic (tracker modules, raw MP3) provide one and
// the factory delegates to it.
type Entry struct {
	New   Constructor
	Sniff func(stream Stream) bool
}

type registry struct {
	mtx     sync.Mutex
	entries map[string]Entry
}

var defaultRegistry = &registry{entries: make(map[string]Entry)}

// Register makes a backend available to the factory under the given key.
// Format packages call it from init, so importing a format package is what
// "compiles in" that backend. Registering a key twice replaces the entry.
func Register(name string, e Entry) {
	defaultRegistry.mtx.Lock()
	defer defaultRegistry.mtx.Unlock()

	defaultRegistry.entries[name] = e
}

// Lookup returns the backend registered under name, if any.
func Lookup(name string) (Entry, bool) {
	defaultRegistry.mtx.Lock()
	defer defaultRegistry.mtx.Unlock()

	e, ok := defaultRegistry.entries[name]
	return e, ok
}

// Backends lists the registered backend keys in sorted order.
func Backends() []string {
	defaultRegistry.mtx.Lock()
	defer defaultRegistry.mtx.Unlock()

	names := make([]string, 0, len(defaultRegistry.entries))
	for name := range defaultRegistry.entries {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
