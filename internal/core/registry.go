package core

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registry   = make(map[string]TableInfo)
	registryMu sync.RWMutex
)

// Register adds a table to the registry.
// Panics if a table with the same key is already registered.
func Register(info TableInfo) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[info.Key]; exists {
		panic(fmt.Sprintf("table already registered: %s", info.Key))
	}

	registry[info.Key] = info
}

// Get returns a table by key.
// Returns false if not found.
func Get(key string) (TableInfo, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	info, ok := registry[key]
	return info, ok
}

// All returns all registered tables.
// Sorted by group then by key for consistent ordering.
func All() []TableInfo {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]TableInfo, 0, len(registry))
	for _, info := range registry {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Group != result[j].Group {
			return result[i].Group < result[j].Group
		}
		return result[i].Key < result[j].Key
	})

	return result
}

// Keys returns all registered table keys in the same order as All.
func Keys() []string {
	all := All()
	keys := make([]string, len(all))
	for i, info := range all {
		keys[i] = info.Key
	}
	return keys
}

// ByGroup returns all tables for a specific group.
// Sorted by key for consistent ordering.
func ByGroup(group string) []TableInfo {
	registryMu.RLock()
	defer registryMu.RUnlock()

	var result []TableInfo
	for _, info := range registry {
		if info.Group == group {
			result = append(result, info)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Key < result[j].Key
	})

	return result
}

// Groups returns all unique group names.
// Sorted alphabetically.
func Groups() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	seen := make(map[string]bool)
	for _, info := range registry {
		seen[info.Group] = true
	}

	groups := make([]string, 0, len(seen))
	for g := range seen {
		groups = append(groups, g)
	}

	sort.Strings(groups)
	return groups
}

// DefaultCSVTables returns the keys of tables included in per-table CSV
// output when the caller does not choose an explicit subset.
func DefaultCSVTables() []string {
	var keys []string
	for _, info := range All() {
		if info.DefaultCSV {
			keys = append(keys, info.Key)
		}
	}
	return keys
}

// TableCount returns the number of registered tables.
func TableCount() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}

// Clear removes all registered tables.
// Primarily useful for testing.
func Clear() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[string]TableInfo)
}
