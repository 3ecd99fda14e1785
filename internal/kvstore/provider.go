// Package kvstore defines the key-value device-store abstraction used
// for offline-first persistence.
package kvstore

// Provider is the interface for key-value storage. Keys are flat strings
// and values are serialized records; the store has no lifecycle beyond
// process start/stop and no transactions.
type Provider interface {
	// Keys returns every key currently present in the store.
	Keys() ([]string, error)
	// Get returns the value stored under key. A missing key yields an
	// error wrapping os.ErrNotExist.
	Get(key string) (string, error)
	// MultiGet bulk-reads the given keys. Keys that are missing by the
	// time they are read are silently omitted from the result.
	MultiGet(keys []string) (map[string]string, error)
	// Set atomically writes value under key, overwriting any previous
	// value.
	Set(key, value string) error
	// Remove deletes a single key.
	Remove(key string) error
	// MultiRemove deletes the given keys in one pass. Keys already gone
	// are skipped.
	MultiRemove(keys []string) error
}
