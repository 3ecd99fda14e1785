package index

// TipIndex defines the interface for tip indexing operations. Consumers
// should depend on this interface rather than the concrete *DB type to
// facilitate testing with mocks.
type TipIndex interface {
	UpsertTip(row TipRow) error
	DeleteTip(id string) error
	DeleteAll() error
	GetChecksum(id string) (string, error)
	AllChecksums() (map[string]string, error)
	ListTips(limit, offset int, category, sort string) ([]TipRow, int, error)
	Search(query string, limit int) ([]SearchResult, error)
	Close() error
}

// Verify *DB satisfies TipIndex at compile time.
var _ TipIndex = (*DB)(nil)
