// internal/domain/observation/repository.go
package observation

import "context"

// Repository defines read access to the trainer's cached observations.
//
// ListSummaries scans every stored document and yields one Summary per
// well-formed record; malformed documents are skipped with a logged warning,
// never a fatal error. Output ordering is the implementation's scan order and
// is stable between calls; consumers re-sort as needed.
//
// Get re-reads the full document by id, giving the aggregator access to
// indicator detail that the lightweight Summary does not carry.
type Repository interface {
	ListSummaries(ctx context.Context) ([]Summary, error)
	Get(ctx context.Context, id string) (*Record, error)
}
