package roster

import "context"

// SnapshotRepository persists the whole roster as one serialized blob under
// a well-known key. Implemented by the storage package; the memory store
// never touches it directly — callers save explicitly after each accepted
// mutation.
type SnapshotRepository interface {
	// Load reads the last saved snapshot. ok is false when no snapshot has
	// ever been saved.
	Load(ctx context.Context) (snap Snapshot, ok bool, err error)
	// Save overwrites the stored snapshot.
	Save(ctx context.Context, snap Snapshot) error
	Close() error
}
