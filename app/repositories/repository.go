package repositories

import (
	"io"

	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
)

// OpenBadger opens the database at path. An empty path gives an in-memory
// database, used by tests.
func OpenBadger(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithSyncWrites(false).
		WithNumVersionsToKeep(1)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "open badger at %q", path)
	}
	return db, nil
}

// NewBadgerStore wires every repository to db. Closing the store closes db.
func NewBadgerStore(db *badger.DB) *Store {
	return &Store{
		Users:    NewBadgerUserRepository(db),
		Groups:   NewBadgerGroupRepository(db),
		Posts:    NewBadgerPostRepository(db),
		Comments: NewBadgerCommentRepository(db),
		Follows:  NewBadgerFollowRepository(db),
		closer:   db.Close,
	}
}

// ClearBadger drops every key, sequences included.
func ClearBadger(db *badger.DB) error {
	return db.DropAll()
}

// BackupBadger writes a full backup of db to w.
func BackupBadger(db *badger.DB, w io.Writer) error {
	_, err := db.Backup(w, 0)
	return errors.Wrap(err, "backup")
}

// RestoreBadger loads a backup produced by BackupBadger into db.
func RestoreBadger(db *badger.DB, r io.Reader) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = errors.Errorf("panic occurred during restore: %v", rec)
		}
	}()
	return errors.Wrap(db.Load(r, 4), "restore")
}
