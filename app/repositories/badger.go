package repositories

import (
	"context"
	"errors"
	"fmt"

	"lotrblog/app/logger"

	"github.com/dgraph-io/badger/v4"
)

const (
	// ids leased from a sequence per disk write
	seqBandwidth = 100

	maxConflictRetries = 100
)

// BadgerStore implements Store on top of an embedded BadgerDB.
// Posts and comments are JSON values under "post:<id>" and "comment:<id>",
// ids come from the "seq:post" and "seq:comment" badger sequences.
type BadgerStore struct {
	db         *badger.DB
	postSeq    *badger.Sequence
	commentSeq *badger.Sequence
	logger     *logger.Logger
}

// OpenBadgerDB opens the raw database in dir without leasing any ids, as
// backup and restore need. An empty dir opens an in-memory database.
func OpenBadgerDB(dir string) (*badger.DB, error) {
	opts := badger.DefaultOptions(dir).
		WithLogger(nil).
		WithNumVersionsToKeep(1)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}
	return db, nil
}

// NewBadgerStore opens a BadgerDB in dir. An empty dir opens an in-memory
// database, which is what the tests use.
func NewBadgerStore(dir string, log *logger.Logger) (*BadgerStore, error) {
	db, err := OpenBadgerDB(dir)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("dir", dir).Msg("badger store opened")

	store, err := NewBadgerStoreWithDB(db, log)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// NewBadgerStoreWithDB wraps an already opened BadgerDB.
func NewBadgerStoreWithDB(db *badger.DB, log *logger.Logger) (*BadgerStore, error) {
	postSeq, err := db.GetSequence([]byte(PostSeqKey), seqBandwidth)
	if err != nil {
		return nil, fmt.Errorf("failed to get post sequence: %w", err)
	}
	commentSeq, err := db.GetSequence([]byte(CommentSeqKey), seqBandwidth)
	if err != nil {
		postSeq.Release()
		return nil, fmt.Errorf("failed to get comment sequence: %w", err)
	}

	return &BadgerStore{
		db:         db,
		postSeq:    postSeq,
		commentSeq: commentSeq,
		logger:     log,
	}, nil
}

// Close returns unused leased ids and closes the database.
func (s *BadgerStore) Close() error {
	err := errors.Join(s.postSeq.Release(), s.commentSeq.Release())
	return errors.Join(err, s.db.Close())
}

// nextID draws the next id from seq. Ids start at 1.
func nextID(seq *badger.Sequence) (int64, error) {
	n, err := seq.Next()
	if err != nil {
		return 0, fmt.Errorf("failed to get next id: %w", err)
	}
	return int64(n) + 1, nil
}

// update runs fn in a read-write transaction, rerunning it when the commit
// loses to a concurrent transaction. fn must not keep state across runs.
func (s *BadgerStore) update(ctx context.Context, fn func(txn *badger.Txn) error) error {
	var err error
	for attempt := 1; attempt <= maxConflictRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		err = s.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
		s.logger.Debug().Int("attempt", attempt).Msg("badger transaction conflict, retrying")
	}
	return fmt.Errorf("giving up after %d conflicts: %w", maxConflictRetries, err)
}
