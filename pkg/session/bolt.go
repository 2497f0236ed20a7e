package session

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var snapshotBucket = []byte("snapshots")

// BoltStore persists snapshots in a bbolt database file, so sessions
// survive server restarts.
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore opens (or creates) the database at path.
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open snapshot store: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, berr := tx.CreateBucketIfNotExists(snapshotBucket)
		return berr
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init snapshot store: %w", err)
	}
	return &BoltStore{db: db}, nil
}

// Save implements Store.
func (s *BoltStore) Save(ctx context.Context, sessionID string, snap Snapshot) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(snapshotBucket).Put([]byte(sessionID), encodeSnapshot(snap))
	})
}

// Load implements Store.
func (s *BoltStore) Load(ctx context.Context, sessionID string) (*Snapshot, error) {
	var snap *Snapshot
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(snapshotBucket).Get([]byte(sessionID))
		if raw == nil {
			return nil
		}
		decoded, derr := decodeSnapshot(raw)
		if derr != nil {
			return derr
		}
		snap = decoded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// Delete implements Store.
func (s *BoltStore) Delete(ctx context.Context, sessionID string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(snapshotBucket).Delete([]byte(sessionID))
	})
}

// Close implements Store.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// encodeSnapshot lays out an 8-byte unix-nano timestamp followed by the
// markup bytes.
func encodeSnapshot(snap Snapshot) []byte {
	out := make([]byte, 8+len(snap.Markup))
	binary.BigEndian.PutUint64(out, uint64(snap.SavedAt.UnixNano()))
	copy(out[8:], snap.Markup)
	return out
}

func decodeSnapshot(raw []byte) (*Snapshot, error) {
	if len(raw) < 8 {
		return nil, fmt.Errorf("corrupt snapshot record: %d bytes", len(raw))
	}
	markup := make([]byte, len(raw)-8)
	copy(markup, raw[8:])
	return &Snapshot{
		Markup:  markup,
		SavedAt: time.Unix(0, int64(binary.BigEndian.Uint64(raw))),
	}, nil
}
