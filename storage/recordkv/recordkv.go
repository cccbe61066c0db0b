// Package recordkv persists table records in an ordered key-value
// store. Record keys are big-endian identifiers, so a single
// iteration over the record key range yields the consistent,
// identifier-ordered snapshot an audit pass requires.
package recordkv

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/n-widmer/tableproof/merkletree"
	"github.com/n-widmer/tableproof/protocol"
	"github.com/n-widmer/tableproof/storage/kv"
)

const recordKeyPrefix byte = 'r'

// nextIDKey holds the next unassigned record identifier, so that
// identifiers keep strictly increasing even after deletions.
var nextIDKey = []byte("m/next_id")

// Store stores protocol.Records over an abstract kv.DB.
type Store struct {
	db kv.DB
}

// New wraps db as a record store.
func New(db kv.DB) *Store {
	return &Store{db: db}
}

func recordKey(id uint64) []byte {
	key := make([]byte, 9)
	key[0] = recordKeyPrefix
	binary.BigEndian.PutUint64(key[1:], id)
	return key
}

// recordRange covers every record key and nothing else.
func recordRange() *kv.Range {
	return &kv.Range{
		Start: recordKey(0),
		Limit: []byte{recordKeyPrefix + 1},
	}
}

// encodeRecord refreshes rec's committed leaf digest from its current
// data and returns the stored form. Every legitimate write path goes
// through here; a write that bypasses the digest refresh is exactly
// what an audit detects.
func encodeRecord(rec *protocol.Record) ([]byte, error) {
	canonical, err := rec.CanonicalBytes()
	if err != nil {
		return nil, err
	}
	rec.LeafDigest = merkletree.LeafHash(canonical)
	return json.Marshal(rec)
}

// Append assigns the next identifier to rec, commits its leaf digest,
// and stores it. The id bump and the record write happen in one
// atomic batch.
func (s *Store) Append(rec *protocol.Record) (uint64, error) {
	id, err := s.nextID()
	if err != nil {
		return 0, err
	}
	rec.ID = id
	buf, err := encodeRecord(rec)
	if err != nil {
		return 0, err
	}

	next := make([]byte, 8)
	binary.BigEndian.PutUint64(next, id+1)

	batch := s.db.NewBatch()
	batch.Put(recordKey(id), buf)
	batch.Put(nextIDKey, next)
	return id, s.db.Write(batch)
}

// Put overwrites the stored form of rec at its current identifier,
// committing a fresh leaf digest over the new data. Note that after a
// Put the pinned trusted root is stale until an operator re-pins it.
func (s *Store) Put(rec *protocol.Record) error {
	if rec.ID == 0 {
		return fmt.Errorf("[recordkv] Record has no identifier (did you mean Append?)")
	}
	buf, err := encodeRecord(rec)
	if err != nil {
		return err
	}
	return s.db.Put(recordKey(rec.ID), buf)
}

// Get returns the record stored under id.
func (s *Store) Get(id uint64) (*protocol.Record, error) {
	buf, err := s.db.Get(recordKey(id))
	if err != nil {
		return nil, err
	}
	rec := new(protocol.Record)
	if err := json.Unmarshal(buf, rec); err != nil {
		return nil, fmt.Errorf("[recordkv] Cannot decode record %d: %v", id, err)
	}
	return rec, nil
}

// Snapshot returns every stored record in ascending identifier order.
func (s *Store) Snapshot() ([]protocol.Record, error) {
	iter := s.db.NewIterator(recordRange())
	defer iter.Release()

	var records []protocol.Record
	for ok := iter.First(); ok; ok = iter.Next() {
		var rec protocol.Record
		if err := json.Unmarshal(iter.Value(), &rec); err != nil {
			return nil, fmt.Errorf("[recordkv] Cannot decode record at key %x: %v", iter.Key(), err)
		}
		records = append(records, rec)
	}
	return records, iter.Error()
}

// nextID reads the identifier counter; identifiers start at 1.
func (s *Store) nextID() (uint64, error) {
	buf, err := s.db.Get(nextIDKey)
	if err == s.db.ErrNotFound() {
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	if len(buf) != 8 {
		return 0, fmt.Errorf("[recordkv] Corrupt identifier counter (%d bytes)", len(buf))
	}
	return binary.BigEndian.Uint64(buf), nil
}
