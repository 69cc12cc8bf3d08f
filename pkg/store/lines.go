package store

import (
	"bytes"
	"encoding/binary"

	bolt "go.etcd.io/bbolt"

	. "src.reggae.sh/pkg/store/storedefs"
)

func init() {
	initDB["initialize line history table"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketLine))
		return err
	}
}

// NextLineSeq returns the next sequence number of the line history.
func (s *dbStore) NextLineSeq() (int, error) {
	var seq uint64
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketLine))
		seq = b.Sequence() + 1
		return nil
	})
	return int(seq), err
}

// AddLine adds a new line to the line history.
func (s *dbStore) AddLine(text string) (int, error) {
	var (
		seq uint64
		err error
	)
	err = s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketLine))
		seq, err = b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(marshalSeq(seq), []byte(text))
	})
	return int(seq), err
}

// Lines returns all lines with sequence numbers in [from, upto).
func (s *dbStore) Lines(from, upto int) ([]Line, error) {
	var lines []Line
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketLine))
		c := b.Cursor()
		for k, v := c.Seek(marshalSeq(uint64(from))); k != nil && unmarshalSeq(k) < uint64(upto); k, v = c.Next() {
			lines = append(lines, Line{Text: string(v), Seq: int(unmarshalSeq(k))})
		}
		return nil
	})
	return lines, err
}

// PrevLine finds the last line before the given sequence number (exclusive)
// with the given prefix.
func (s *dbStore) PrevLine(upto int, prefix string) (Line, error) {
	var line Line
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketLine))
		c := b.Cursor()
		p := []byte(prefix)

		var v []byte
		k, _ := c.Seek(marshalSeq(uint64(upto)))
		if k == nil { // upto > LAST
			k, v = c.Last()
			if k == nil {
				return ErrNoMatchingLine
			}
		} else {
			k, v = c.Prev() // upto exists, find the previous one
		}

		for ; k != nil; k, v = c.Prev() {
			if bytes.HasPrefix(v, p) {
				line = Line{Text: string(v), Seq: int(unmarshalSeq(k))}
				return nil
			}
		}
		return ErrNoMatchingLine
	})
	return line, err
}

func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

func unmarshalSeq(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}
