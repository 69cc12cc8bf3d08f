package store

import (
	bolt "go.etcd.io/bbolt"
	"gopkg.in/yaml.v3"

	. "src.reggae.sh/pkg/store/storedefs"
)

func init() {
	initDB["initialize truth table table"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketTable))
		return err
	}
}

// Table gets the truth table stored for an expression.
func (s *dbStore) Table(expr string) (Table, error) {
	var t Table
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketTable))
		v := b.Get([]byte(expr))
		if v == nil {
			return ErrNoTable
		}
		return yaml.Unmarshal(v, &t)
	})
	return t, err
}

// PutTable stores the truth table of an expression, replacing any table
// stored for it before.
func (s *dbStore) PutTable(expr string, t Table) error {
	data, err := yaml.Marshal(t)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketTable))
		return b.Put([]byte(expr), data)
	})
}

// DelTable deletes the truth table stored for an expression.
func (s *dbStore) DelTable(expr string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketTable))
		return b.Delete([]byte(expr))
	})
}
