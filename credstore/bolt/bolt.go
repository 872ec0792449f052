// Package bolt provides a BBolt-backed credential store.
package bolt

import (
	"fmt"

	"github.com/paydesk/paydesk/credstore"
	"go.etcd.io/bbolt"
)

var (
	bucketName = []byte("credentials")
	tokenKey   = []byte("token")
)

// Store implements credstore.Store backed by a BBolt database.
type Store struct {
	db *bbolt.DB
}

var _ credstore.Store = (*Store)(nil)

// New returns a Store backed by the given BBolt database.
func New(db *bbolt.DB) *Store {
	return &Store{db: db}
}

// NewFromFile opens a BBolt database at the given path and returns a new Store.
func NewFromFile(path string, options *bbolt.Options) (*Store, error) {
	db, err := bbolt.Open(path, 0600, options)
	if err != nil {
		return nil, fmt.Errorf("opening bbolt db: %w", err)
	}
	return New(db), nil
}

// Close closes the underlying BBolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Save(token string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketName)
		if err != nil {
			return err
		}
		return b.Put(tokenKey, []byte(token))
	})
}

func (s *Store) Load() (string, error) {
	var token string
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketName)
		if b == nil {
			return credstore.ErrNotFound
		}
		data := b.Get(tokenKey)
		if data == nil {
			return credstore.ErrNotFound
		}
		token = string(data)
		return nil
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

func (s *Store) Clear() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketName)
		if b == nil {
			return nil
		}
		return b.Delete(tokenKey)
	})
}
