package mirdip

import (
	"time"

	"github.com/boltdb/bolt"
	"github.com/pkg/errors"
)

var accessionBucket = []byte("symbol_to_accession")

// BoltTranslator wraps another Translator and persists every lookup
// (including negative ones) in a boltdb file, so repeated imports don't
// pay for symbol translation twice. This mirrors the mapping cache the
// original adapter kept between runs.
type BoltTranslator struct {
	Db  *bolt.DB
	src Translator
}

// NewBoltTranslator opens (or creates) the cache file and wraps src.
func NewBoltTranslator(filename string, src Translator) (*BoltTranslator, error) {
	db, err := bolt.Open(filename, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "opening cache file '%v'", filename)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(accessionBucket)
		return errors.Wrap(err, "creating accession bucket")
	})
	if err != nil {
		return nil, err
	}
	return &BoltTranslator{Db: db, src: src}, nil
}

// Accessions implements Translator, consulting the cache first.
func (bt *BoltTranslator) Accessions(symbol string) (accs []string, err error) {
	var hit bool
	err = bt.Db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(accessionBucket).Get([]byte(symbol)); v != nil {
			accs = decodeAccessions(v)
			hit = true
		}
		return nil
	})
	if err != nil || hit {
		return accs, errors.Wrap(err, "reading cache")
	}
	accs, err = bt.src.Accessions(symbol)
	if err != nil {
		return nil, errors.Wrapf(err, "translating %q", symbol)
	}
	err = bt.Db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(accessionBucket).Put([]byte(symbol), encodeAccessions(accs))
	})
	return accs, errors.Wrap(err, "writing cache")
}

// Clear drops all cached translations.
func (bt *BoltTranslator) Clear() error {
	return bt.Db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(accessionBucket); err != nil {
			return errors.Wrap(err, "dropping accession bucket")
		}
		_, err := tx.CreateBucket(accessionBucket)
		return errors.Wrap(err, "recreating accession bucket")
	})
}

// Close syncs and closes the underlying db.
func (bt *BoltTranslator) Close() error {
	if err := bt.Db.Sync(); err != nil {
		return errors.Wrap(err, "syncing db")
	}
	return bt.Db.Close()
}
