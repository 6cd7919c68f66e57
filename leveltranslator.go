package mirdip

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
)

// LevelTranslator is the leveldb flavor of BoltTranslator: it wraps
// another Translator and caches every lookup in a leveldb directory.
// Prefer it over bolt when the mapping is large enough that write
// amplification on a single file starts to hurt.
type LevelTranslator struct {
	db  *leveldb.DB
	src Translator
}

// NewLevelTranslator opens (or creates) the cache under dirname and wraps
// src.
func NewLevelTranslator(dirname string, src Translator) (*LevelTranslator, error) {
	db, err := leveldb.OpenFile(dirname, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "opening leveldb at '%v'", dirname)
	}
	return &LevelTranslator{db: db, src: src}, nil
}

// Accessions implements Translator, consulting the cache first.
func (lt *LevelTranslator) Accessions(symbol string) ([]string, error) {
	v, err := lt.db.Get([]byte(symbol), nil)
	if err == nil {
		return decodeAccessions(v), nil
	}
	if err != leveldb.ErrNotFound {
		return nil, errors.Wrap(err, "reading cache")
	}
	accs, err := lt.src.Accessions(symbol)
	if err != nil {
		return nil, errors.Wrapf(err, "translating %q", symbol)
	}
	err = lt.db.Put([]byte(symbol), encodeAccessions(accs), nil)
	return accs, errors.Wrap(err, "writing cache")
}

// Clear drops all cached translations.
func (lt *LevelTranslator) Clear() error {
	iter := lt.db.NewIterator(nil, nil)
	defer iter.Release()
	batch := new(leveldb.Batch)
	for iter.Next() {
		batch.Delete(append([]byte(nil), iter.Key()...))
	}
	if err := iter.Error(); err != nil {
		return errors.Wrap(err, "iterating cache")
	}
	return errors.Wrap(lt.db.Write(batch, nil), "clearing cache")
}

// Close closes the underlying db.
func (lt *LevelTranslator) Close() error {
	return errors.Wrap(lt.db.Close(), "closing leveldb")
}
