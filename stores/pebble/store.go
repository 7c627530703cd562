// Package pebble persists named serialized dependency trees in a local
// pebble database. It gives fixture collections exact-key lookup without a
// directory per fixture; there is no indexing or querying beyond that.
package pebble

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/scrapekit/scrapekit"
	"github.com/scrapekit/scrapekit/fsdata"
	"golang.org/x/exp/slices"
)

// ErrFixtureNotFound is returned by Get when no tree is stored under the
// requested name.
var ErrFixtureNotFound = errors.New("pebble: fixture not found")

// keySep separates the fixture name from the leaf file name in store
// keys. NUL cannot appear in either part.
const keySep = byte(0)

// Store holds named serialized trees. Each leaf entry becomes one key
// "<name>\x00<file name>", where the file name follows the directory
// codec's convention, so a fixture round-trips through the store exactly
// as it does through a directory.
type Store struct {
	db *pebble.DB
}

// Open opens (or creates) a store at dir.
func Open(dir string) (*Store, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dir, err)
	}
	return &Store{db: db}, nil
}

// Put stores tree under name, replacing any previous tree with that name.
func (s *Store) Put(name string, tree scrapekit.SerializedTree) error {
	if err := s.deleteRange(name); err != nil {
		return err
	}
	for typeName, leaf := range tree {
		for key, value := range leaf {
			k := storeKey(name, fsdata.FileName(typeName, key))
			if err := s.db.Set(k, value, &pebble.WriteOptions{Sync: false}); err != nil {
				return fmt.Errorf("store leaf %s/%s of %q: %w", typeName, key, name, err)
			}
		}
	}
	return nil
}

// Get returns the tree stored under name, or ErrFixtureNotFound.
func (s *Store) Get(name string) (scrapekit.SerializedTree, error) {
	lower, upper := nameBounds(name)
	iter, err := s.db.NewIter(&pebble.IterOptions{LowerBound: lower, UpperBound: upper})
	if err != nil {
		return nil, fmt.Errorf("iterate %q: %w", name, err)
	}
	defer iter.Close()

	tree := scrapekit.SerializedTree{}
	for iter.First(); iter.Valid(); iter.Next() {
		fileName := string(iter.Key()[len(lower):])
		typeName, key, ok := fsdata.SplitFileName(fileName)
		if !ok {
			continue
		}
		value, err := iter.ValueAndErr()
		if err != nil {
			return nil, fmt.Errorf("read leaf %q of %q: %w", fileName, name, err)
		}
		// Copy before the iterator invalidates the slice.
		if tree[typeName] == nil {
			tree[typeName] = scrapekit.LeafData{}
		}
		tree[typeName][key] = bytes.Clone(value)
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("iterate %q: %w", name, err)
	}
	if len(tree) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrFixtureNotFound, name)
	}
	return tree, nil
}

// Delete removes the tree stored under name. Deleting a missing name is
// not an error.
func (s *Store) Delete(name string) error {
	return s.deleteRange(name)
}

// Names returns the stored fixture names in sorted order.
func (s *Store) Names() ([]string, error) {
	iter, err := s.db.NewIter(nil)
	if err != nil {
		return nil, fmt.Errorf("iterate store: %w", err)
	}
	defer iter.Close()

	var names []string
	for iter.First(); iter.Valid(); iter.Next() {
		name, _, ok := bytes.Cut(iter.Key(), []byte{keySep})
		if !ok {
			continue
		}
		if n := string(name); len(names) == 0 || names[len(names)-1] != n {
			names = append(names, n)
		}
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("iterate store: %w", err)
	}
	slices.Sort(names)
	return slices.Compact(names), nil
}

// Flush persists pending writes to disk.
func (s *Store) Flush() error {
	return s.db.Flush()
}

// Close flushes and closes the database.
func (s *Store) Close() error {
	if err := s.db.Flush(); err != nil {
		return err
	}
	return s.db.Close()
}

func (s *Store) deleteRange(name string) error {
	lower, upper := nameBounds(name)
	if err := s.db.DeleteRange(lower, upper, &pebble.WriteOptions{Sync: false}); err != nil {
		return fmt.Errorf("delete %q: %w", name, err)
	}
	return nil
}

func storeKey(name, fileName string) []byte {
	k := make([]byte, 0, len(name)+1+len(fileName))
	k = append(k, name...)
	k = append(k, keySep)
	k = append(k, fileName...)
	return k
}

// nameBounds returns the key range holding all leaves of name: the lower
// bound is "<name>\x00", the upper "<name>\x01".
func nameBounds(name string) (lower, upper []byte) {
	lower = append([]byte(name), keySep)
	upper = append([]byte(name), keySep+1)
	return lower, upper
}
