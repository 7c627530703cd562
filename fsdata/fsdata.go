// Package fsdata flattens serialized dependency trees to directories of
// files and back. The directory listing itself is the index: no manifest
// file is written.
package fsdata

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/scrapekit/scrapekit"
	"go.uber.org/multierr"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// FileName returns the file name for one leaf entry. A format key that is
// a bare word keeps the dot separator ("ResponseUrl.txt"); a key that
// already contains a dot is attached with a dash ("HttpResponse-body.html")
// so the two parts stay separable.
func FileName(typeName, key string) string {
	if strings.Contains(key, ".") {
		return typeName + "-" + key
	}
	return typeName + "." + key
}

// SplitFileName reverses FileName: the name is split on the first "-" when
// one is present, else on the first ".". ok is false when the name fits
// neither form.
func SplitFileName(name string) (typeName, key string, ok bool) {
	if typeName, key, ok = strings.Cut(name, "-"); ok {
		return typeName, key, true
	}
	return strings.Cut(name, ".")
}

// Write stores tree in dir, one file per leaf entry, overwriting existing
// files. dir must already exist. Every entry is attempted; the returned
// error aggregates all failures.
func Write(tree scrapekit.SerializedTree, dir string) error {
	var errs error
	for _, typeName := range sortedKeys(tree) {
		leaf := tree[typeName]
		for _, key := range sortedKeys(leaf) {
			path := filepath.Join(dir, FileName(typeName, key))
			if err := os.WriteFile(path, leaf[key], 0o644); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("write leaf %s/%s: %w", typeName, key, err))
			}
		}
	}
	return errs
}

// Read loads a tree from dir by reversing the naming convention. Files
// whose names fit neither naming form are ignored. Filesystem errors are
// surfaced unchanged.
func Read(dir string) (scrapekit.SerializedTree, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	tree := scrapekit.SerializedTree{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		typeName, key, ok := SplitFileName(e.Name())
		if !ok {
			continue
		}
		b, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		if tree[typeName] == nil {
			tree[typeName] = scrapekit.LeafData{}
		}
		tree[typeName][key] = b
	}
	return tree, nil
}

// Storage reads and writes serialized trees in one directory.
type Storage struct {
	Dir string
}

func NewStorage(dir string) *Storage {
	return &Storage{Dir: dir}
}

func (s *Storage) Read() (scrapekit.SerializedTree, error) {
	return Read(s.Dir)
}

func (s *Storage) Write(tree scrapekit.SerializedTree) error {
	return Write(tree, s.Dir)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}
