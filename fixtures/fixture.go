// Package fixtures manages test-fixture directories for page objects. A
// fixture is one directory holding the serialized page inputs, the
// expected item output and optional metadata:
//
//	MyPage/
//	  test-1/
//	    inputs/
//	      HttpResponse-body.html
//	      HttpResponse-other.json
//	    output.json
//	    meta.json
package fixtures

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/scrapekit/scrapekit"
	"github.com/scrapekit/scrapekit/fsdata"
)

const (
	inputDirName     = "inputs"
	outputFileName   = "output.json"
	metaFileName     = "meta.json"
	fixtureNameTempl = "test-%d"
)

// Meta holds arbitrary fixture metadata, persisted verbatim so external
// runners can interpret entries like "frozen_time".
type Meta map[string]any

// Fixture is a directory containing one test case.
type Fixture struct {
	Path string
}

func New(path string) *Fixture {
	return &Fixture{Path: path}
}

// TypeName is the name of the page object type under test: the name of
// the fixture's parent directory.
func (f *Fixture) TypeName() string {
	return filepath.Base(filepath.Dir(f.Path))
}

// TestName is the name of this test case: the fixture directory name.
func (f *Fixture) TestName() string {
	return filepath.Base(f.Path)
}

// ShortName is "<TypeName>/<TestName>".
func (f *Fixture) ShortName() string {
	return f.TypeName() + "/" + f.TestName()
}

func (f *Fixture) InputPath() string {
	return filepath.Join(f.Path, inputDirName)
}

func (f *Fixture) OutputPath() string {
	return filepath.Join(f.Path, outputFileName)
}

func (f *Fixture) MetaPath() string {
	return filepath.Join(f.Path, metaFileName)
}

// IsValid reports whether the fixture has the expected file structure.
func (f *Fixture) IsValid() bool {
	input, err := os.Stat(f.InputPath())
	if err != nil || !input.IsDir() {
		return false
	}
	output, err := os.Stat(f.OutputPath())
	return err == nil && output.Mode().IsRegular()
}

// InputTree loads the serialized page inputs.
func (f *Fixture) InputTree() (scrapekit.SerializedTree, error) {
	return fsdata.Read(f.InputPath())
}

// ExpectedOutput loads the saved item output.
func (f *Fixture) ExpectedOutput() (map[string]any, error) {
	b, err := os.ReadFile(f.OutputPath())
	if err != nil {
		return nil, err
	}
	var output map[string]any
	if err := json.Unmarshal(b, &output); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.OutputPath(), err)
	}
	return output, nil
}

// Meta loads the fixture metadata; a missing meta file yields an empty
// Meta.
func (f *Fixture) Meta() (Meta, error) {
	b, err := os.ReadFile(f.MetaPath())
	if os.IsNotExist(err) {
		return Meta{}, nil
	}
	if err != nil {
		return nil, err
	}
	var meta Meta
	if err := json.Unmarshal(b, &meta); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.MetaPath(), err)
	}
	return meta, nil
}

// Save writes a fixture at dir: the tree under inputs/, output as
// output.json, and meta as meta.json when non-empty. Parent directories
// are created as needed.
func Save(dir string, tree scrapekit.SerializedTree, output any, meta Meta) (*Fixture, error) {
	f := New(dir)
	if err := os.MkdirAll(f.InputPath(), 0o755); err != nil {
		return nil, err
	}
	if err := fsdata.Write(tree, f.InputPath()); err != nil {
		return nil, err
	}

	outputBytes, err := json.MarshalIndent(output, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("encode output: %w", err)
	}
	if err := os.WriteFile(f.OutputPath(), outputBytes, 0o644); err != nil {
		return nil, err
	}

	if len(meta) > 0 {
		metaBytes, err := json.MarshalIndent(meta, "", "    ")
		if err != nil {
			return nil, fmt.Errorf("encode meta: %w", err)
		}
		if err := os.WriteFile(f.MetaPath(), metaBytes, 0o644); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// AddToDir saves a fixture under the next free "test-N" subdirectory of
// dir.
func AddToDir(dir string, tree scrapekit.SerializedTree, output any, meta Meta) (*Fixture, error) {
	return Save(filepath.Join(dir, nextName(dir)), tree, output, meta)
}

func nextName(dir string) string {
	for i := 1; ; i++ {
		name := fmt.Sprintf(fixtureNameTempl, i)
		if _, err := os.Stat(filepath.Join(dir, name)); os.IsNotExist(err) {
			return name
		}
	}
}
