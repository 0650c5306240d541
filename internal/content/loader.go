package content

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Subdirectories of a content tree.
const (
	CharactersDir = "characters"
	EnemiesDir    = "enemies"
	EncountersDir = "encounters"
)

// ErrNotFound is returned when an id is not in the library.
var ErrNotFound = errors.New("content: not found")

// Library holds every definition of a content tree, keyed by id.
type Library struct {
	Characters map[string]*CharacterDef
	Enemies    map[string]*EnemyDef
	Encounters map[string]*EncounterDef
}

// decodeStrict parses data into out, rejecting unknown keys.
func decodeStrict(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(out)
}

// yamlFiles lists *.yaml and *.yml files in dir in name order. A missing
// directory yields no files.
func yamlFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// loadAll decodes and validates every file in dir, indexing results by id.
func loadAll[T any](dir, kind string, id func(*T) string, validate func(*T) error) (map[string]*T, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*T, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		def := new(T)
		if err := decodeStrict(data, def); err != nil {
			return nil, fmt.Errorf("parsing %s file %q: %w", kind, path, err)
		}
		if err := validate(def); err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		key := id(def)
		if _, dup := out[key]; dup {
			return nil, fmt.Errorf("loading %q: duplicate %s id %q", path, kind, key)
		}
		out[key] = def
	}
	return out, nil
}

// LoadDir reads the characters, enemies, and encounters subdirectories of dir.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns a Library whose every definition passed Validate, or
// an error naming the first offending file.
func LoadDir(dir string) (*Library, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("content dir %q: %w", dir, err)
	}
	chars, err := loadAll(filepath.Join(dir, CharactersDir), "character",
		func(c *CharacterDef) string { return c.ID }, (*CharacterDef).Validate)
	if err != nil {
		return nil, err
	}
	enemies, err := loadAll(filepath.Join(dir, EnemiesDir), "enemy",
		func(e *EnemyDef) string { return e.ID }, (*EnemyDef).Validate)
	if err != nil {
		return nil, err
	}
	encounters, err := loadAll(filepath.Join(dir, EncountersDir), "encounter",
		func(e *EncounterDef) string { return e.ID }, (*EncounterDef).Validate)
	if err != nil {
		return nil, err
	}
	return &Library{Characters: chars, Enemies: enemies, Encounters: encounters}, nil
}

// EncounterIDs returns the encounter ids in sorted order.
func (l *Library) EncounterIDs() []string {
	ids := make([]string, 0, len(l.Encounters))
	for id := range l.Encounters {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
