package lexicon

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/glossa-lang/glossa/internal/files"
)

// fileFormat is the on-disk shape of a lexicon. The version field guards
// future migrations; v1 is a flat sorted lexeme list.
type fileFormat struct {
	Version int      `json:"version"`
	Lexemes []Lexeme `json:"lexemes"`
}

const fileVersion = 1

// Load reads a lexicon file into a cache. A missing file yields an empty
// cache: a conlang's lexicon starts empty and is created on first save.
func Load(path string) (*Cache, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewCache(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading lexicon %s: %w", path, err)
	}

	var f fileFormat
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing lexicon %s: %w", path, err)
	}
	if f.Version != fileVersion {
		return nil, fmt.Errorf("lexicon %s: unsupported version %d", path, f.Version)
	}
	for _, l := range f.Lexemes {
		if l.Lemma == "" || l.Base == "" || !l.Class.Known() {
			return nil, fmt.Errorf("lexicon %s: malformed entry %q#%q -> %q", path, l.Lemma, l.Class, l.Base)
		}
	}
	return NewCache(f.Lexemes...), nil
}

// Save writes the cache to path atomically, so a crash mid-write never
// loses previously committed lexemes.
func Save(c *Cache, path string) error {
	f := fileFormat{Version: fileVersion, Lexemes: c.Lexemes()}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding lexicon: %w", err)
	}
	data = append(data, '\n')
	if err := files.AtomicWrite(path, data, 0o644); err != nil {
		return fmt.Errorf("writing lexicon %s: %w", path, err)
	}
	return nil
}
