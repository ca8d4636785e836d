// Package text resolves narrative message ids through a gettext catalogue.
package text

import (
	"embed"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path"
	"sort"
	"sync"

	"github.com/leonelquinteros/gotext"
)

// DefaultLanguage is the catalogue shipped with the game.
const DefaultLanguage = "en_GB"

const domain = "default.po"

//go:embed locales
var locales embed.FS

// Catalog is one loaded language.
type Catalog struct {
	Language string
	po       *gotext.Po
}

func parse(lang string, data []byte) *Catalog {
	po := gotext.NewPo()
	po.Parse(data)
	return &Catalog{Language: lang, po: po}
}

// Load reads an embedded language catalogue.
func Load(lang string) (*Catalog, error) {
	data, err := locales.ReadFile(path.Join("locales", lang, domain))
	if err != nil {
		return nil, fmt.Errorf("text: no catalogue for %q: %w", lang, err)
	}
	return parse(lang, data), nil
}

// LoadFile reads a catalogue from disk.
func LoadFile(lang, file string) (*Catalog, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("text: read %s: %w", file, err)
	}
	return parse(lang, data), nil
}

// Languages lists the embedded catalogues.
func Languages() []string {
	entries, err := fs.ReadDir(locales, "locales")
	if err != nil {
		return nil
	}
	var langs []string
	for _, e := range entries {
		if e.IsDir() {
			langs = append(langs, e.Name())
		}
	}
	sort.Strings(langs)
	return langs
}

// Get translates id, formatting args into the result.
func (c *Catalog) Get(id string, args ...any) string {
	return c.po.Get(id, args...)
}

// Has reports whether id has a translation.
func (c *Catalog) Has(id string) bool {
	return c.po.Get(id) != id
}

var (
	mu      sync.RWMutex
	current *Catalog
)

func active() *Catalog {
	mu.RLock()
	c := current
	mu.RUnlock()
	if c != nil {
		return c
	}

	mu.Lock()
	defer mu.Unlock()
	if current == nil {
		var err error
		current, err = Load(DefaultLanguage)
		if err != nil {
			log.Printf("text: %v", err)
			current = parse(DefaultLanguage, nil)
		}
	}
	return current
}

// Use makes c the catalogue behind Get.
func Use(c *Catalog) {
	mu.Lock()
	current = c
	mu.Unlock()
}

// SetLanguage switches to an embedded catalogue, keeping the current one on
// failure.
func SetLanguage(lang string) error {
	c, err := Load(lang)
	if err != nil {
		return err
	}
	Use(c)
	return nil
}

// Get translates id with the active catalogue.
func Get(id string, args ...any) string {
	return active().Get(id, args...)
}
