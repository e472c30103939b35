// internal/i18n/i18n.go
package i18n

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const defaultLang = "en"

var supportedLangs = []string{"en", "zh_TW"}

type catalog struct {
	mu           sync.RWMutex
	translations map[string]map[string]string
}

var instance *catalog
var once sync.Once

// Initialize loads every supported locale from localesPath (the bundled
// locales when empty). Safe to call more than once; only the first call
// does the work.
func Initialize(localesPath string) error {
	if localesPath == "" {
		localesPath = "./internal/i18n/locales"
	}
	var err error
	once.Do(func() {
		instance = &catalog{translations: make(map[string]map[string]string)}
		err = instance.load(localesPath)
	})
	return err
}

func (c *catalog) load(localesPath string) error {
	for _, lang := range supportedLangs {
		path := filepath.Join(localesPath, lang+".json")
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read locale file %s: %w", path, err)
		}

		var messages map[string]string
		if err := json.Unmarshal(data, &messages); err != nil {
			return fmt.Errorf("failed to parse locale file %s: %w", path, err)
		}

		c.mu.Lock()
		c.translations[lang] = messages
		c.mu.Unlock()
	}
	return nil
}

func (c *catalog) lookup(lang, key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if messages, ok := c.translations[lang]; ok {
		if text, ok := messages[key]; ok {
			return text, true
		}
	}
	return "", false
}

// T resolves a message key for the requested language, falling back to
// English and finally to the key itself.
func T(lang, key string, args ...interface{}) string {
	if instance == nil {
		return key
	}

	text, ok := instance.lookup(lang, key)
	if !ok && lang != defaultLang {
		text, ok = instance.lookup(defaultLang, key)
	}
	if !ok {
		return key
	}

	if len(args) > 0 {
		return fmt.Sprintf(text, args...)
	}
	return text
}

func GetSupportedLanguages() []string {
	langs := make([]string, len(supportedLangs))
	copy(langs, supportedLangs)
	return langs
}
