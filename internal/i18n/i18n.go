package i18n

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

const (
	LangRU = "ru"
	LangEN = "en"
)

// Manager holds flat key/value catalogs, one JSON file per language.
type Manager struct {
	defaultLanguage string
	catalogs        map[string]map[string]string
	supported       []string
	matcher         language.Matcher
}

func NewManager(defaultLanguage string, localesDir string) (*Manager, error) {
	return NewManagerFS(defaultLanguage, os.DirFS(localesDir))
}

func NewManagerFS(defaultLanguage string, locales fs.FS) (*Manager, error) {
	manager := &Manager{catalogs: map[string]map[string]string{}}

	entries, err := fs.ReadDir(locales, ".")
	if err != nil {
		return nil, fmt.Errorf("read locales dir: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".json" {
			continue
		}

		lang := strings.ToLower(strings.TrimSuffix(entry.Name(), path.Ext(entry.Name())))
		content, err := fs.ReadFile(locales, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", lang, err)
		}

		messages := map[string]string{}
		if err := json.Unmarshal(content, &messages); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", lang, err)
		}
		if len(messages) == 0 {
			return nil, fmt.Errorf("locale %s is empty", lang)
		}

		manager.catalogs[lang] = messages
		manager.supported = append(manager.supported, lang)
	}

	for _, required := range []string{LangRU, LangEN} {
		if _, ok := manager.catalogs[required]; !ok {
			return nil, fmt.Errorf("required locale %q missing", required)
		}
	}

	slices.Sort(manager.supported)
	manager.defaultLanguage = LangRU
	manager.defaultLanguage = manager.NormalizeLanguage(defaultLanguage)

	// The matcher falls back to its first tag, so the default goes first.
	tags := []language.Tag{language.Make(manager.defaultLanguage)}
	for _, lang := range manager.supported {
		if lang != manager.defaultLanguage {
			tags = append(tags, language.Make(lang))
		}
	}
	manager.matcher = language.NewMatcher(tags)
	return manager, nil
}

func (manager *Manager) DefaultLanguage() string {
	return manager.defaultLanguage
}

func (manager *Manager) SupportedLanguages() []string {
	return slices.Clone(manager.supported)
}

// NormalizeLanguage reduces a tag like "en-US" to a supported base language,
// or the default language.
func (manager *Manager) NormalizeLanguage(raw string) string {
	tag, err := language.Parse(strings.TrimSpace(raw))
	if err != nil {
		return manager.defaultLanguage
	}
	base, _ := tag.Base()
	if _, ok := manager.catalogs[base.String()]; ok {
		return base.String()
	}
	return manager.defaultLanguage
}

func (manager *Manager) DetectFromAcceptLanguage(raw string) string {
	tags, _, err := language.ParseAcceptLanguage(raw)
	if err != nil || len(tags) == 0 {
		return manager.defaultLanguage
	}
	matched, _, confidence := manager.matcher.Match(tags...)
	if confidence == language.No {
		return manager.defaultLanguage
	}
	return manager.NormalizeLanguage(matched.String())
}

// Messages returns the catalog of lang layered over the default catalog, so
// a key missing in lang still resolves.
func (manager *Manager) Messages(lang string) map[string]string {
	defaultMessages := manager.catalogs[manager.defaultLanguage]
	targetMessages := manager.catalogs[manager.NormalizeLanguage(lang)]

	result := make(map[string]string, len(defaultMessages)+len(targetMessages))
	for key, value := range defaultMessages {
		result[key] = value
	}
	for key, value := range targetMessages {
		result[key] = value
	}
	return result
}

func (manager *Manager) Translate(lang string, key string) string {
	if value, ok := manager.Messages(lang)[key]; ok && strings.TrimSpace(value) != "" {
		return value
	}
	return key
}

func (manager *Manager) Translatef(lang string, key string, args ...any) string {
	return fmt.Sprintf(manager.Translate(lang, key), args...)
}
