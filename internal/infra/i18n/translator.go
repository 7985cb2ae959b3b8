package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed locales
var LocalesFS embed.FS

// Translator resolves user-facing message keys for one locale and carries
// the assistant persona (system prompt) for the same locale.
type Translator struct {
	translations map[string]string
	personaText  string
}

// NewTranslator loads locales/<langCode>.yaml and locales/persona-<langCode>.txt
// from the given filesystem. Accepting fs.FS keeps it testable.
func NewTranslator(fsys fs.FS, langCode string) (*Translator, error) {
	filePath := filepath.Join("locales", fmt.Sprintf("%s.yaml", langCode))

	data, err := fs.ReadFile(fsys, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read translation file %s: %w", filePath, err)
	}

	var translations map[string]string
	if err := yaml.Unmarshal(data, &translations); err != nil {
		return nil, fmt.Errorf("failed to parse translation file: %w", err)
	}

	personaPath := filepath.Join("locales", fmt.Sprintf("persona-%s.txt", langCode))
	personaBytes, err := fs.ReadFile(fsys, personaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read persona file %s: %w", personaPath, err)
	}

	return &Translator{
		translations: translations,
		personaText:  string(personaBytes),
	}, nil
}

// T translates a message key, formatting with args when provided. Unknown
// keys fall back to the key itself.
func (t *Translator) T(key string, args ...interface{}) string {
	format, ok := t.translations[key]
	if !ok {
		return key
	}
	if len(args) > 0 {
		return fmt.Sprintf(format, args...)
	}
	return format
}

// Persona returns the system prompt for this locale.
func (t *Translator) Persona() string {
	return t.personaText
}
