// Package i18n provides the localized strings shown by the menu: hints,
// countdown text, tool titles and generated sub-screen labels.
package i18n

import (
	"embed"
	"fmt"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var locales embed.FS

var (
	bundleOnce sync.Once
	bundle     *i18n.Bundle
	bundleErr  error
)

func loadBundle() (*i18n.Bundle, error) {
	bundleOnce.Do(func() {
		b := i18n.NewBundle(language.English)
		b.RegisterUnmarshalFunc("toml", toml.Unmarshal)
		entries, err := locales.ReadDir("locales")
		if err != nil {
			bundleErr = err
			return
		}
		for _, entry := range entries {
			if _, err := b.LoadMessageFileFS(locales, "locales/"+entry.Name()); err != nil {
				bundleErr = fmt.Errorf("load %s: %w", entry.Name(), err)
				return
			}
		}
		bundle = b
	})
	return bundle, bundleErr
}

// Catalog localizes message IDs for one language, falling back to English.
type Catalog struct {
	tag       language.Tag
	localizer *i18n.Localizer
}

// New returns a catalog for the BCP 47 language code. An empty code selects
// English.
func New(code string) (*Catalog, error) {
	tag := language.English
	if code != "" {
		parsed, err := language.Parse(code)
		if err != nil {
			return nil, fmt.Errorf("language %q: %w", code, err)
		}
		tag = parsed
	}
	b, err := loadBundle()
	if err != nil {
		return nil, err
	}
	return &Catalog{
		tag:       tag,
		localizer: i18n.NewLocalizer(b, tag.String(), language.English.String()),
	}, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the English catalog.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := New("")
		if err != nil {
			c = &Catalog{tag: language.English}
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Language reports the catalog's language.
func (c *Catalog) Language() language.Tag {
	if c == nil {
		return language.English
	}
	return c.tag
}

// Text returns the message for id, or id itself when it is unknown.
func (c *Catalog) Text(id string) string {
	return c.Format(id, nil)
}

// Format renders the message template for id with data.
func (c *Catalog) Format(id string, data map[string]interface{}) string {
	if c == nil || c.localizer == nil {
		return id
	}
	msg, err := c.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil && msg == "" {
		return id
	}
	return msg
}

// Timeout renders the countdown line, e.g. "Boot in 5 seconds".
func (c *Catalog) Timeout(text string, seconds int) string {
	return c.Format("Timeout", map[string]interface{}{"Text": text, "Seconds": seconds})
}
