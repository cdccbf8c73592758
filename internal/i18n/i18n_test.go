package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestDefaultCatalogIsEnglish(t *testing.T) {
	c := Default()
	assert.Equal(t, language.English, c.Language())
	assert.Equal(t, "Main Menu", c.Text("MainTitle"))
	assert.Equal(t, "Boot in 5 seconds", c.Timeout("Boot", 5))
	assert.Equal(t, "Boot Options for Arch on ESP", c.Format("BootOptionsFor", map[string]interface{}{"Title": "Arch", "Volume": "ESP"}))
}

func TestGermanFallsBackToEnglish(t *testing.T) {
	c, err := New("de")
	require.NoError(t, err)
	assert.Equal(t, "Hauptmenü", c.Text("MainTitle"))
	assert.Equal(t, "Start in 3 Sekunden", c.Timeout("Start", 3))
	assert.Equal(t, "Exit bootmenu", c.Text("ToolExit"))
}

func TestUnknownMessageReturnsID(t *testing.T) {
	assert.Equal(t, "NoSuchMessage", Default().Text("NoSuchMessage"))
	var nilCatalog *Catalog
	assert.Equal(t, "MainTitle", nilCatalog.Text("MainTitle"))
}

func TestInvalidLanguage(t *testing.T) {
	_, err := New("not a language!")
	require.Error(t, err)
}
