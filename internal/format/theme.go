package format

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
)

// A Theme names the colours used for each part of the output.  Each colour
// is either a name such as "green", "dim-white" or "bright-blue", or a list
// of SGR parameters such as "38;5;208".  An empty colour leaves that part
// uncoloured.
type Theme struct {
	Key         string `yaml:"key"`
	String      string `yaml:"string"`
	Number      string `yaml:"number"`
	Boolean     string `yaml:"boolean"`
	Null        string `yaml:"null"`
	Punctuation string `yaml:"punctuation"`
}

// DefaultTheme matches DefaultColorizer.
var DefaultTheme = Theme{
	Key:     "bright-blue",
	String:  "green",
	Number:  "white",
	Boolean: "yellow",
	Null:    "dim-white",
}

// ParseTheme reads a YAML theme.  Parts missing from the document keep the
// colour of DefaultTheme.
func ParseTheme(data []byte) (Theme, error) {
	theme := DefaultTheme
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return Theme{}, fmt.Errorf("invalid theme: %w", err)
	}
	return theme, nil
}

// LoadTheme reads a YAML theme file.
func LoadTheme(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, err
	}
	return ParseTheme(data)
}

// Colorizer builds a Colorizer from the theme.
func (t Theme) Colorizer() (*Colorizer, error) {
	c := &Colorizer{ResetCode: Reset}
	var err error
	set := func(dst *[]byte, part, name string) {
		if err != nil {
			return
		}
		*dst, err = colorCode(name)
		if err != nil {
			err = fmt.Errorf("theme %s: %w", part, err)
		}
	}
	set(&c.KeyColorCode, "key", t.Key)
	set(&c.ScalarColorCodes[StringClass], "string", t.String)
	set(&c.ScalarColorCodes[NumberClass], "number", t.Number)
	set(&c.ScalarColorCodes[BooleanClass], "boolean", t.Boolean)
	set(&c.ScalarColorCodes[NullClass], "null", t.Null)
	set(&c.PunctuationColorCode, "punctuation", t.Punctuation)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func colorCode(name string) ([]byte, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "none" {
		return nil, nil
	}
	if code, ok := colorNames[name]; ok {
		return code, nil
	}
	if strings.Trim(name, "0123456789;") == "" {
		return []byte("\033[" + name + "m"), nil
	}
	return nil, fmt.Errorf("unknown color %q", name)
}
