// Package colors holds the terminal palette: the fixed title, text and
// archived colors, and the language → color table used by language bars.
package colors

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// Fixed palette.
const (
	Title    = "#068FFF"
	Text     = "#EEEEEE"
	Archived = "#F48024"

	// Fallback is used for languages missing from the table, including the
	// synthetic "Other" bucket.
	Fallback = Text
)

//go:embed languages.yaml
var languagesYAML []byte

var (
	loadOnce sync.Once
	byName   map[string]string
	byFold   map[string]string
	loadErr  error
)

func load() {
	var raw map[string]string
	if err := yaml.Unmarshal(languagesYAML, &raw); err != nil {
		loadErr = fmt.Errorf("parse language colors: %w", err)
		return
	}
	byName = make(map[string]string, len(raw))
	byFold = make(map[string]string, len(raw))
	for name, hex := range raw {
		c, err := colorful.Hex(hex)
		if err != nil {
			loadErr = fmt.Errorf("language %q: %w", name, err)
			return
		}
		hex = c.Hex()
		byName[name] = hex
		byFold[strings.ToLower(name)] = hex
	}
}

// Lookup returns the "#rrggbb" color of a language. Exact names win over
// case-insensitive matches; unknown languages get [Fallback].
func Lookup(language string) string {
	loadOnce.Do(load)
	if loadErr != nil {
		return Fallback
	}
	if hex, ok := byName[language]; ok {
		return hex
	}
	if hex, ok := byFold[strings.ToLower(language)]; ok {
		return hex
	}
	return Fallback
}

// Table returns a copy of the language table.
func Table() (map[string]string, error) {
	loadOnce.Do(load)
	if loadErr != nil {
		return nil, loadErr
	}
	out := make(map[string]string, len(byName))
	for k, v := range byName {
		out[k] = v
	}
	return out, nil
}
