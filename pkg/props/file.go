// SPDX-License-Identifier: MPL-2.0

package props

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/magiconair/properties"
	"github.com/pelletier/go-toml/v2"
)

// TOMLExt is the file extension that selects the TOML reader in LoadFile.
const TOMLExt = ".toml"

// LoadFile reads a property file. Files ending in ".toml" are decoded as TOML with
// nested tables flattened into dotted keys; every other file is read as a Java-style
// ".properties" file (UTF-8, no ${...} expansion).
func LoadFile(path string) (Set, error) {
	if strings.EqualFold(filepath.Ext(path), TOMLExt) {
		return loadTOML(path)
	}

	loader := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	p, err := loader.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read properties file: %w", err)
	}
	return New(p.Map()), nil
}

// Write serializes the set in ".properties" format with keys in lexical order.
func Write(w io.Writer, s Set) error {
	p := properties.NewProperties()
	p.DisableExpansion = true
	p.WriteSeparator = "="
	for _, k := range s.Keys() {
		if _, _, err := p.Set(k, s[k]); err != nil {
			return fmt.Errorf("failed to set property %q: %w", k, err)
		}
	}
	if _, err := p.Write(w, properties.UTF8); err != nil {
		return fmt.Errorf("failed to write properties: %w", err)
	}
	return nil
}

func loadTOML(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read TOML file: %w", err)
	}

	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse TOML file: %w", err)
	}

	s := make(Set)
	flatten(s, "", doc)
	return s, nil
}

// flatten walks decoded TOML tables. Arrays become comma-joined list values so
// they read back through List.
func flatten(dst Set, prefix string, table map[string]any) {
	for k, v := range table {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(dst, key, val)
		case []any:
			items := make([]string, 0, len(val))
			for _, item := range val {
				items = append(items, fmt.Sprint(item))
			}
			dst[key] = strings.Join(items, ",")
		default:
			dst[key] = fmt.Sprint(val)
		}
	}
}
