package deck

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/arcanaland/cardsheet/internal/card"
)

// Extensions lists the deck file formats LoadDeck understands
var Extensions = []string{".json", ".toml", ".yaml", ".yml"}

// Deck represents a deck file: an ordered list of card definitions
type Deck struct {
	ID    string // File name, e.g. core.json
	Path  string
	Types card.TypeSet // Declared card types, empty when the file declares none
	Cards []card.Definition
}

// LoadDeck loads a deck from a file
func LoadDeck(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &card.InputShapeError{Source: path, Index: -1, Reason: "deck file not found"}
		}
		return nil, fmt.Errorf("error reading deck: %w", err)
	}

	d, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, withSource(err, path)
	}
	d.ID = filepath.Base(path)
	d.Path = path
	return d, nil
}

// IsDeckFile reports whether name has a deck file extension
func IsDeckFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Parse decodes deck data. ext selects the format and includes the dot.
func Parse(data []byte, ext string) (*Deck, error) {
	var raw any
	switch strings.ToLower(ext) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, &card.InputShapeError{Index: -1, Reason: fmt.Sprintf("invalid JSON: %v", err)}
		}
	case ".toml":
		var doc map[string]any
		if _, err := toml.Decode(string(data), &doc); err != nil {
			return nil, &card.InputShapeError{Index: -1, Reason: fmt.Sprintf("invalid TOML: %v", err)}
		}
		raw = doc
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, &card.InputShapeError{Index: -1, Reason: fmt.Sprintf("invalid YAML: %v", err)}
		}
	default:
		return nil, &card.InputShapeError{Index: -1, Reason: fmt.Sprintf("unsupported deck format %q", ext)}
	}

	return fromRaw(raw)
}

// fromRaw accepts either a bare list of cards or a document with a
// cards list and an optional types list.
func fromRaw(raw any) (*Deck, error) {
	d := &Deck{}

	var list any
	switch v := raw.(type) {
	case []any:
		list = v
	case []map[string]any:
		list = v
	case map[string]any:
		c, ok := v["cards"]
		if !ok {
			return nil, &card.InputShapeError{Index: -1, Reason: "no cards list"}
		}
		list = c
		if t, ok := v["types"]; ok {
			types, err := stringList(t)
			if err != nil {
				return nil, &card.InputShapeError{Index: -1, Reason: "types: " + err.Error()}
			}
			d.Types = card.NewTypeSet(types...)
		}
	case nil:
		return nil, &card.InputShapeError{Index: -1, Reason: "deck is empty"}
	default:
		return nil, &card.InputShapeError{Index: -1, Reason: fmt.Sprintf("expected a list of cards, got %T", raw)}
	}

	entries, err := objectList(list)
	if err != nil {
		return nil, err
	}

	for i, entry := range entries {
		def, err := definition(i, entry)
		if err != nil {
			return nil, err
		}
		d.Cards = append(d.Cards, def)
	}
	return d, nil
}

func objectList(list any) ([]map[string]any, error) {
	switch v := list.(type) {
	case []map[string]any:
		return v, nil
	case []any:
		out := make([]map[string]any, len(v))
		for i, e := range v {
			m, ok := e.(map[string]any)
			if !ok {
				return nil, &card.InputShapeError{Index: i, Reason: fmt.Sprintf("card is not an object, got %T", e)}
			}
			out[i] = m
		}
		return out, nil
	default:
		return nil, &card.InputShapeError{Index: -1, Reason: fmt.Sprintf("cards is not a list, got %T", list)}
	}
}

func definition(i int, entry map[string]any) (card.Definition, error) {
	def := card.Definition{Fields: make(map[string]any, len(entry))}

	typ, ok := entry["type"].(string)
	if !ok || typ == "" {
		return def, &card.InputShapeError{Index: i, Reason: "card has no type"}
	}
	def.Type = typ

	if c, ok := entry["count"]; ok && c != nil {
		n, err := toInt(c)
		if err != nil {
			return def, &card.InputShapeError{Index: i, Reason: "count: " + err.Error()}
		}
		def.Count = n
	}

	if desc, ok := entry["description"]; ok && desc != nil {
		s, ok := desc.(string)
		if !ok {
			return def, &card.InputShapeError{Index: i, Reason: fmt.Sprintf("description is not text, got %T", desc)}
		}
		def.Description = s
	}

	keys := make([]string, 0, len(entry))
	for k := range entry {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		switch k {
		case "type", "count", "description":
			continue
		}
		def.Fields[k] = normalize(entry[k])
	}
	return def, nil
}

// normalize turns decoder-specific values into plain Go values templates
// can render.
func normalize(v any) any {
	switch vv := v.(type) {
	case json.Number:
		if n, err := vv.Int64(); err == nil {
			return int(n)
		}
		f, _ := vv.Float64()
		return f
	case int64:
		return int(vv)
	case map[string]any:
		out := make(map[string]any, len(vv))
		for k, e := range vv {
			out[k] = normalize(e)
		}
		return out
	case []map[string]any:
		out := make([]any, len(vv))
		for i, e := range vv {
			out[i] = normalize(e)
		}
		return out
	case []any:
		out := make([]any, len(vv))
		for i, e := range vv {
			out[i] = normalize(e)
		}
		return out
	default:
		return v
	}
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("not an integer: %s", n)
		}
		return int(i), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("not an integer: %v", n)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("not a number: %T", v)
	}
}

func stringList(v any) ([]string, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a list, got %T", v)
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("expected text, got %T", item)
		}
		out = append(out, s)
	}
	return out, nil
}

func withSource(err error, path string) error {
	if shapeErr, ok := err.(*card.InputShapeError); ok {
		shapeErr.Source = path
		return shapeErr
	}
	return err
}
