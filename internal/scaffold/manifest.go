package scaffold

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Pair is one key of an ordered JSON object.
type Pair struct {
	Key   string
	Value string
}

// Pairs is a string-valued JSON object that keeps its key order.
type Pairs []Pair

// Set replaces the value for key in place, or appends it.
func (ps Pairs) Set(key, value string) Pairs {
	for i := range ps {
		if ps[i].Key == key {
			out := append(Pairs(nil), ps...)
			out[i].Value = value
			return out
		}
	}
	return append(append(Pairs(nil), ps...), Pair{Key: key, Value: value})
}

// Get returns the value for key.
func (ps Pairs) Get(key string) (string, bool) {
	for _, p := range ps {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Sorted returns a copy ordered by key, the way npm writes dependency maps.
func (ps Pairs) Sorted() Pairs {
	out := append(Pairs(nil), ps...)
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// MarshalJSON writes the pairs as an object in slice order.
func (ps Pairs) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range ps {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := marshalNoEscape(p.Key)
		if err != nil {
			return nil, err
		}
		v, err := marshalNoEscape(p.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Manifest models package.json. Field order is the order written to disk.
type Manifest struct {
	Name            string   `json:"name"`
	Version         string   `json:"version"`
	Description     string   `json:"description"`
	Main            string   `json:"main"`
	Scripts         Pairs    `json:"scripts"`
	Keywords        []string `json:"keywords"`
	Author          string   `json:"author"`
	License         string   `json:"license"`
	Dependencies    Pairs    `json:"dependencies"`
	DevDependencies Pairs    `json:"devDependencies"`
}

func (m Manifest) clone() Manifest {
	c := m
	c.Scripts = append(Pairs(nil), m.Scripts...)
	c.Keywords = append([]string(nil), m.Keywords...)
	c.Dependencies = append(Pairs(nil), m.Dependencies...)
	c.DevDependencies = append(Pairs(nil), m.DevDependencies...)
	return c
}

// Render encodes the manifest as indented package.json text. Dependency maps
// are written sorted by name.
func (m Manifest) Render() (string, error) {
	out := m.clone()
	out.Dependencies = out.Dependencies.Sorted()
	out.DevDependencies = out.DevDependencies.Sorted()
	if out.Keywords == nil {
		out.Keywords = []string{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// renderJSON encodes v as indented JSON with a trailing newline.
func renderJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func marshalNoEscape(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
