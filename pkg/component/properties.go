package component

import (
	"fmt"
	"sort"

	"github.com/goccy/go-json"
)

// Properties maps property names to values.
type Properties map[string]Value

// Clone returns a shallow copy. Values are immutable so a shallow copy is a
// full copy.
func (p Properties) Clone() Properties {
	out := make(Properties, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Merge overwrites p's entries with every key present in patch. Keys absent
// from the patch are left untouched; responsive values are replaced whole.
func (p Properties) Merge(patch Properties) {
	for k, v := range patch {
		p[k] = v
	}
}

// Get returns the value stored under key, or nil.
func (p Properties) Get(key string) Value {
	return p[key]
}

// Keys returns the property names in display order for kind: the kind's
// schema order first, then any extra keys sorted by name.
func (p Properties) Keys(k Kind) []string {
	keys := make([]string, 0, len(p))
	seen := make(map[string]bool, len(p))
	for _, key := range SchemaFor(k).Keys() {
		if _, ok := p[key]; ok {
			keys = append(keys, key)
			seen[key] = true
		}
	}
	var extra []string
	for key := range p {
		if !seen[key] {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	return append(keys, extra...)
}

func (p *Properties) UnmarshalJSON(b []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	props, err := PropertiesFromMap(raw)
	if err != nil {
		return err
	}
	*p = props
	return nil
}

// PropertiesFromMap converts a decoded JSON object (as delivered by the
// frontend bindings) into Properties.
func PropertiesFromMap(m map[string]any) (Properties, error) {
	props := make(Properties, len(m))
	for k, raw := range m {
		v, err := FromAny(raw)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", k, err)
		}
		props[k] = v
	}
	return props, nil
}
