package component

// Group is a named set of style properties shared by several kinds.
type Group int

const (
	GroupSpacing Group = iota
	GroupDimension
	GroupTypography
	GroupAppearance
	GroupLayout
	GroupContainer
)

func (g Group) String() string {
	switch g {
	case GroupSpacing:
		return "spacing"
	case GroupDimension:
		return "dimension"
	case GroupTypography:
		return "typography"
	case GroupAppearance:
		return "appearance"
	case GroupLayout:
		return "layout"
	case GroupContainer:
		return "container"
	default:
		return "unknown"
	}
}

// Keys returns the property names belonging to the group, in display order.
func (g Group) Keys() []string {
	switch g {
	case GroupSpacing:
		return []string{
			"marginTop", "marginRight", "marginBottom", "marginLeft",
			"paddingTop", "paddingRight", "paddingBottom", "paddingLeft",
		}
	case GroupDimension:
		return []string{"width", "height"}
	case GroupTypography:
		return []string{"fontSize", "fontWeight", "color", "textAlign"}
	case GroupAppearance:
		return []string{"backgroundColor", "borderRadius"}
	case GroupLayout:
		return []string{"flexGrow"}
	case GroupContainer:
		return []string{"display", "gridColumns", "flexDirection", "justifyContent", "alignItems", "gap"}
	default:
		return nil
	}
}

// Schema describes which properties apply to a kind: a handful of
// kind-specific keys plus the style groups the kind's editors expose.
type Schema struct {
	Kind   Kind
	Own    []string
	Groups []Group
}

// SchemaFor returns the property schema of a kind. Unknown kinds get an empty
// schema.
func SchemaFor(k Kind) Schema {
	switch k {
	case KindHeader:
		return Schema{Kind: k, Own: []string{"text", "level"},
			Groups: []Group{GroupSpacing, GroupTypography, GroupLayout}}
	case KindText:
		return Schema{Kind: k, Own: []string{"text"},
			Groups: []Group{GroupSpacing, GroupTypography, GroupLayout}}
	case KindImage:
		return Schema{Kind: k, Own: []string{"src", "alt"},
			Groups: []Group{GroupSpacing, GroupDimension, GroupAppearance, GroupLayout}}
	case KindButton:
		return Schema{Kind: k, Own: []string{"text"},
			Groups: []Group{GroupSpacing, GroupDimension, GroupTypography, GroupAppearance, GroupLayout}}
	case KindInput:
		return Schema{Kind: k, Own: []string{"type", "placeholder", "label"},
			Groups: []Group{GroupSpacing, GroupDimension, GroupLayout}}
	case KindFlexContainer, KindCard:
		return Schema{Kind: k,
			Groups: []Group{GroupContainer, GroupSpacing, GroupDimension, GroupAppearance, GroupLayout}}
	case KindDivider:
		// height is the rule thickness, color the rule color.
		return Schema{Kind: k, Own: []string{"color", "height"},
			Groups: []Group{GroupSpacing, GroupLayout}}
	default:
		return Schema{Kind: k}
	}
}

// Keys returns every property name the schema admits, own keys first.
func (s Schema) Keys() []string {
	seen := make(map[string]bool)
	var keys []string
	add := func(k string) {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	for _, k := range s.Own {
		add(k)
	}
	for _, g := range s.Groups {
		for _, k := range g.Keys() {
			add(k)
		}
	}
	return keys
}

// Allows reports whether key is a recognized property for the kind.
func (s Schema) Allows(key string) bool {
	for _, k := range s.Own {
		if k == key {
			return true
		}
	}
	for _, g := range s.Groups {
		for _, k := range g.Keys() {
			if k == key {
				return true
			}
		}
	}
	return false
}
