// Package component defines the component kinds a canvas can hold, their
// responsive property values, the per-kind property schema, and the table of
// default properties every new component starts from.
package component

import "fmt"

// Kind enumerates the closed set of component variants.
type Kind int

const (
	KindHeader Kind = iota
	KindText
	KindImage
	KindButton
	KindInput
	KindFlexContainer // container
	KindCard          // container
	KindDivider
)

// AllKinds lists every kind in palette order.
var AllKinds = []Kind{
	KindHeader,
	KindText,
	KindImage,
	KindButton,
	KindInput,
	KindFlexContainer,
	KindCard,
	KindDivider,
}

func (k Kind) String() string {
	switch k {
	case KindHeader:
		return "Header"
	case KindText:
		return "Text"
	case KindImage:
		return "Image"
	case KindButton:
		return "Button"
	case KindInput:
		return "Input"
	case KindFlexContainer:
		return "FlexContainer"
	case KindCard:
		return "Card"
	case KindDivider:
		return "Divider"
	default:
		return "unknown"
	}
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k >= KindHeader && k <= KindDivider
}

// IsContainer reports whether nodes of this kind own an ordered child list.
func (k Kind) IsContainer() bool {
	return k == KindFlexContainer || k == KindCard
}

// ParseKind maps the wire name of a kind ("Header", "FlexContainer", ...) back
// to its Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range AllKinds {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown component kind %q", s)
}

// MarshalText encodes the kind by name so JSON consumers see "Header" rather
// than an ordinal.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("cannot encode invalid kind %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
