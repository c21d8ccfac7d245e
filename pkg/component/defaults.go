package component

// ---------------------------------------------------------------------------
// Shared groups
// ---------------------------------------------------------------------------

func spacingDefaults() Properties {
	return Properties{
		"marginTop":     ResponsiveNumber(0, 0, 0),
		"marginRight":   ResponsiveNumber(0, 0, 0),
		"marginBottom":  ResponsiveNumber(16, 12, 12),
		"marginLeft":    ResponsiveNumber(0, 0, 0),
		"paddingTop":    ResponsiveNumber(0, 0, 0),
		"paddingRight":  ResponsiveNumber(0, 0, 0),
		"paddingBottom": ResponsiveNumber(0, 0, 0),
		"paddingLeft":   ResponsiveNumber(0, 0, 0),
	}
}

func typographyDefaults() Properties {
	return Properties{
		"color":      ResponsiveString("#F1F5F9", "#F1F5F9", "#F1F5F9"),
		"fontWeight": ResponsiveString("normal", "normal", "normal"),
		"textAlign":  ResponsiveString("left", "left", "left"),
	}
}

func layoutDefaults() Properties {
	return Properties{
		"flexGrow": ResponsiveNumber(0, 0, 0),
	}
}

// compose merges property sets left to right; later sets win.
func compose(sets ...Properties) Properties {
	out := make(Properties)
	for _, s := range sets {
		out.Merge(s)
	}
	return out
}

// containerDefaults is the base shared by FlexContainer and Card.
func containerDefaults() Properties {
	return compose(spacingDefaults(), layoutDefaults(), Properties{
		"paddingTop":      ResponsiveNumber(24, 20, 16),
		"paddingBottom":   ResponsiveNumber(24, 20, 16),
		"paddingLeft":     ResponsiveNumber(24, 20, 16),
		"paddingRight":    ResponsiveNumber(24, 20, 16),
		"display":         String("flex"),
		"gridColumns":     ResponsiveNumber(2, 2, 1),
		"flexDirection":   ResponsiveString("column", "column", "column"),
		"justifyContent":  ResponsiveString("flex-start", "flex-start", "flex-start"),
		"alignItems":      ResponsiveString("stretch", "stretch", "stretch"),
		"gap":             ResponsiveNumber(16, 12, 12),
		"backgroundColor": ResponsiveString("#33415520", "#33415520", "#33415520"),
		"borderRadius":    ResponsiveNumber(8, 8, 8),
		"width":           ResponsiveString("100%", "100%", "100%"),
		"height":          ResponsiveString("auto", "auto", "auto"),
	})
}

// ---------------------------------------------------------------------------
// Per-kind constructors
// ---------------------------------------------------------------------------

// HeaderDefaults returns the initial properties of a Header.
func HeaderDefaults() Properties {
	return compose(spacingDefaults(), typographyDefaults(), layoutDefaults(), Properties{
		"text":       String("Main Heading"),
		"level":      String("h1"),
		"fontSize":   ResponsiveNumber(36, 30, 24),
		"fontWeight": ResponsiveString("bold", "bold", "bold"),
	})
}

// TextDefaults returns the initial properties of a Text block.
func TextDefaults() Properties {
	return compose(spacingDefaults(), typographyDefaults(), layoutDefaults(), Properties{
		"text":     String("This is a paragraph of text. You can edit it in the properties panel on the right."),
		"fontSize": ResponsiveNumber(16, 15, 14),
	})
}

// ImageDefaults returns the initial properties of an Image.
func ImageDefaults() Properties {
	return compose(spacingDefaults(), layoutDefaults(), Properties{
		"src":             String(""),
		"alt":             String("Mountain landscape"),
		"width":           ResponsiveString("100%", "100%", "100%"),
		"height":          ResponsiveString("auto", "auto", "auto"),
		"borderRadius":    ResponsiveNumber(8, 8, 8),
		"backgroundColor": ResponsiveString("transparent", "transparent", "transparent"),
	})
}

// ButtonDefaults returns the initial properties of a Button.
func ButtonDefaults() Properties {
	return compose(spacingDefaults(), typographyDefaults(), layoutDefaults(), Properties{
		"paddingTop":      ResponsiveNumber(10, 10, 12),
		"paddingBottom":   ResponsiveNumber(10, 10, 12),
		"paddingLeft":     ResponsiveNumber(20, 20, 20),
		"paddingRight":    ResponsiveNumber(20, 20, 20),
		"text":            String("Click Here"),
		"fontSize":        ResponsiveNumber(14, 14, 14),
		"fontWeight":      ResponsiveString("bold", "bold", "bold"),
		"backgroundColor": ResponsiveString("#22D3EE", "#22D3EE", "#22D3EE"),
		"color":           ResponsiveString("#0F172A", "#0F172A", "#0F172A"),
		"borderRadius":    ResponsiveNumber(6, 6, 6),
		"width":           ResponsiveString("auto", "auto", "auto"),
		"height":          ResponsiveString("auto", "auto", "auto"),
	})
}

// InputDefaults returns the initial properties of an Input field.
func InputDefaults() Properties {
	return compose(spacingDefaults(), layoutDefaults(), Properties{
		"type":        String("text"),
		"placeholder": String("Enter your name"),
		"label":       String("Name"),
		"width":       ResponsiveString("100%", "100%", "100%"),
		"height":      ResponsiveString("auto", "auto", "auto"),
	})
}

// FlexContainerDefaults returns the initial properties of a FlexContainer.
func FlexContainerDefaults() Properties {
	return containerDefaults()
}

// CardDefaults returns the initial properties of a Card: the container base
// with roomier padding and a surface background.
func CardDefaults() Properties {
	return compose(containerDefaults(), Properties{
		"paddingTop":      ResponsiveNumber(32, 24, 20),
		"paddingBottom":   ResponsiveNumber(32, 24, 20),
		"paddingLeft":     ResponsiveNumber(32, 24, 20),
		"paddingRight":    ResponsiveNumber(32, 24, 20),
		"backgroundColor": ResponsiveString("#1E293B", "#1E293B", "#1E293B"),
	})
}

// DividerDefaults returns the initial properties of a Divider.
func DividerDefaults() Properties {
	return compose(spacingDefaults(), layoutDefaults(), Properties{
		"marginTop":    ResponsiveNumber(24, 20, 20),
		"marginBottom": ResponsiveNumber(24, 20, 20),
		"height":       ResponsiveNumber(1, 1, 1),
		"color":        ResponsiveString("#334155", "#334155", "#334155"),
	})
}

// Defaults returns a fresh copy of the initial properties for a kind. Unknown
// kinds get an empty map.
func Defaults(k Kind) Properties {
	switch k {
	case KindHeader:
		return HeaderDefaults()
	case KindText:
		return TextDefaults()
	case KindImage:
		return ImageDefaults()
	case KindButton:
		return ButtonDefaults()
	case KindInput:
		return InputDefaults()
	case KindFlexContainer:
		return FlexContainerDefaults()
	case KindCard:
		return CardDefaults()
	case KindDivider:
		return DividerDefaults()
	default:
		return Properties{}
	}
}
