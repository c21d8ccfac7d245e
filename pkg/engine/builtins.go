package engine

import (
	"fmt"
	"strings"

	"github.com/chazu/uiforge/pkg/component"
	"github.com/chazu/uiforge/pkg/debug"
	"github.com/chazu/uiforge/pkg/tree"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms layout script source before passing it to
// zygomys. It performs three transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: flex-container -> flex_container
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator).
//
//  3. Comments: ; and ;; line comments become // comments.
//
// All transformations respect string literal boundaries.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				result = append(result, '"')
				result = append(result, kwPrefix...)
				result = append(result, b[i+1:j]...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Only when the hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// camelCase turns a kebab-case keyword into a property name:
// font-size -> fontSize. Names without hyphens pass through unchanged.
func camelCase(kw string) string {
	parts := strings.Split(kw, "-")
	var b strings.Builder
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpComponent is a detached component description built by a kind builtin.
// Nothing enters the Store until it is mounted, so one description can be
// mounted more than once.
type sexpComponent struct {
	kind     component.Kind
	props    component.Properties // overrides applied over the kind's defaults
	children []*sexpComponent
}

func (c *sexpComponent) SexpString(ps *zygo.PrintState) string {
	if len(c.children) > 0 {
		return fmt.Sprintf("(%s +%d props, %d children)", c.kind, len(c.props), len(c.children))
	}
	return fmt.Sprintf("(%s +%d props)", c.kind, len(c.props))
}
func (c *sexpComponent) Type() *zygo.RegisteredType { return nil }

// count returns the number of components in the description.
func (c *sexpComponent) count() int {
	n := 1
	for _, ch := range c.children {
		n += ch.count()
	}
	return n
}

// sexpResponsive wraps a component.Responsive built by `responsive`.
type sexpResponsive struct {
	val component.Responsive
}

func (r *sexpResponsive) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(responsive %s %s %s)", r.val.Desktop, r.val.Tablet, r.val.Mobile)
}
func (r *sexpResponsive) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
// order records keyword names as they appeared.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	order      []string
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if !ok {
			result.positional = append(result.positional, args[i])
			i++
			continue
		}
		if _, seen := result.kw[name]; !seen {
			result.order = append(result.order, name)
		}
		if i+1 < len(args) {
			result.kw[name] = args[i+1]
			i += 2
		} else {
			// Keyword at end with no value.
			result.kw[name] = zygo.SexpNull
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_h2) and plain strings ("h2").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

// toScalar converts a number, string or keyword into a scalar value.
func toScalar(s zygo.Sexp) (component.Scalar, error) {
	switch s.(type) {
	case *zygo.SexpInt, *zygo.SexpFloat:
		f, err := toFloat64(s)
		if err != nil {
			return nil, err
		}
		return component.Number(f), nil
	case *zygo.SexpStr:
		str, err := toKeywordString(s)
		if err != nil {
			return nil, err
		}
		return component.String(str), nil
	}
	return nil, fmt.Errorf("expected number, string or keyword, got %T (%s)", s, s.SexpString(nil))
}

// toValue converts a property argument into a Value. A scalar given for a
// property whose default is responsive is spread over all three viewports.
func toValue(k component.Kind, key string, s zygo.Sexp) (component.Value, error) {
	if r, ok := s.(*sexpResponsive); ok {
		return r.val, nil
	}
	sc, err := toScalar(s)
	if err != nil {
		return nil, err
	}
	if _, responsive := component.Defaults(k)[key].(component.Responsive); responsive {
		return component.Uniform(sc), nil
	}
	return sc, nil
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// toComponents collects component descriptions from positional arguments,
// flattening lists and arrays so children can be built with map and friends.
func toComponents(args []zygo.Sexp) ([]*sexpComponent, error) {
	var out []*sexpComponent
	for i, a := range args {
		if c, ok := a.(*sexpComponent); ok {
			out = append(out, c)
			continue
		}
		items, err := sexpListToSlice(a)
		if err != nil {
			return nil, fmt.Errorf("argument %d: expected component, got %T (%s)", i+1, a, a.SexpString(nil))
		}
		nested, err := toComponents(items)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		out = append(out, nested...)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Mounting
// ---------------------------------------------------------------------------

// mount materializes c under parent through the Store's public operations
// and returns the new id.
func mount(s *tree.Store, c *sexpComponent, parent tree.NodeID) (tree.NodeID, error) {
	id := s.Add(c.kind, parent)
	if id.IsZero() {
		return tree.ZeroID, fmt.Errorf("cannot add %s here", c.kind)
	}
	if len(c.props) > 0 {
		s.Update(id, c.props)
	}
	for _, ch := range c.children {
		if _, err := mount(s, ch, id); err != nil {
			return tree.ZeroID, err
		}
	}
	return id, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// builtinName is the zygomys function name for a kind: "flex_container" for
// FlexContainer (written flex-container in scripts).
func builtinName(k component.Kind) string {
	name := k.String()
	var b strings.Builder
	for i, r := range name {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte('_')
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}

// kindBuiltin returns the builtin that describes a component of kind k:
//
//	(header :text "Welcome" :level :h2 :font-size (responsive 48 36 28))
//	(card :padding-top 8 (text :text "inside") (button))
func kindBuiltin(k component.Kind) zygo.ZlispUserFunction {
	return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		label := strings.ReplaceAll(name, "_", "-")
		pa := parseArgs(args)

		c := &sexpComponent{kind: k, props: make(component.Properties, len(pa.order))}
		for _, kw := range pa.order {
			key := camelCase(kw)
			v, err := toValue(k, key, pa.kw[kw])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %s: %w", label, kw, err)
			}
			c.props[key] = v
		}

		if len(pa.positional) > 0 && !k.IsContainer() {
			return zygo.SexpNull, fmt.Errorf("%s: %s cannot contain child components", label, k)
		}
		children, err := toComponents(pa.positional)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: %w", label, err)
		}
		c.children = children
		return c, nil
	}
}

// registerBuiltins installs the layout builtins into a zygomys environment.
// Mounted components are added to s.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, s *tree.Store) {
	for _, k := range component.AllKinds {
		env.AddFunction(builtinName(k), kindBuiltin(k))
	}

	// -----------------------------------------------------------------------
	// (responsive 48 36 28) ; desktop tablet mobile
	// -----------------------------------------------------------------------
	env.AddFunction("responsive", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("responsive requires exactly 3 arguments (desktop tablet mobile), got %d", len(args))
		}
		var vals [3]component.Scalar
		for i, a := range args {
			sc, err := toScalar(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("responsive: %s: %w", component.Viewports[i], err)
			}
			vals[i] = sc
		}
		return &sexpResponsive{val: component.Responsive{Desktop: vals[0], Tablet: vals[1], Mobile: vals[2]}}, nil
	})

	// -----------------------------------------------------------------------
	// (mount (header ...) (flex-container ...))
	// -----------------------------------------------------------------------
	env.AddFunction("mount", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		comps, err := toComponents(args)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("mount: %w", err)
		}
		total := 0
		for _, c := range comps {
			if _, err := mount(s, c, tree.ZeroID); err != nil {
				return zygo.SexpNull, fmt.Errorf("mount: %w", err)
			}
			total += c.count()
		}
		debug.Log("mount: %d roots, %d components", len(comps), total)
		return &zygo.SexpInt{Val: int64(len(comps))}, nil
	})
}
