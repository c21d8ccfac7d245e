package engine

import (
	"fmt"
	"strings"
	"testing"

	"github.com/chazu/uiforge/pkg/component"
	"github.com/chazu/uiforge/pkg/tree"
)

// ---------------------------------------------------------------------------
// Preprocessing tests
// ---------------------------------------------------------------------------

func TestPreprocessKeywords(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "simple keyword",
			input:  `(header :text "Hi")`,
			expect: `(header "__kw_text" "Hi")`,
		},
		{
			name:   "multiple keywords",
			input:  `(divider :height 2 :color "#fff")`,
			expect: `(divider "__kw_height" 2 "__kw_color" "#fff")`,
		},
		{
			name:   "keyword in string preserved",
			input:  `"thing with :keyword inside"`,
			expect: `"thing with :keyword inside"`,
		},
		{
			name:   "assignment operator preserved",
			input:  `(def x := 10)`,
			expect: `(def x := 10)`,
		},
		{
			name:   "kebab-case identifier",
			input:  `(flex-container :flex-direction :row)`,
			expect: `(flex_container "__kw_flex-direction" "__kw_row")`,
		},
		{
			name:   "minus operator preserved",
			input:  `(- 10 5)`,
			expect: `(- 10 5)`,
		},
		{
			name:   "negative number preserved",
			input:  `(text :margin-top -4)`,
			expect: `(text "__kw_margin-top" -4)`,
		},
		{
			name:   "comment converted to // style",
			input:  `;; comment with :keyword`,
			expect: `// comment with :keyword`,
		},
		{
			name:   "single semicolon comment",
			input:  `; simple comment`,
			expect: `// simple comment`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := preprocessSource(tt.input)
			if got != tt.expect {
				t.Errorf("preprocessSource(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

func TestCamelCase(t *testing.T) {
	tests := map[string]string{
		"font-size":        "fontSize",
		"text":             "text",
		"background-color": "backgroundColor",
		"fontWeight":       "fontWeight",
		"justify-content":  "justifyContent",
	}
	for in, want := range tests {
		if got := camelCase(in); got != want {
			t.Errorf("camelCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBuiltinNames(t *testing.T) {
	want := map[component.Kind]string{
		component.KindHeader:        "header",
		component.KindFlexContainer: "flex_container",
		component.KindDivider:       "divider",
	}
	for k, name := range want {
		if got := builtinName(k); got != name {
			t.Errorf("builtinName(%v) = %q, want %q", k, got, name)
		}
	}
}

// ---------------------------------------------------------------------------
// Evaluation helpers
// ---------------------------------------------------------------------------

func newSeqEngine() *Engine {
	n := 0
	return NewEngine(WithStoreOptions(tree.WithIDGenerator(func(k component.Kind) tree.NodeID {
		n++
		return tree.NodeID(fmt.Sprintf("%s-%d", k, n))
	})))
}

func mustEvaluate(t *testing.T, source string) *tree.Store {
	t.Helper()
	s, evalErrs, err := newSeqEngine().Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	return s
}

func mustEvalError(t *testing.T, source, substr string) {
	t.Helper()
	s, evalErrs, err := NewEngine().Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if s != nil {
		t.Fatal("expected nil store on eval error")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval errors")
	}
	if !strings.Contains(evalErrs[0].Message, substr) {
		t.Errorf("error %q does not mention %q", evalErrs[0].Message, substr)
	}
}

// ---------------------------------------------------------------------------
// Component builtins
// ---------------------------------------------------------------------------

func TestMountHeaderWithOverrides(t *testing.T) {
	s := mustEvaluate(t, `(mount (header :text "Welcome" :level :h2))`)

	roots := s.Roots()
	if len(roots) != 1 {
		t.Fatalf("expected 1 root, got %d", len(roots))
	}
	n, _ := s.Find(roots[0])
	if n.Kind != component.KindHeader {
		t.Errorf("kind = %v", n.Kind)
	}
	if n.Props["text"] != component.String("Welcome") {
		t.Errorf("text = %v", n.Props["text"])
	}
	if n.Props["level"] != component.String("h2") {
		t.Errorf("level = %v", n.Props["level"])
	}
	if n.Props["fontSize"] != component.ResponsiveNumber(36, 30, 24) {
		t.Errorf("defaults not kept: fontSize = %v", n.Props["fontSize"])
	}
	if _, ok := s.Selected(); ok {
		t.Error("evaluated forest should have no selection")
	}
}

func TestResponsiveValues(t *testing.T) {
	s := mustEvaluate(t, `
(mount
  (text :font-size (responsive 20 18 16)
        :text-align (responsive :left :center :center)
        :margin-top 8))`)

	n, _ := s.Find(s.Roots()[0])
	if got := n.Props["fontSize"]; got != component.ResponsiveNumber(20, 18, 16) {
		t.Errorf("fontSize = %v", got)
	}
	if got := n.Props["textAlign"]; got != component.ResponsiveString("left", "center", "center") {
		t.Errorf("textAlign = %v", got)
	}
	// A scalar for a responsive property applies to every viewport.
	if got := n.Props["marginTop"]; got != component.ResponsiveNumber(8, 8, 8) {
		t.Errorf("marginTop = %v", got)
	}
}

func TestNestedContainers(t *testing.T) {
	s := mustEvaluate(t, `
(mount
  (header :text "Hi")
  (flex-container
    (card (text :text "one") (button :text "Go"))
    (card)))`)

	roots := s.Roots()
	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}
	flex := s.Children(roots[1])
	if len(flex) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(flex))
	}
	first := s.Children(flex[0])
	if len(first) != 2 {
		t.Fatalf("expected 2 children in first card, got %d", len(first))
	}
	btn, _ := s.Find(first[1])
	if btn.Kind != component.KindButton || btn.Props["text"] != component.String("Go") {
		t.Errorf("second child = %+v", btn)
	}
	empty, _ := s.Find(flex[1])
	if empty.Children == nil || len(empty.Children) != 0 {
		t.Errorf("empty card should have an empty child list, got %v", empty.Children)
	}
	if s.Len() != 6 {
		t.Errorf("Len = %d, want 6", s.Len())
	}
	for _, v := range tree.Validate(s) {
		t.Errorf("validation: %v", v)
	}
}

func TestVariableAndRemount(t *testing.T) {
	s := mustEvaluate(t, `
(def cta (button :text "Buy"))
(mount cta cta)`)

	roots := s.Roots()
	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}
	if roots[0] == roots[1] {
		t.Error("mounting a description twice must create distinct nodes")
	}
}

func TestChildrenFromList(t *testing.T) {
	s := mustEvaluate(t, `(mount (card (list (text) (text) (divider))))`)
	kids := s.Children(s.Roots()[0])
	if len(kids) != 3 {
		t.Fatalf("expected 3 children, got %d", len(kids))
	}
}

func TestMountOrderMatchesScript(t *testing.T) {
	s := mustEvaluate(t, `
(mount (header))
(mount (text) (image))`)

	var kinds []string
	s.Walk(func(id tree.NodeID, _ int) bool {
		n, _ := s.Find(id)
		kinds = append(kinds, n.Kind.String())
		return true
	})
	if got := strings.Join(kinds, ","); got != "Header,Text,Image" {
		t.Errorf("order = %s", got)
	}
}

func TestUnmountedComponentsAreDiscarded(t *testing.T) {
	s := mustEvaluate(t, `(def unused (card (text)))`)
	if s.Len() != 0 {
		t.Errorf("expected empty forest, got %d nodes", s.Len())
	}
}

func TestLeafRejectsChildren(t *testing.T) {
	mustEvalError(t, `(mount (text (button)))`, "cannot contain child components")
}

func TestResponsiveArity(t *testing.T) {
	mustEvalError(t, `(mount (text :font-size (responsive 1 2)))`, "exactly 3 arguments")
}

func TestBadPropertyValue(t *testing.T) {
	mustEvalError(t, `(mount (card :gap (card)))`, "gap")
}

func TestMountRejectsNonComponent(t *testing.T) {
	mustEvalError(t, `(mount 42)`, "expected component")
}

func TestWarningsForForeignProperties(t *testing.T) {
	s := mustEvaluate(t, `(mount (divider :src "x.png"))`)
	ws := Warnings(s)
	if len(ws) != 1 {
		t.Fatalf("expected 1 warning, got %v", ws)
	}
	if !strings.Contains(ws[0].Message, `"src"`) || ws[0].NodeID != s.Roots()[0] {
		t.Errorf("warning = %+v", ws[0])
	}
}

func TestLandingExampleScript(t *testing.T) {
	s := mustEvaluate(t, `
;; A small landing page.
(def feature
  (fn [title body]
    (card (header :text title :level :h3 :font-size (responsive 24 20 18))
          (text :text body))))

(mount
  (header :text "Ship faster" :text-align (responsive :left :center :center))
  (text :text "Build pages by dragging components.")
  (flex-container :flex-direction (responsive :row :column :column)
    (feature "Drag" "Compose layouts visually.")
    (feature "Tune" "Adjust every breakpoint."))
  (divider)
  (button :text "Get started"))`)

	if got := len(s.Roots()); got != 5 {
		t.Fatalf("expected 5 roots, got %d", got)
	}
	if s.Len() != 11 {
		t.Errorf("Len = %d, want 11", s.Len())
	}
	for _, v := range tree.Validate(s) {
		t.Errorf("validation: %v", v)
	}
}
