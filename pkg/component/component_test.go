package component

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestKindStringRoundTrip(t *testing.T) {
	for _, k := range AllKinds {
		got, err := ParseKind(k.String())
		if err != nil {
			t.Fatalf("ParseKind(%q): %v", k, err)
		}
		if got != k {
			t.Errorf("ParseKind(%q) = %v, want %v", k, got, k)
		}
	}
	if _, err := ParseKind("Navbar"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestIsContainer(t *testing.T) {
	for _, k := range AllKinds {
		want := k == KindFlexContainer || k == KindCard
		if k.IsContainer() != want {
			t.Errorf("%v.IsContainer() = %v, want %v", k, k.IsContainer(), want)
		}
	}
}

func TestDefaultsCoverSchema(t *testing.T) {
	// Every key a kind's editors read must have a default, and no default may
	// fall outside the kind's schema.
	for _, k := range AllKinds {
		props := Defaults(k)
		schema := SchemaFor(k)
		for _, key := range schema.Keys() {
			if _, ok := props[key]; !ok {
				t.Errorf("%v: schema key %q has no default", k, key)
			}
		}
		for key := range props {
			if !schema.Allows(key) {
				t.Errorf("%v: default %q is outside the schema", k, key)
			}
		}
	}
}

func TestDefaultsAreFreshCopies(t *testing.T) {
	a := Defaults(KindHeader)
	a["text"] = String("changed")
	b := Defaults(KindHeader)
	if b["text"] != String("Main Heading") {
		t.Errorf("defaults leaked a mutation: text = %v", b["text"])
	}
}

func TestCardOverridesContainerBase(t *testing.T) {
	flex := Defaults(KindFlexContainer)
	card := Defaults(KindCard)

	if flex["display"] != String("flex") || card["display"] != String("flex") {
		t.Errorf("containers should default to flex display")
	}
	if card["alignItems"] != ResponsiveString("stretch", "stretch", "stretch") {
		t.Errorf("card alignItems = %v", card["alignItems"])
	}
	if card["paddingTop"] != ResponsiveNumber(32, 24, 20) {
		t.Errorf("card paddingTop = %v", card["paddingTop"])
	}
	if flex["paddingTop"] != ResponsiveNumber(24, 20, 16) {
		t.Errorf("flex paddingTop = %v", flex["paddingTop"])
	}
	if card["backgroundColor"] != ResponsiveString("#1E293B", "#1E293B", "#1E293B") {
		t.Errorf("card backgroundColor = %v", card["backgroundColor"])
	}
	if card["gap"] != flex["gap"] {
		t.Errorf("card should share the container gap")
	}
}

func TestHeaderDefaults(t *testing.T) {
	p := HeaderDefaults()
	if p["level"] != String("h1") {
		t.Errorf("level = %v, want h1", p["level"])
	}
	if p["fontWeight"] != ResponsiveString("bold", "bold", "bold") {
		t.Errorf("header fontWeight should override the typography default")
	}
	if p["marginBottom"] != ResponsiveNumber(16, 12, 12) {
		t.Errorf("marginBottom = %v", p["marginBottom"])
	}
}

func TestMergeIsShallow(t *testing.T) {
	p := Properties{
		"text":  String("a"),
		"color": ResponsiveString("red", "red", "red"),
	}
	p.Merge(Properties{"color": ResponsiveString("blue", "red", "red")})
	p.Merge(Properties{"extra": Number(2)})

	if p["text"] != String("a") {
		t.Errorf("untouched key changed: %v", p["text"])
	}
	if p["color"] != ResponsiveString("blue", "red", "red") {
		t.Errorf("color = %v", p["color"])
	}
	if p["extra"] != Number(2) {
		t.Errorf("extra = %v", p["extra"])
	}
}

func TestResponsiveWithAndAt(t *testing.T) {
	r := ResponsiveNumber(1, 2, 3).With(Tablet, Number(9))
	if r.At(Desktop) != Number(1) || r.At(Tablet) != Number(9) || r.At(Mobile) != Number(3) {
		t.Errorf("With/At mismatch: %v", r)
	}
}

func TestFromAny(t *testing.T) {
	v, err := FromAny(map[string]any{"desktop": 24.0, "tablet": "20", "mobile": 16})
	if err != nil {
		t.Fatalf("FromAny: %v", err)
	}
	want := Responsive{Desktop: Number(24), Tablet: String("20"), Mobile: Number(16)}
	if v != want {
		t.Errorf("FromAny = %v, want %v", v, want)
	}

	if _, err := FromAny(map[string]any{"desktop": 1.0}); err == nil {
		t.Error("expected error for incomplete responsive value")
	}
	if _, err := FromAny(true); err == nil {
		t.Error("expected error for bool value")
	}
}

func TestPropertiesJSON(t *testing.T) {
	in := Properties{
		"text":     String("Hello"),
		"fontSize": ResponsiveNumber(36, 30, 24),
		"gap":      Number(8),
	}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"fontSize":{"desktop":36,"tablet":30,"mobile":24}`) {
		t.Errorf("unexpected encoding: %s", data)
	}

	var out Properties
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out["fontSize"] != in["fontSize"] || out["text"] != in["text"] || out["gap"] != in["gap"] {
		t.Errorf("decoded %v, want %v", out, in)
	}
}

func TestPropertiesKeysOrder(t *testing.T) {
	p := Properties{
		"zeta":  Number(1),
		"level": String("h2"),
		"text":  String("x"),
		"alpha": Number(2),
	}
	got := p.Keys(KindHeader)
	want := []string{"text", "level", "alpha", "zeta"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Keys = %v, want %v", got, want)
	}
}

func TestNumberString(t *testing.T) {
	cases := map[Number]string{16: "16", 0.5: "0.5", -2: "-2"}
	for n, want := range cases {
		if n.String() != want {
			t.Errorf("Number(%v).String() = %q, want %q", float64(n), n.String(), want)
		}
	}
}
