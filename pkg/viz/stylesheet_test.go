package viz

import (
	"strings"
	"testing"

	"github.com/conceptflow/conceptflow/pkg/encode"
	"github.com/conceptflow/conceptflow/pkg/graph"
	"github.com/conceptflow/conceptflow/pkg/highlight"
)

func TestStylesheetInteractionRulesLast(t *testing.T) {
	rules := Stylesheet(encode.DefaultStyleTable())

	indexOf := func(selector string) int {
		for i, r := range rules {
			if r.Selector == selector {
				return i
			}
		}
		t.Fatalf("selector %q missing from stylesheet", selector)
		return -1
	}

	hover := indexOf("." + highlight.ClassHover)
	highlighted := indexOf("." + highlight.ClassHighlighted)
	dimmed := indexOf("." + highlight.ClassDimmed)

	// The three interaction rules must be the final three entries, in any
	// earlier position a type rule could shadow them.
	n := len(rules)
	for _, idx := range []int{hover, highlighted, dimmed} {
		if idx < n-3 {
			t.Errorf("interaction rule at index %d, want within the last three of %d", idx, n)
		}
	}

	// Every type rule precedes every interaction rule.
	for i, r := range rules {
		if strings.HasPrefix(r.Selector, "edge[type") && i > hover {
			t.Errorf("type rule %q at index %d after interaction rules", r.Selector, i)
		}
	}
}

func TestStylesheetCoversEdgeTypes(t *testing.T) {
	rules := Stylesheet(encode.DefaultStyleTable())

	for _, typ := range graph.EdgeTypes {
		want := `edge[type = "` + typ + `"]`
		found := false
		for _, r := range rules {
			if r.Selector == want {
				found = true
				if r.Style["line-color"] == "" {
					t.Errorf("rule %q missing line-color", want)
				}
				break
			}
		}
		if !found {
			t.Errorf("stylesheet missing rule for edge type %s", typ)
		}
	}
}

func TestStylesheetNilTableUsesDefaults(t *testing.T) {
	if got, want := len(Stylesheet(nil)), len(Stylesheet(encode.DefaultStyleTable())); got != want {
		t.Errorf("nil table stylesheet has %d rules, want %d", got, want)
	}
}

func TestStylesheetBaseRulesFirst(t *testing.T) {
	rules := Stylesheet(nil)

	if len(rules) < 2 || rules[0].Selector != "node" || rules[1].Selector != "edge" {
		t.Fatalf("stylesheet should open with the node and edge base rules, got %v, %v",
			rules[0].Selector, rules[1].Selector)
	}
	if rules[0].Style["shape"] != "data(shape)" {
		t.Error("node base rule should map shape from element data")
	}
}
