package viz

import (
	"strings"
	"testing"

	"github.com/conceptflow/conceptflow/pkg/encode"
)

func TestGenerateHTML(t *testing.T) {
	s := exportScene(t)
	enc := encode.New(encode.DefaultBounds, nil)

	page, err := GenerateHTML(s, enc, nil, "Statistics 101")
	if err != nil {
		t.Fatalf("GenerateHTML() error = %v", err)
	}

	for _, want := range []string{
		"<title>Statistics 101</title>",
		"cytoscape(",
		"name: 'preset'",
		`"id": "root"`,
		"hover-connected",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestGenerateHTMLDefaults(t *testing.T) {
	s := exportScene(t)

	page, err := GenerateHTML(s, encode.Encoder{}, nil, "")
	if err != nil {
		t.Fatalf("GenerateHTML() error = %v", err)
	}
	if !strings.Contains(page, "<title>conceptflow</title>") {
		t.Error("empty title should fall back to the default")
	}
}

func TestGenerateHTMLNilScene(t *testing.T) {
	if _, err := GenerateHTML(nil, encode.Encoder{}, nil, "x"); err == nil {
		t.Error("GenerateHTML(nil) should fail")
	}
}
