package viz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/conceptflow/conceptflow/pkg/encode"
	"github.com/conceptflow/conceptflow/pkg/scene"
)

// compiledTemplate is parsed at init time to fail fast on template errors.
var compiledTemplate = template.Must(template.New("viz").Parse(htmlTemplate))

// templateData holds data for the HTML template.
type templateData struct {
	Title      string
	Elements   template.JS
	Stylesheet template.JS
}

// GenerateHTML renders a self-contained viewer page for the scene: elements
// with preset positions, the generated stylesheet, and a Cytoscape.js mount.
func GenerateHTML(s *scene.Scene, enc encode.Encoder, styles encode.StyleTable, title string) (string, error) {
	if s == nil {
		return "", fmt.Errorf("scene cannot be nil")
	}
	if title == "" {
		title = "conceptflow"
	}

	elements, err := FromScene(s, enc).ToJSON()
	if err != nil {
		return "", err
	}
	styleJSON, err := json.MarshalIndent(Stylesheet(styles), "", "  ")
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = compiledTemplate.Execute(&buf, templateData{
		Title:      title,
		Elements:   template.JS(elements),
		Stylesheet: template.JS(styleJSON),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="https://unpkg.com/cytoscape@3/dist/cytoscape.min.js"></script>
<style>
  html, body { margin: 0; height: 100%; }
  #cy { width: 100%; height: 100%; }
</style>
</head>
<body>
<div id="cy"></div>
<script>
  const elements = {{.Elements}};
  const style = {{.Stylesheet}};
  const cy = cytoscape({
    container: document.getElementById('cy'),
    elements: elements,
    style: style,
    layout: { name: 'preset' },
  });
  cy.on('mouseover', 'node', evt => {
    const n = evt.target;
    n.closedNeighborhood().addClass('hover-connected');
  });
  cy.on('mouseout', 'node', evt => {
    const n = evt.target;
    n.closedNeighborhood().removeClass('hover-connected');
  });
</script>
</body>
</html>
`
