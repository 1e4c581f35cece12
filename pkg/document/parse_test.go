package document

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestParseScenario(t *testing.T) {
	input := `{"name":"Root","type":"group","x":0,"y":0,"width":100,"height":50,
		"children":[{"name":"Label","type":"text","x":10,"y":5,"width":80,"height":20,"text":"Hi"}]}`

	root, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if root.Name != "Root" || root.Kind != KindGroup {
		t.Errorf("unexpected root: %+v", root)
	}
	if root.Width != 100 || root.Height != 50 {
		t.Errorf("unexpected root extent: %g x %g", root.Width, root.Height)
	}
	if len(root.Children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(root.Children))
	}
	child := root.Children[0]
	if child.Name != "Label" || child.Kind != KindText || child.Text != "Hi" {
		t.Errorf("unexpected child: %+v", child)
	}
	if child.X != 10 || child.Y != 5 {
		t.Errorf("unexpected child position: (%g, %g)", child.X, child.Y)
	}
	if root.Count() != 2 {
		t.Errorf("Count = %d, want 2", root.Count())
	}
}

func TestParseSiblingOrderPreserved(t *testing.T) {
	input := `{"name":"Root","type":"group","x":0,"y":0,"width":10,"height":10,"children":[
		{"name":"a","type":"group","x":0,"y":0,"width":1,"height":1},
		{"name":"b","type":"group","x":0,"y":0,"width":1,"height":1},
		{"name":"c","type":"group","x":0,"y":0,"width":1,"height":1}
	]}`

	root, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var names []string
	for _, c := range root.Children {
		names = append(names, c.Name)
	}
	if got := strings.Join(names, ""); got != "abc" {
		t.Errorf("sibling order = %q, want abc", got)
	}
}

func TestParseUnrecognizedTypeFallsBackToGroup(t *testing.T) {
	input := `{"name":"Sprite","type":"sprite","x":0,"y":0,"width":1,"height":1}`

	root, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if root.Kind != KindGroup {
		t.Errorf("Kind = %v, want KindGroup", root.Kind)
	}
}

func TestParseImageWithoutSource(t *testing.T) {
	input := `{"name":"Hero","type":"image","x":0,"y":0,"width":64,"height":64}`

	root, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if root.Kind != KindImage {
		t.Errorf("Kind = %v, want KindImage", root.Kind)
	}
	if root.Source != "" {
		t.Errorf("Source = %q, want empty", root.Source)
	}
}

func TestParseZeroExtentIsValid(t *testing.T) {
	input := `{"name":"Hidden","type":"group","x":5,"y":5,"width":0,"height":0}`

	if _, err := Parse([]byte(input)); err != nil {
		t.Errorf("zero extents should parse: %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantPath string
	}{
		{
			name:     "non-object root",
			input:    `[1, 2, 3]`,
			wantPath: "/",
		},
		{
			name:     "missing name",
			input:    `{"type":"group","x":0,"y":0,"width":1,"height":1}`,
			wantPath: "/name",
		},
		{
			name:     "mistyped x",
			input:    `{"name":"n","type":"group","x":"10","y":0,"width":1,"height":1}`,
			wantPath: "/x",
		},
		{
			name:     "null y",
			input:    `{"name":"n","type":"group","x":0,"y":null,"width":1,"height":1}`,
			wantPath: "/y",
		},
		{
			name: "missing width on descendant",
			input: `{"name":"Root","type":"group","x":0,"y":0,"width":10,"height":10,"children":[
				{"name":"ok","type":"group","x":0,"y":0,"width":1,"height":1},
				{"name":"bad","type":"group","x":0,"y":0,"height":1}
			]}`,
			wantPath: "/children/1/width",
		},
		{
			name:     "mistyped optional text",
			input:    `{"name":"n","type":"text","x":0,"y":0,"width":1,"height":1,"text":42}`,
			wantPath: "/text",
		},
		{
			name:     "mistyped optional source",
			input:    `{"name":"n","type":"image","x":0,"y":0,"width":1,"height":1,"source":[]}`,
			wantPath: "/source",
		},
		{
			name:     "children not an array",
			input:    `{"name":"n","type":"group","x":0,"y":0,"width":1,"height":1,"children":{}}`,
			wantPath: "/children",
		},
		{
			name:     "non-object child",
			input:    `{"name":"n","type":"group","x":0,"y":0,"width":1,"height":1,"children":["x"]}`,
			wantPath: "/children/0",
		},
		{
			name:     "negative width",
			input:    `{"name":"n","type":"group","x":0,"y":0,"width":-1,"height":1}`,
			wantPath: "/width",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := Parse([]byte(tt.input))
			if root != nil {
				t.Error("no partial tree may be returned on failure")
			}
			var merr *MalformedDocumentError
			if !errors.As(err, &merr) {
				t.Fatalf("expected MalformedDocumentError, got %v", err)
			}
			if merr.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", merr.Path, tt.wantPath)
			}
		})
	}
}

func TestParseIgnoresUnknownFields(t *testing.T) {
	input := `{"name":"n","type":"group","x":0,"y":0,"width":1,"height":1,
		"opacity":0.5,"locked":true,"tags":["a"]}`

	if _, err := Parse([]byte(input)); err != nil {
		t.Errorf("unknown fields should be ignored: %v", err)
	}
}

// chainDocument builds a document nested levels deep, each node holding one child.
func chainDocument(levels int) []byte {
	var b strings.Builder
	for i := 0; i < levels; i++ {
		fmt.Fprintf(&b, `{"name":"n%d","type":"group","x":0,"y":0,"width":1,"height":1`, i)
		if i < levels-1 {
			b.WriteString(`,"children":[`)
		}
	}
	b.WriteString(`}`)
	for i := 0; i < levels-1; i++ {
		b.WriteString(`]}`)
	}
	return []byte(b.String())
}

func TestParseDeeplyNestedDocument(t *testing.T) {
	root, err := Parse(chainDocument(1000))
	if err != nil {
		t.Fatalf("1000-level chain should parse: %v", err)
	}
	if got := root.Depth(); got != 1000 {
		t.Errorf("Depth = %d, want 1000", got)
	}
	if got := root.Count(); got != 1000 {
		t.Errorf("Count = %d, want 1000", got)
	}
}

func TestParseDepthLimit(t *testing.T) {
	_, err := ParseWithOptions(chainDocument(20), ParseOptions{MaxDepth: 10})
	var merr *MalformedDocumentError
	if !errors.As(err, &merr) {
		t.Fatalf("expected MalformedDocumentError, got %v", err)
	}
	if !strings.Contains(merr.Reason, "depth limit") {
		t.Errorf("Reason = %q, want depth limit mention", merr.Reason)
	}
}

func TestParseReader(t *testing.T) {
	r := strings.NewReader(`{"name":"n","type":"group","x":0,"y":0,"width":1,"height":1}`)
	root, err := ParseReader(r)
	if err != nil {
		t.Fatalf("ParseReader: %v", err)
	}
	if root.Name != "n" {
		t.Errorf("unexpected root name %q", root.Name)
	}
}
