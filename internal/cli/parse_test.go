package cli

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/mlorenz/scenetree/pkg/document"
	pkgio "github.com/mlorenz/scenetree/pkg/io"
)

const sampleDoc = `{
	"name": "Root", "type": "group", "x": 0, "y": 0, "width": 100, "height": 100,
	"children": [
		{"name": "Hero", "type": "image", "x": 0, "y": 0, "width": 64, "height": 64, "source": "hero.png"},
		{"name": "Label", "type": "text", "x": 10, "y": 5, "width": 80, "height": 20, "text": "Hi"}
	]
}`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "design.json")
	if err := os.WriteFile(path, []byte(sampleDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseCommand(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"parse", writeSample(t)})

	if err := root.Execute(); err != nil {
		t.Fatalf("parse command failed: %v", err)
	}
}

func TestParseCommandMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"name": "X"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"parse", path})

	err := root.Execute()
	if err == nil {
		t.Fatal("malformed document should fail the command")
	}
	var malformed *document.MalformedDocumentError
	if !errors.As(err, &malformed) {
		t.Fatalf("error should be MalformedDocumentError, got %T: %v", err, err)
	}
	if malformed.Path != "/type" {
		t.Errorf("path = %q, want /type", malformed.Path)
	}
}

func TestParseCommandNormalizedOutput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.json")

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"parse", writeSample(t), "-o", out})

	if err := root.Execute(); err != nil {
		t.Fatalf("parse command failed: %v", err)
	}

	reparsed, err := pkgio.ImportDocument(out)
	if err != nil {
		t.Fatalf("normalized output should re-import: %v", err)
	}
	if reparsed.Count() != 3 {
		t.Errorf("node count = %d, want 3", reparsed.Count())
	}
}

func TestCountKinds(t *testing.T) {
	root := &document.Node{Kind: document.KindGroup, Children: []*document.Node{
		{Kind: document.KindImage},
		{Kind: document.KindText},
		{Kind: document.KindText},
	}}

	groups, images, texts := countKinds(root)
	if groups != 1 || images != 1 || texts != 2 {
		t.Errorf("countKinds = %d, %d, %d", groups, images, texts)
	}
}
