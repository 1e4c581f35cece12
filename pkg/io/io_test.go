package io

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/mlorenz/scenetree/pkg/document"
)

const sampleDoc = `{"name":"Root","type":"group","x":0,"y":0,"width":100,"height":50,
	"children":[
		{"name":"Label","type":"text","x":10,"y":5,"width":80,"height":20,"text":"Hi"},
		{"name":"Hero","type":"image","x":0,"y":20,"width":64,"height":64,"source":"hero.png"}
	]}`

func TestImportDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "design.json")
	if err := os.WriteFile(path, []byte(sampleDoc), 0o644); err != nil {
		t.Fatal(err)
	}

	root, err := ImportDocument(path)
	if err != nil {
		t.Fatalf("ImportDocument: %v", err)
	}
	if root.Count() != 3 {
		t.Errorf("Count = %d, want 3", root.Count())
	}
}

func TestImportDocumentMissingFile(t *testing.T) {
	if _, err := ImportDocument(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRoundTrip(t *testing.T) {
	root, err := document.Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteDocument(root, &buf); err != nil {
		t.Fatalf("WriteDocument: %v", err)
	}

	again, err := document.Parse(buf.Bytes())
	if err != nil {
		t.Fatalf("re-parse: %v", err)
	}
	if !reflect.DeepEqual(root, again) {
		t.Error("round trip should preserve the tree exactly")
	}
}

func TestExportDocument(t *testing.T) {
	root, err := document.Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.json")
	if err := ExportDocument(root, path); err != nil {
		t.Fatalf("ExportDocument: %v", err)
	}

	again, err := ImportDocument(path)
	if err != nil {
		t.Fatalf("ImportDocument: %v", err)
	}
	if again.Count() != root.Count() {
		t.Errorf("re-imported count = %d, want %d", again.Count(), root.Count())
	}
}
