package render

import (
	"strings"
	"testing"

	"github.com/mlorenz/scenetree/pkg/document"
)

func testTree() *document.Node {
	return &document.Node{
		Name: "Root", Kind: document.KindGroup, Width: 100, Height: 100,
		Children: []*document.Node{
			{Name: "Hero", Kind: document.KindImage, Width: 64, Height: 64, Source: "hero.png"},
			{Name: "Label", Kind: document.KindText, X: 10, Y: 5, Width: 80, Height: 20, Text: "Hi"},
		},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testTree(), Options{})

	for _, want := range []string{
		"digraph G {",
		"rankdir=TB",
		`"/" [label="Root\n(group)"];`,
		`"/children/0" [label="Hero\n(image)", fillcolor=lightgrey];`,
		`"/" -> "/children/0";`,
		`"/" -> "/children/1";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(testTree(), Options{Detailed: true})

	for _, want := range []string{
		`at: 10, 5`,
		`size: 80 x 20`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("detailed DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTTextContent(t *testing.T) {
	dot := ToDOT(testTree(), Options{})
	if !strings.Contains(dot, `\"Hi\"`) {
		t.Errorf("text node should carry content:\n%s", dot)
	}
}

func TestToDOTNestedPaths(t *testing.T) {
	root := testTree()
	root.Children[0].Children = []*document.Node{{Name: "Deep", Kind: document.KindGroup}}

	dot := ToDOT(root, Options{})
	if !strings.Contains(dot, `"/children/0" -> "/children/0/children/0";`) {
		t.Errorf("nested edge missing:\n%s", dot)
	}
}

func TestToDOTNilRoot(t *testing.T) {
	dot := ToDOT(nil, Options{})
	if !strings.Contains(dot, "digraph G {") || !strings.Contains(dot, "}") {
		t.Errorf("nil root should still produce a valid empty graph:\n%s", dot)
	}
}
