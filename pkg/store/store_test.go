package store

import (
	"reflect"
	"testing"

	"github.com/mlorenz/scenetree/pkg/document"
)

func TestStoredNodeRoundTrip(t *testing.T) {
	root := &document.Node{
		Name: "Root", Kind: document.KindGroup, X: 1, Y: 2, Width: 100, Height: 50,
		Children: []*document.Node{
			{Name: "Hero", Kind: document.KindImage, Width: 64, Height: 64, Source: "hero.png"},
			{Name: "Label", Kind: document.KindText, X: 10, Y: 5, Width: 80, Height: 20, Text: "Hi"},
		},
	}

	got := fromStored(toStored(root))
	if !reflect.DeepEqual(root, got) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, root)
	}
}

func TestStoredNodePreservesChildOrder(t *testing.T) {
	root := &document.Node{Name: "Root", Kind: document.KindGroup}
	for _, name := range []string{"a", "b", "c"} {
		root.Children = append(root.Children, &document.Node{Name: name})
	}

	got := fromStored(toStored(root))
	for i, want := range []string{"a", "b", "c"} {
		if got.Children[i].Name != want {
			t.Errorf("child %d = %q, want %q", i, got.Children[i].Name, want)
		}
	}
}
