package memory

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mlorenz/scenetree/pkg/cache"
	"github.com/mlorenz/scenetree/pkg/document"
	"github.com/mlorenz/scenetree/pkg/fetch"
	"github.com/mlorenz/scenetree/pkg/scene"
)

func buildSample(t *testing.T, env *Env) scene.Handle {
	t.Helper()
	root := &document.Node{
		Name: "Root", Kind: document.KindGroup, Width: 100, Height: 50,
		Children: []*document.Node{
			{Name: "Label", Kind: document.KindText, X: 10, Y: 5, Width: 80, Height: 20, Text: "Hi"},
			{Name: "Hero", Kind: document.KindImage, Width: 64, Height: 64, Source: "hero.png"},
		},
	}
	h, err := scene.NewBuilder(env).Build(context.Background(), root, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return h
}

func TestEnvRecordsElements(t *testing.T) {
	env := New()
	h := buildSample(t, env)

	if env.Len() != 3 {
		t.Fatalf("Len = %d, want 3", env.Len())
	}

	elements := env.Elements()
	for i, want := range []string{"Root", "Label", "Hero"} {
		if elements[i].Spec.Name != want {
			t.Errorf("element %d = %q, want %q", i, elements[i].Spec.Name, want)
		}
		if elements[i].ID == "" {
			t.Errorf("element %d has no ID", i)
		}
	}

	rootEl, ok := h.(*Element)
	if !ok {
		t.Fatal("handle should be a *Element")
	}
	if len(rootEl.Children()) != 2 {
		t.Fatalf("root should have 2 children, got %d", len(rootEl.Children()))
	}
	if rootEl.Children()[0].Spec.Name != "Label" {
		t.Error("attachment order should follow document order")
	}
	if rootEl.Children()[0].Parent() != rootEl {
		t.Error("child should point back at its parent")
	}

	roots := env.Roots()
	if len(roots) != 1 || roots[0] != rootEl {
		t.Errorf("expected exactly the root element as root, got %d", len(roots))
	}
}

func TestEnvRecordsFillRequests(t *testing.T) {
	env := New()
	buildSample(t, env)

	hero := env.Elements()[2]
	if hero.FillSource != "hero.png" {
		t.Errorf("FillSource = %q, want hero.png", hero.FillSource)
	}
	if hero.FillBytes != 0 {
		t.Error("no dispatcher configured, fill must not complete")
	}
}

func TestEnvWithDispatcherCompletesFills(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "pixels")
	}))
	defer srv.Close()

	d := fetch.NewDispatcher(fetch.NewClient(cache.NewNullCache(), fetch.Options{}), nil)
	env := NewWithDispatcher(d)

	root := &document.Node{
		Name: "bg", Kind: document.KindImage, Width: 1, Height: 1,
		Source: srv.URL + "/bg.png",
	}
	if _, err := scene.NewBuilder(env).Build(context.Background(), root, nil); err != nil {
		t.Fatalf("Build: %v", err)
	}
	d.Wait()

	el := env.Elements()[0]
	if el.FillBytes != len("pixels") {
		t.Errorf("FillBytes = %d, want %d", el.FillBytes, len("pixels"))
	}
}

func TestEnvSnapshot(t *testing.T) {
	env := New()
	buildSample(t, env)

	views := env.Snapshot()
	if len(views) != 1 {
		t.Fatalf("expected 1 root view, got %d", len(views))
	}
	root := views[0]
	if root.Name != "Root" || root.Kind != "group" {
		t.Errorf("unexpected root view: %+v", root)
	}
	if len(root.Children) != 2 {
		t.Fatalf("root view should have 2 children, got %d", len(root.Children))
	}
	label := root.Children[0]
	if label.Text != "Hi" || label.Kind != "text" {
		t.Errorf("unexpected label view: %+v", label)
	}
	if label.Position != (scene.Point{X: 10, Y: -5}) {
		t.Errorf("label position = %+v, want (10, -5)", label.Position)
	}
	if root.Children[1].Source != "hero.png" {
		t.Errorf("hero view should record the fill source")
	}
}

func TestEnvRejectsForeignHandles(t *testing.T) {
	env := New()
	h, err := env.CreateElement(context.Background(), document.KindGroup, scene.ElementSpec{Name: "a"})
	if err != nil {
		t.Fatalf("CreateElement: %v", err)
	}
	if err := env.AttachChild("not-an-element", h); err == nil {
		t.Error("attaching under a foreign handle should fail")
	}
}
