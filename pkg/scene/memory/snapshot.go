package memory

import (
	"errors"

	"github.com/mlorenz/scenetree/pkg/scene"
)

// errForeignHandle is returned when a handle was not created by this
// environment.
var errForeignHandle = errors.New("handle was not created by this environment")

// ElementView is the JSON-friendly projection of a recorded element tree,
// used by the CLI's build output and the HTTP API.
type ElementView struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Kind     string            `json:"kind"`
	Size     scene.Size        `json:"size"`
	Position scene.Point       `json:"position"`
	Text     string            `json:"text,omitempty"`
	Source   string            `json:"source,omitempty"`
	Children []ElementView     `json:"children,omitempty"`
}

// Snapshot projects the recorded root elements (and their subtrees) into
// views. Attachment order is preserved at every level.
func (e *Env) Snapshot() []ElementView {
	roots := e.Roots()
	views := make([]ElementView, 0, len(roots))
	for _, r := range roots {
		views = append(views, e.view(r))
	}
	return views
}

func (e *Env) view(el *Element) ElementView {
	e.mu.Lock()
	v := ElementView{
		ID:       el.ID,
		Name:     el.Spec.Name,
		Kind:     el.Kind.String(),
		Size:     el.Spec.Size,
		Position: el.Spec.Position,
		Text:     el.Spec.Text,
		Source:   el.FillSource,
	}
	children := make([]*Element, len(el.children))
	copy(children, el.children)
	e.mu.Unlock()

	for _, c := range children {
		v.Children = append(v.Children, e.view(c))
	}
	return v
}
