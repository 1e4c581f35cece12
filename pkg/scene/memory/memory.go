// Package memory provides an in-memory scene.Environment.
//
// Elements are plain records with UUID identifiers instead of engine objects,
// which makes the environment suitable for the CLI's dry-run build, the HTTP
// API and tests: a build against it produces an inspectable snapshot of every
// element the builder would have created, in creation order, with the exact
// sizes and converted positions handed to the environment.
//
// When constructed with a fetch dispatcher, image fills actually run as
// detached fetches and record their payload size on completion; without one,
// fill requests are recorded but no network work happens.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/mlorenz/scenetree/pkg/document"
	"github.com/mlorenz/scenetree/pkg/fetch"
	"github.com/mlorenz/scenetree/pkg/scene"
)

// Element is one recorded visual primitive.
type Element struct {
	ID   string
	Kind document.Kind
	Spec scene.ElementSpec

	// FillSource is the image source a fill was requested for, empty when
	// no fill was requested.
	FillSource string

	// FillBytes is the payload size of a completed fill. Stays zero until
	// the detached fetch finishes (or forever, if it fails).
	FillBytes int

	parent   *Element
	children []*Element
}

// Children returns the attached children in attachment order.
func (e *Element) Children() []*Element {
	return e.children
}

// Parent returns the element this one is attached under, or nil for roots.
func (e *Element) Parent() *Element {
	return e.parent
}

// Env is an in-memory implementation of scene.Environment.
// All methods are safe for concurrent use; fill completions arrive from
// fetch goroutines while the build traversal is still running.
type Env struct {
	mu         sync.Mutex
	order      []*Element
	dispatcher *fetch.Dispatcher
}

// New creates an environment that records elements and fill requests without
// performing any network work.
func New() *Env {
	return &Env{}
}

// NewWithDispatcher creates an environment whose image fills run as detached
// fetches through d. Callers that need deterministic results (tests, the CLI
// before printing) should drain with d.Wait().
func NewWithDispatcher(d *fetch.Dispatcher) *Env {
	return &Env{dispatcher: d}
}

// CreateElement records a new element and returns its handle.
func (e *Env) CreateElement(ctx context.Context, kind document.Kind, spec scene.ElementSpec) (scene.Handle, error) {
	el := &Element{
		ID:   uuid.NewString(),
		Kind: kind,
		Spec: spec,
	}
	e.mu.Lock()
	e.order = append(e.order, el)
	e.mu.Unlock()
	return el, nil
}

// AttachChild parents child under parent, preserving attachment order.
func (e *Env) AttachChild(parent, child scene.Handle) error {
	p, err := asElement(parent)
	if err != nil {
		return err
	}
	c, err := asElement(child)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	c.parent = p
	p.children = append(p.children, c)
	return nil
}

// FillImage records the fill request and, when a dispatcher is configured,
// schedules the detached fetch. Never blocks.
func (e *Env) FillImage(handle scene.Handle, source string) {
	el, err := asElement(handle)
	if err != nil {
		return
	}
	e.mu.Lock()
	el.FillSource = source
	e.mu.Unlock()

	if e.dispatcher == nil {
		return
	}
	e.dispatcher.Dispatch(source, func(data []byte) {
		e.mu.Lock()
		el.FillBytes = len(data)
		e.mu.Unlock()
	})
}

// Elements returns every recorded element in creation order.
func (e *Env) Elements() []*Element {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*Element, len(e.order))
	copy(out, e.order)
	return out
}

// Len returns the number of recorded elements.
func (e *Env) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.order)
}

// Roots returns the recorded elements that were never attached to a parent.
func (e *Env) Roots() []*Element {
	e.mu.Lock()
	defer e.mu.Unlock()
	var roots []*Element
	for _, el := range e.order {
		if el.parent == nil {
			roots = append(roots, el)
		}
	}
	return roots
}

// asElement narrows an opaque handle back to this environment's element type.
func asElement(h scene.Handle) (*Element, error) {
	el, ok := h.(*Element)
	if !ok || el == nil {
		return nil, errForeignHandle
	}
	return el, nil
}

// Ensure Env implements scene.Environment.
var _ scene.Environment = (*Env)(nil)
