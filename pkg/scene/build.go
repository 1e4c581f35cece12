package scene

import (
	"context"
	"fmt"
	"time"

	"github.com/mlorenz/scenetree/pkg/document"
	"github.com/mlorenz/scenetree/pkg/observability"
)

// Builder maps a document tree to a parallel tree of element handles.
//
// A Builder is stateless between calls: each Build operates on an independent
// node tree and independent environment handles, so a single Builder may be
// reused across documents. Building is synchronous and single-threaded; the
// only asynchronous side effect is the image fill delegated to the
// environment.
type Builder struct {
	env        Environment
	convention Convention
	maxDepth   int
}

// Option configures a Builder.
type Option func(*Builder)

// WithConvention overrides the coordinate conversion applied to every node.
// The default is [YUpCentered].
func WithConvention(c Convention) Option {
	return func(b *Builder) {
		if c != nil {
			b.convention = c
		}
	}
}

// WithMaxDepth bounds the build recursion depth. Zero or negative restores
// the default, document.DefaultMaxDepth.
func WithMaxDepth(d int) Option {
	return func(b *Builder) {
		if d > 0 {
			b.maxDepth = d
		}
	}
}

// NewBuilder creates a Builder that materializes hierarchies through env.
func NewBuilder(env Environment, opts ...Option) *Builder {
	b := &Builder{
		env:        env,
		convention: YUpCentered,
		maxDepth:   document.DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build creates a visual element for n and every descendant, depth-first
// pre-order, and returns the handle for n itself. parent may be nil for the
// root of a hierarchy; otherwise the new element is attached under it.
//
// Per node, Build asks the environment for an element of the node's kind,
// sized (Width, Height) verbatim and positioned through the configured
// convention. Text content travels in the [ElementSpec]; image nodes with a
// non-empty source additionally get a fire-and-forget fill request that Build
// never waits on.
//
// The first environment failure aborts the remaining subtree and surfaces as
// an [ElementCreationFailedError]. Siblings attached before the failure stay
// attached.
func (b *Builder) Build(ctx context.Context, n *document.Node, parent Handle) (Handle, error) {
	if n == nil {
		return nil, fmt.Errorf("build: nil node")
	}

	start := time.Now()
	observability.Scene().OnBuildStart(ctx, n.Count())
	h, err := b.buildNode(ctx, n, parent, "/", 1)
	observability.Scene().OnBuildComplete(ctx, time.Since(start), err)
	return h, err
}

// buildNode builds one node and recurses into its children.
func (b *Builder) buildNode(ctx context.Context, n *document.Node, parent Handle, path string, depth int) (Handle, error) {
	if depth > b.maxDepth {
		return nil, &ElementCreationFailedError{Path: path, Cause: ErrDepthLimit}
	}

	spec := ElementSpec{
		Name:     n.Name,
		Size:     Size{Width: n.Width, Height: n.Height},
		Position: b.convention(n.X, n.Y),
	}
	if n.Kind == document.KindText {
		spec.Text = n.Text
	}

	h, err := b.env.CreateElement(ctx, n.Kind, spec)
	if err != nil {
		return nil, &ElementCreationFailedError{Path: path, Cause: err}
	}
	observability.Scene().OnElementCreated(ctx, n.Kind.String())

	if n.Kind == document.KindImage && n.Source != "" {
		b.env.FillImage(h, n.Source)
	}

	if parent != nil {
		if err := b.env.AttachChild(parent, h); err != nil {
			return nil, &ElementCreationFailedError{Path: path, Cause: err}
		}
	}

	for i, c := range n.Children {
		childPath := childPath(path, i)
		if _, err := b.buildNode(ctx, c, h, childPath, depth+1); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// childPath extends a node path with a child index.
func childPath(base string, i int) string {
	if base == "/" {
		return fmt.Sprintf("/children/%d", i)
	}
	return fmt.Sprintf("%s/children/%d", base, i)
}
