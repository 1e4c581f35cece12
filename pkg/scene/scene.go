package scene

import (
	"context"

	"github.com/mlorenz/scenetree/pkg/document"
)

// Handle is an opaque reference to a visual primitive created by the host
// environment. The builder only ever passes handles back to the environment
// that produced them; it never inspects or compares them.
type Handle any

// Point is a position in the target environment's coordinate space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is an element extent in pixels. Extents are never negative; zero is a
// valid hidden/placeholder size.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ElementSpec carries everything the environment needs to create one element.
// Position has already been converted to the target convention.
type ElementSpec struct {
	Name     string `json:"name"`
	Size     Size   `json:"size"`
	Position Point  `json:"position"`

	// Text is the content for text elements, empty string when the source
	// document omitted it. Unused for other kinds.
	Text string `json:"text,omitempty"`
}

// Environment is the capability surface the builder uses to materialize a
// hierarchy. Implementations adapt a concrete rendering or runtime system;
// see package scene/memory for an in-memory implementation used by the CLI,
// the HTTP API and tests.
type Environment interface {
	// CreateElement allocates a visual primitive of the given kind.
	// A returned error aborts the subtree being built.
	CreateElement(ctx context.Context, kind document.Kind, spec ElementSpec) (Handle, error)

	// AttachChild parents child under parent. Attachment order follows
	// document order and defines z-order.
	AttachChild(parent, child Handle) error

	// FillImage schedules a best-effort, asynchronous content fill for an
	// image element. It must not block and must swallow fetch failures;
	// a failed fill only affects that element's visual content.
	FillImage(handle Handle, source string)
}

// Convention converts a design-space position (top-left origin, Y down) into
// the coordinate space of the target environment.
type Convention func(x, y float64) Point

// YUpCentered converts to a Y-up, center-anchored target space by negating Y.
// This is the default convention.
func YUpCentered(x, y float64) Point { return Point{X: x, Y: -y} }

// YDownTopLeft keeps design-space coordinates unchanged for targets that
// share the document's convention.
func YDownTopLeft(x, y float64) Point { return Point{X: x, Y: y} }

// ConventionNamed resolves a convention by its configuration name
// ("y-up-centered" or "y-down-top-left"). The boolean reports whether the
// name is known.
func ConventionNamed(name string) (Convention, bool) {
	switch name {
	case "y-up-centered":
		return YUpCentered, true
	case "y-down-top-left":
		return YDownTopLeft, true
	default:
		return nil, false
	}
}
