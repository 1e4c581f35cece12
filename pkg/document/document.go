package document

// Kind identifies the visual role of a node in a design document.
type Kind int

const (
	// KindGroup is a plain container with no visual fill of its own.
	// Unrecognized or absent type strings in the source document map here.
	KindGroup Kind = iota
	// KindImage is an element backed by an optional image source.
	KindImage
	// KindText is an element carrying a text run.
	KindText
)

// kindNames maps Kind values to their document type strings.
var kindNames = map[Kind]string{
	KindGroup: "group",
	KindImage: "image",
	KindText:  "text",
}

// kindFromString maps document type strings to Kind values.
// Strings not present here fall back to KindGroup during parsing.
var kindFromString = map[string]Kind{
	"group": KindGroup,
	"image": KindImage,
	"text":  KindText,
}

// String returns the document type string for the kind ("group", "image",
// "text"). Unknown values render as "group", matching the parser's fallback.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "group"
}

// KindFromString converts a document type string to a Kind.
// Unrecognized strings return KindGroup, preserving the source format's
// lenient typing.
func KindFromString(s string) Kind {
	if k, ok := kindFromString[s]; ok {
		return k
	}
	return KindGroup
}

// Node is one element of a parsed design tree.
//
// Coordinates are in design space: top-left origin, Y increasing downward,
// units are pixels. Width and Height are never negative; zero extents are
// valid and denote hidden or placeholder elements.
//
// A Node is built fully during parsing and is not mutated afterwards. Children
// are owned exclusively by their parent; the tree is acyclic by construction.
type Node struct {
	Name   string // display identifier, not unique among siblings
	Kind   Kind
	X, Y   float64
	Width  float64
	Height float64

	// Source is the image location for KindImage nodes. Empty means the
	// element has no visual fill.
	Source string

	// Text is the content for KindText nodes. Empty when absent.
	Text string

	// Children holds child nodes in document order. Order defines traversal
	// and z-order and is preserved exactly as encountered in the source.
	Children []*Node
}

// Walk visits n and every descendant in depth-first pre-order, matching the
// order in which the hierarchy builder creates elements. If fn returns false
// the walk stops immediately.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// Count returns the number of nodes in the tree rooted at n.
func (n *Node) Count() int {
	if n == nil {
		return 0
	}
	total := 0
	n.Walk(func(*Node) bool {
		total++
		return true
	})
	return total
}

// Depth returns the height of the tree rooted at n. A leaf has depth 1;
// a nil node has depth 0.
func (n *Node) Depth() int {
	if n == nil {
		return 0
	}
	deepest := 0
	for _, c := range n.Children {
		if d := c.Depth(); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}
