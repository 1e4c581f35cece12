// Package document defines the design-document model and its parser.
//
// A design document is a JSON export from a UI-design tool describing a nested
// layout of groups, images and text blocks. The package converts such an
// export into an immutable tree of [Node] values via [Parse], validating
// required fields inline during a single depth-first descent.
//
// # Schema
//
// Each object in the document has the shape:
//
//	{
//	  "name": "Root",              // required
//	  "type": "group",             // required; "group" | "image" | "text",
//	                               // unrecognized strings fall back to group
//	  "x": 0, "y": 0,              // required, design-space pixels
//	  "width": 100, "height": 50,  // required, non-negative
//	  "source": "bg.png",          // optional, image nodes
//	  "text": "Hi",                // optional, text nodes
//	  "children": [ ... ]          // optional, ordered, default empty
//	}
//
// Design space has a top-left origin with Y increasing downward. Converting to
// other conventions is the concern of package scene, not of the model.
//
// # Failure policy
//
// Parsing is fail-fast and all-or-nothing: the first missing or mistyped field
// anywhere in the tree aborts the parse with a [MalformedDocumentError]
// carrying the offending value's path. There is no post-hoc validation pass
// and no partially valid tree.
package document
