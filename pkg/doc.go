// Package pkg provides the core libraries for scenetree.
//
// # Overview
//
// Scenetree turns JSON design document exports into visual element
// hierarchies. The pkg directory is organized into three main areas:
//
//  1. Domain logic (document parsing, hierarchy building)
//  2. Infrastructure (caching, fetching, persistence, configuration)
//  3. Output (structural diagrams, document re-export)
//
// # Architecture
//
// The typical data flow through scenetree:
//
//	JSON design export
//	         ↓
//	    [document] package (strict parse into a node tree)
//	         ↓
//	    [scene] package (depth-first build through an Environment)
//	         ↓
//	    element hierarchy + asynchronous image fills via [fetch]
//
// # Quick Start
//
// Parse a document and build it through the in-memory environment:
//
//	import (
//	    "context"
//	    "github.com/mlorenz/scenetree/pkg/document"
//	    "github.com/mlorenz/scenetree/pkg/scene"
//	    "github.com/mlorenz/scenetree/pkg/scene/memory"
//	)
//
//	root, err := document.Parse(data)
//	if err != nil {
//	    // err is a *document.MalformedDocumentError with the node path
//	}
//
//	env := memory.New()
//	builder := scene.NewBuilder(env)
//	if _, err := builder.Build(context.Background(), root, nil); err != nil {
//	    // err is a *scene.ElementCreationFailedError
//	}
//
// # Main Packages
//
// [document] - Strict, fail-fast parsing of design exports into node trees.
// Every parse error carries the JSON-pointer style path of the offending node.
//
// [scene] - The hierarchy builder. Walks a node tree depth-first pre-order and
// materializes it through an injected Environment, converting coordinates via
// a configurable convention. [scene/memory] is the recording environment used
// by the CLI, the HTTP API and tests.
//
// [fetch] - Image content fetching with caching, retries and a fire-and-forget
// dispatcher for fill requests.
//
// [cache] - Byte cache backends (file, Redis, null) and cache key derivation.
//
// [store] - MongoDB persistence for parsed documents.
//
// [render] - Graphviz node-link diagrams of document trees.
//
// [io] - Document import/export between files and node trees.
//
// [config] - TOML configuration shared by the CLI and the server.
//
// [errors] - Structured error codes for the CLI exit path and the HTTP API.
//
// [observability] - Hook interfaces for parse, build, fetch and cache events.
//
// [document]: https://pkg.go.dev/github.com/mlorenz/scenetree/pkg/document
// [scene]: https://pkg.go.dev/github.com/mlorenz/scenetree/pkg/scene
// [scene/memory]: https://pkg.go.dev/github.com/mlorenz/scenetree/pkg/scene/memory
// [fetch]: https://pkg.go.dev/github.com/mlorenz/scenetree/pkg/fetch
// [cache]: https://pkg.go.dev/github.com/mlorenz/scenetree/pkg/cache
// [store]: https://pkg.go.dev/github.com/mlorenz/scenetree/pkg/store
// [render]: https://pkg.go.dev/github.com/mlorenz/scenetree/pkg/render
// [io]: https://pkg.go.dev/github.com/mlorenz/scenetree/pkg/io
// [config]: https://pkg.go.dev/github.com/mlorenz/scenetree/pkg/config
// [errors]: https://pkg.go.dev/github.com/mlorenz/scenetree/pkg/errors
// [observability]: https://pkg.go.dev/github.com/mlorenz/scenetree/pkg/observability
package pkg
