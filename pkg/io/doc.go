// Package io provides file and stream import/export for design documents.
//
// # Import
//
// Use [ImportDocument] to parse a design export from a file path ("-" reads
// stdin), or [document.ParseReader] directly for arbitrary readers. Import
// surfaces the parser's errors unchanged: a malformed document fails with a
// document.MalformedDocumentError locating the offending value.
//
// # Export
//
// Use [ExportDocument] or [WriteDocument] to serialize a parsed tree back to
// the document format. The output is the canonical schema (name, type, x, y,
// width, height, optional source/text/children) and re-imports identically;
// fields the parser ignored on import are not preserved.
package io
