// Package filesystem implements driven.FileSource over the local disk.
//
// Hidden entries (any path component starting with a dot, relative to the
// root being indexed) are skipped. MIME types come from a table of source
// and markup extensions, then the standard mime registry.
package filesystem
