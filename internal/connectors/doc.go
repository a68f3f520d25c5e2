// Package connectors holds the sources that feed documents into the index.
// The filesystem source is the only one; it enumerates, reads and watches
// local files.
package connectors
