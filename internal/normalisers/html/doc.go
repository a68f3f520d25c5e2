// Package html extracts titles and visible text from HTML documents using
// the golang.org/x/net/html tokenizer. Script, style and other hidden
// elements are skipped.
package html
