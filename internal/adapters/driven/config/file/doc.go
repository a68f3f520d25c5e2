// Package file provides the TOML configuration store for xapctl.
//
// Keys use dot notation ("index.stemmer") and are written back as nested
// TOML tables, so the file stays readable when edited by hand:
//
//	[engine]
//	backend = "embedded"
//
//	[index]
//	path = "/home/me/.xapctl/index"
//	stemmer = "english"
package file
