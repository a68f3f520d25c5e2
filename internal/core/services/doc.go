// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters) and the xapian binding layer.
//
// Document layout written by IndexService and read by the other services:
//
//	data        the file path
//	value 0     the file path
//	value 1     modification time, RFC 3339 in UTC
//	Q<path>     unique term used to replace or delete the document
//	S<word>     title words
//	<word>      body words, stemmed with the configured stemmer
package services
