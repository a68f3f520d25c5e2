// Package pathtitle derives document titles from file paths.
package pathtitle

import (
	"path/filepath"
	"strings"
)

var separators = strings.NewReplacer("_", " ", "-", " ")

// FromURI turns "/notes/todo_list.txt" into "todo list". Dot files keep
// their name, so "/home/.profile" becomes ".profile".
func FromURI(uri string) string {
	name := filepath.Base(uri)
	if name == "." || name == string(filepath.Separator) {
		return ""
	}
	if ext := filepath.Ext(name); ext != name {
		name = strings.TrimSuffix(name, ext)
	}
	return strings.Join(strings.Fields(separators.Replace(name)), " ")
}
