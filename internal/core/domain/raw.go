package domain

import "time"

// RawDocument represents file bytes awaiting normalisation.
type RawDocument struct {
	// URI is the original location (file path).
	URI string

	// MIMEType is the content type (e.g., "text/markdown").
	MIMEType string

	// Content is the raw bytes.
	Content []byte

	// ModTime is the file's last modification time.
	ModTime time.Time
}

// ChangeType represents the type of file change.
type ChangeType int

const (
	// ChangeCreated indicates a new file.
	ChangeCreated ChangeType = iota

	// ChangeUpdated indicates a modified file.
	ChangeUpdated

	// ChangeDeleted indicates a removed file.
	ChangeDeleted
)

// String returns the string representation.
func (c ChangeType) String() string {
	switch c {
	case ChangeCreated:
		return "created"
	case ChangeUpdated:
		return "updated"
	case ChangeDeleted:
		return "deleted"
	default:
		return unknownDescription
	}
}

// FileChange is a change event observed while watching a directory.
type FileChange struct {
	// Type is the kind of change.
	Type ChangeType

	// Path is the affected file.
	Path string
}

// IndexReport summarises an indexing run.
type IndexReport struct {
	// Indexed counts documents added or replaced.
	Indexed int

	// Skipped lists files that could not be indexed, with the reason.
	Skipped map[string]string

	// DocCount is the database size after the run.
	DocCount uint32
}
