package forms

import (
	"net/url"
	"strings"
)

// Snapshot captures the editable field values of a dialog.
type Snapshot map[string]string

// SnapshotFrom copies the named fields out of submitted form values.
func SnapshotFrom(values url.Values, fields ...string) Snapshot {
	s := make(Snapshot, len(fields))
	for _, field := range fields {
		s[field] = values.Get(field)
	}
	return s
}

// Dirty reports whether any field differs between original and submitted,
// ignoring surrounding whitespace. Fields absent from one side count as empty.
func Dirty(original, submitted Snapshot) bool {
	for field, value := range submitted {
		if strings.TrimSpace(value) != strings.TrimSpace(original[field]) {
			return true
		}
	}
	for field, value := range original {
		if _, ok := submitted[field]; !ok && strings.TrimSpace(value) != "" {
			return true
		}
	}
	return false
}

type CancelOutcome int

const (
	// CancelClose closes the dialog without saving.
	CancelClose CancelOutcome = iota
	// CancelConfirm re-renders the dialog asking to discard changes.
	CancelConfirm
)

// ResolveCancel decides what a cancel click does. A dirty dialog needs an
// explicit confirmation before it closes.
func ResolveCancel(original, submitted Snapshot, confirmed bool) CancelOutcome {
	if confirmed || !Dirty(original, submitted) {
		return CancelClose
	}
	return CancelConfirm
}
