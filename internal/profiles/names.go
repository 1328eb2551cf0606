package profiles

import "strings"

// IsProtected reports whether name refers to the default profile, which
// cannot be deleted or edited in place.
func IsProtected(name string) bool {
	return strings.EqualFold(strings.TrimSpace(name), DefaultName)
}

// SameName compares two profile names the way the service does:
// case-insensitively, ignoring surrounding whitespace.
func SameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// FileName returns the storage key for name: alphanumerics, spaces, '-' and
// '_' are kept, the rest dropped, then lower-cased with spaces as '_'.
func FileName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	return strings.ReplaceAll(strings.ToLower(b.String()), " ", "_") + ".json"
}

// Find returns the index of the summary whose name matches name, or -1.
func Find(list []Summary, name string) int {
	for i, s := range list {
		if SameName(s.Name, name) {
			return i
		}
	}
	return -1
}
