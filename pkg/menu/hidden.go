package menu

import (
	"os"
	"strings"
)

// Excluded reports whether name carries the "$" suppression marker.
func Excluded(name string) bool {
	return strings.HasPrefix(name, "$")
}

// Hidden reports whether fi is hidden: a dot name, or the platform's hidden
// attribute.
func Hidden(fi os.FileInfo) bool {
	return strings.HasPrefix(fi.Name(), ".") || hiddenAttr(fi)
}

// Visible is the filter both the builder and the fingerprint apply.
func Visible(fi os.FileInfo) bool {
	return !Excluded(fi.Name()) && !Hidden(fi)
}
