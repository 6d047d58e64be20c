package icon

import (
	"os"
	"regexp"
	"strconv"
	"strings"
)

var envVar = regexp.MustCompile(`%([A-Za-z0-9_()]+)%`)

// ExpandEnv expands %NAME% references the way the Windows shell does.
// Unknown variables are left untouched.
func ExpandEnv(s string) string {
	return envVar.ReplaceAllStringFunc(s, func(m string) string {
		if v, ok := os.LookupEnv(m[1 : len(m)-1]); ok {
			return v
		}
		return m
	})
}

// ParseLocation splits a "file,index" icon location. A location without an
// index, or with a malformed one, refers to index 0.
func ParseLocation(loc string) (string, int) {
	loc = strings.TrimSpace(loc)
	i := strings.LastIndex(loc, ",")
	if i < 0 {
		return loc, 0
	}
	idx, err := strconv.Atoi(strings.TrimSpace(loc[i+1:]))
	if err != nil {
		return loc, 0
	}
	return strings.TrimSpace(loc[:i]), idx
}
