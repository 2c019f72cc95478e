package envutil

import (
	"os"
	"strings"
)

// String returns the trimmed value of name, or def when it is unset or blank.
func String(name, def string) string {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	return v
}
