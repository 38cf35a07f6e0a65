package logging

import (
	"os"
)

// DebugEnabled returns true if debug mode is enabled via the TL_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv("TL_DEBUG") != ""
}
