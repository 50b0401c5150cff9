//go:build debug

package debug

import "log"

// Printf logs parser internals.  Build with -tags debug to enable it.
func Printf(msg string, args ...any) {
	log.Printf("jcs: "+msg, args...)
}

const On = true
