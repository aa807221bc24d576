// Package logsetup configures the standard logger. Import it for side
// effects from main packages.
package logsetup

import (
	"log"
	"os"
)

func init() {
	// journald adds its own timestamps
	if os.Getenv("JOURNAL_STREAM") != "" {
		log.SetFlags(0)
	}
}
