// Command intl validates, renders and serves ICU message catalogs.
package main

import (
	"os"

	// Embedded zone data for INTL_TIME_ZONE on hosts without zoneinfo.
	_ "time/tzdata"
)

func main() {
	if err := execute(newRootCmd()); err != nil {
		os.Exit(1)
	}
}
