package cmd

import (
	"fmt"
)

// Version is stamped at build time with -ldflags.
var Version = "dev"

const banner = `
  _____            _____            _
 |  __ \          |  __ \          | |
 | |__) |_ _ _   _| |  | | ___  ___| | __
 |  ___/ _` + "`" + ` | | | | |  | |/ _ \/ __| |/ /
 | |  | (_| | |_| | |__| |  __/\__ \   <
 |_|   \__,_|\__, |_____/ \___||___/_|\_\
              __/ |
             |___/
`

func printBanner() {
	fmt.Printf("\x1b[34m%s\x1b[0m", banner)
	fmt.Printf("\x1b[32m  HR & Payroll Console - Version %s\x1b[0m\n\n", Version)
}
