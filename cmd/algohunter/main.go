// Command algohunter searches random Algorand accounts for vanity addresses.
package main

import (
	"os"

	"github.com/Amr-9/algohunter/internal/cli"
)

var version = "1.0.0"

func main() {
	cli.Version = version
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
