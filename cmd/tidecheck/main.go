// Command tidecheck answers from the terminal whether the next low tide is
// low enough for tidepooling.
package main

import (
	"os"
	_ "time/tzdata"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
