// CLI entry point for the agricultural decision-support engine.
package main

import (
	"os"

	"github.com/agriconnect/agrointel/internal/interfaces/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
