// ABOUTME: Entry point for the spring-select CLI
// ABOUTME: Command-line spring search, interactive wizard, and backend access

package main

import (
	"fmt"
	"os"

	"github.com/Kevin-Gith/spring-design-calculator/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}
