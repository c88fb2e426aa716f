// cmd/tools/careerctl/main.go
package main

import (
	"fmt"
	"os"
)

// Actual version can be specified in build command.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
