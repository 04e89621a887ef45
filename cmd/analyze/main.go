package main

// Analyze a resume from the command line:
//   go run ./cmd/analyze extract resume.pdf
//   go run ./cmd/analyze run resume.pdf

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
