// Command vitalflux runs the VitalFlux dynamic widget service and its
// companion one-shot tools.
package main

import (
	"fmt"
	"os"
)

const version = "0.3.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
