// Command donut lays out category amounts on a ring chart and prints the arcs.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
