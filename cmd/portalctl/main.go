// Package main is the entry point for the portalctl admin CLI.
package main

import (
	"os"

	"github.com/kdevnel/device-portal/cmd/portalctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
