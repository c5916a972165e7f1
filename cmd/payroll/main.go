// Package main provides the payroll CLI.
package main

import (
	"os"

	"github.com/mesh-intelligence/payroll/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
