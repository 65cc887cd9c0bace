// Command pbcli is the interactive ProfitBricks shell. It is equivalent to
// "pbapi shell".
package main

import (
	"os"

	"github.com/aidanlsb/pbapi/internal/cli"
)

func main() {
	os.Exit(cli.ExecuteShell())
}
