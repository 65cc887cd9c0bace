// Command pbapi calls one operation of the ProfitBricks cloud API.
package main

import (
	"os"

	"github.com/aidanlsb/pbapi/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
