// Executable tableproof command-line tool. See README for
// usage instructions.
package main

import (
	"github.com/n-widmer/tableproof/cli"
	"github.com/n-widmer/tableproof/cli/tableproof/internal/cmd"
)

func main() {
	cli.Execute(cmd.RootCmd)
}
