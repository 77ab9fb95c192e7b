// Command bct translates assembly descriptions into Boogie programs.
package main

import (
	"errors"
	"fmt"
	"os"

	_ "github.com/tliron/commonlog/simple"

	"github.com/roach88/bct/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	var exitErr *cli.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		// Commands print their own failures as ExitError. Usage errors and
		// anything else are printed here, since cobra's printing is silenced.
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(cli.GetExitCode(err))
}
