package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	err := newApp().Run(context.Background(), os.Args)
	if err == nil {
		return
	}
	if msg := err.Error(); msg != "" {
		_, _ = fmt.Fprintln(os.Stderr, msg)
	}
	var ec cli.ExitCoder
	if errors.As(err, &ec) {
		os.Exit(ec.ExitCode())
	}
	os.Exit(exitUsage)
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "kenlm",
		Usage: "Validate binary KenLM models and inspect ARPA files",
		Flags: globalFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			checkCmd(),
			inspectCmd(),
			arpaCmd(),
			writeHeaderCmd(),
			hostCmd(),
			versionCmd(),
		},
		// Exit codes are handled in main so the app can run inside tests.
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
}
