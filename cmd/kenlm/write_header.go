package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/kenlm/pkg/lmbin"
)

func writeHeaderCmd() *cli.Command {
	var (
		outPath string
		force   bool
	)

	return &cli.Command{
		Name:  "write-header",
		Usage: "Write the reference sanity header (test fixtures)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "output path",
				Destination: &outPath,
				Required:    true,
			},
			&cli.BoolFlag{Name: "force", Usage: "overwrite an existing file", Destination: &force},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_ = ctx

			env, err := setup(cmd)
			if err != nil {
				return err
			}

			flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
			if force {
				flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
			}
			f, err := os.OpenFile(outPath, flags, 0o644)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), exitIO)
			}
			if err := lmbin.WriteSanityHeader(f); err != nil {
				_ = f.Close()
				return cli.Exit(fmt.Sprintf("error: write %s: %v", outPath, err), exitIO)
			}
			if err := f.Close(); err != nil {
				return cli.Exit(fmt.Sprintf("error: close %s: %v", outPath, err), exitIO)
			}

			env.log.Info("wrote sanity header", "path", outPath, "bytes", lmbin.SanityHeaderSize)
			return nil
		},
	}
}
