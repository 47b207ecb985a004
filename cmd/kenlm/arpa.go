package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/kenlm/pkg/arpa"
)

func arpaCmd() *cli.Command {
	var (
		filePath    string
		showRecords bool
	)

	return &cli.Command{
		Name:  "arpa",
		Usage: "Parse an ARPA text model and summarise its n-grams",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "file",
				Aliases:     []string{"f"},
				Usage:       "path to .arpa file",
				Destination: &filePath,
				Required:    true,
			},
			&cli.BoolFlag{Name: "records", Usage: "print every record", Destination: &showRecords},
			jsonFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_ = ctx

			env, err := setup(cmd)
			if err != nil {
				return err
			}

			m, err := arpa.ParseFile(filePath)
			if err != nil {
				if errors.Is(err, arpa.ErrSyntax) {
					return cli.Exit(fmt.Sprintf("error: %v", err), exitFormat)
				}
				return cli.Exit(fmt.Sprintf("error: could not read %s: %v", filePath, err), exitIO)
			}
			env.log.Debug("arpa parsed", "path", filePath, "order", m.Order())

			if env.json {
				return env.writeJSON(m)
			}

			_, _ = fmt.Fprintf(env.out, "ARPA: %s (order %d)\n", filePath, m.Order())
			for i, c := range m.Counts {
				_, _ = fmt.Fprintf(env.out, "  %d-grams: %d\n", i+1, c)
			}
			if !showRecords {
				return nil
			}
			for n := 1; n < m.Order(); n++ {
				for _, r := range m.NGrams(n) {
					_, _ = fmt.Fprintln(env.out, r)
				}
			}
			for _, r := range m.Highest {
				_, _ = fmt.Fprintln(env.out, r)
			}
			return nil
		},
	}
}
