package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/kenlm/internal/logger"
	"github.com/samcharles93/kenlm/pkg/kenlm"
	"github.com/samcharles93/kenlm/pkg/lmbin"
)

type checkReport struct {
	Path   string `json:"path"`
	OK     bool   `json:"ok"`
	Kind   string `json:"kind,omitempty"`
	Error  string `json:"error,omitempty"`
	Offset *int   `json:"offset,omitempty"`
	Field  string `json:"field,omitempty"`
	Reason string `json:"reason,omitempty"`
}

func checkCmd() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Validate the sanity header of binary models",
		ArgsUsage: "MODEL...",
		Flags: []cli.Flag{
			jsonFlag(),
			&cli.BoolFlag{Name: "map", Usage: "also load the whole model, as the engine would"},
			&cli.BoolFlag{Name: "no-mmap", Usage: "with --map, read the model instead of mapping it"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			env, err := setup(cmd)
			if err != nil {
				return err
			}
			paths := cmd.Args().Slice()
			if len(paths) == 0 {
				return cli.Exit("error: check needs at least one model path", exitUsage)
			}

			reports := make([]checkReport, 0, len(paths))
			code := 0
			for _, p := range paths {
				r := checkOne(ctx, env, p, cmd.Bool("map"))
				switch r.Kind {
				case "io":
					code = max(code, exitIO)
				case "format":
					code = max(code, exitFormat)
				}
				reports = append(reports, r)
			}

			if env.json {
				if err := env.writeJSON(reports); err != nil {
					return err
				}
			} else {
				for _, r := range reports {
					printCheck(env, r)
				}
			}

			if code != 0 {
				return cli.Exit("", code)
			}
			return nil
		},
	}
}

func checkOne(ctx context.Context, env *runEnv, path string, full bool) checkReport {
	var err error
	if full {
		var m *kenlm.Model
		m, err = kenlm.Open(logger.WithContext(ctx, env.log), path, env.modelOptions()...)
		if err == nil {
			err = m.Close()
		}
	} else {
		_, err = lmbin.CheckFile(path)
	}
	if err == nil {
		env.log.Info("check ok", "path", path, "full", full)
		return checkReport{Path: path, OK: true}
	}
	env.log.Error("check failed", "path", path, "full", full, "error", err)

	r := checkReport{Path: path, Error: err.Error(), Kind: "io"}
	if lmbin.IsSanityFormat(err) {
		r.Kind = "format"
		var fe *lmbin.FormatError
		if errors.As(err, &fe) {
			off := fe.Offset
			r.Offset = &off
			r.Field = fe.Field
			r.Reason = fe.Reason
		}
	}
	return r
}

func printCheck(env *runEnv, r checkReport) {
	switch r.Kind {
	case "":
		_, _ = fmt.Fprintf(env.out, "OK    %s\n", r.Path)
	case "format":
		if r.Offset == nil {
			_, _ = fmt.Fprintf(env.out, "FAIL  %s: file exists but is not a compatible model: %s\n", r.Path, r.Error)
			return
		}
		_, _ = fmt.Fprintf(env.out, "FAIL  %s: file exists but is not a compatible model: %s (byte %d, %s)\n",
			r.Path, r.Reason, *r.Offset, r.Field)
	default:
		_, _ = fmt.Fprintf(env.out, "FAIL  %s: could not read file: %s\n", r.Path, r.Error)
	}
}
