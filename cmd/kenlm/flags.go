package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/kenlm/internal/config"
	"github.com/samcharles93/kenlm/internal/logger"
	"github.com/samcharles93/kenlm/internal/version"
	"github.com/samcharles93/kenlm/pkg/kenlm"
)

const (
	exitUsage  = 1
	exitIO     = 2
	exitFormat = 3
)

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "config file (default $" + config.EnvConfigPath + " or ~/.config/kenlm/config.yaml)",
		},
		&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error", Value: "warn"},
		&cli.StringFlag{Name: "log-format", Usage: "text, json or pretty", Value: "text"},
	}
}

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{Name: "json", Usage: "print a JSON report"}
}

// runEnv is the per-invocation state shared by subcommands.
type runEnv struct {
	cfg  config.Config
	log  logger.Logger
	out  io.Writer
	json bool
	mmap bool
}

func setup(cmd *cli.Command) (*runEnv, error) {
	var (
		cfg config.Config
		err error
	)
	if p := cmd.String("config"); p != "" {
		cfg, err = config.LoadFile(p)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, cli.Exit(fmt.Sprintf("error: %v", err), exitUsage)
	}

	level := cfg.LogLevel
	if level == "" || cmd.IsSet("log-level") {
		level = cmd.String("log-level")
	}
	format := cfg.LogFormat
	if format == "" || cmd.IsSet("log-format") {
		format = cmd.String("log-format")
	}

	out, errOut := stdout(cmd), stderr(cmd)

	env := &runEnv{
		cfg:  cfg,
		log:  logger.Build(errOut, format, level),
		out:  out,
		json: strings.EqualFold(cfg.Output, "json"),
		mmap: cfg.UseMmap(),
	}
	if cmd.IsSet("json") {
		env.json = cmd.Bool("json")
	}
	if cmd.IsSet("no-mmap") {
		env.mmap = !cmd.Bool("no-mmap")
	}
	env.log.Debug("kenlm", "command", cmd.Name, "version", version.String())
	return env, nil
}

func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func stderr(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}

func (e *runEnv) modelOptions() []kenlm.Option {
	var opts []kenlm.Option
	if !e.mmap {
		opts = append(opts, kenlm.WithoutMmap())
	}
	return opts
}

func (e *runEnv) writeJSON(v any) error {
	enc := json.NewEncoder(e.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
