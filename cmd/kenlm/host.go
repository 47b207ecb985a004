package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"runtime"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/kenlm/pkg/lmbin"
)

// hostReport describes the properties of this machine that end up in a
// binary model's sanity header.
type hostReport struct {
	GoVersion   string `json:"go_version"`
	GoOS        string `json:"go_os"`
	GoArch      string `json:"go_arch"`
	ByteOrder   string `json:"byte_order"`
	WordBits    int    `json:"word_bits"`
	HeaderBytes int    `json:"header_bytes"`
	Header      string `json:"header_hex"`
}

func hostCmd() *cli.Command {
	return &cli.Command{
		Name:  "host",
		Usage: "Show the host layout that binary models must match",
		Flags: []cli.Flag{jsonFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_ = ctx

			env, err := setup(cmd)
			if err != nil {
				return err
			}

			ref := lmbin.ReferenceBytes()
			r := hostReport{
				GoVersion:   runtime.Version(),
				GoOS:        runtime.GOOS,
				GoArch:      runtime.GOARCH,
				ByteOrder:   lmbin.HostByteOrder(),
				WordBits:    strconv.IntSize,
				HeaderBytes: len(ref),
				Header:      hex.EncodeToString(ref[:]),
			}
			if env.json {
				return env.writeJSON(r)
			}

			_, _ = fmt.Fprintf(env.out, "go:          %s %s/%s\n", r.GoVersion, r.GoOS, r.GoArch)
			_, _ = fmt.Fprintf(env.out, "byte order:  %s\n", r.ByteOrder)
			_, _ = fmt.Fprintf(env.out, "word bits:   %d\n", r.WordBits)
			_, _ = fmt.Fprintf(env.out, "header:      %d bytes\n", r.HeaderBytes)
			_, _ = fmt.Fprint(env.out, hex.Dump(ref[:]))
			return nil
		},
	}
}
