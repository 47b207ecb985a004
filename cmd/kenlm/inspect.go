package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/kenlm/pkg/lmbin"
)

type headerView struct {
	Path           string  `json:"path"`
	Magic          string  `json:"magic"`
	FloatZero      float32 `json:"float_zero"`
	FloatOne       float32 `json:"float_one"`
	FloatMinusHalf float32 `json:"float_minus_half"`
	WordIdxOne     uint32  `json:"word_idx_one"`
	WordIdxMax     uint32  `json:"word_idx_max"`
	UsizeSanity    uint64  `json:"usize_sanity"`
	Valid          bool    `json:"valid"`
	Error          string  `json:"error,omitempty"`
}

func inspectCmd() *cli.Command {
	var modelPath string

	return &cli.Command{
		Name:  "inspect",
		Usage: "Decode the sanity header of a model without trusting it",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "model",
				Aliases:     []string{"m"},
				Usage:       "path to binary model",
				Destination: &modelPath,
				Required:    true,
			},
			jsonFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_ = ctx

			env, err := setup(cmd)
			if err != nil {
				return err
			}

			raw, err := readPrefix(modelPath)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: could not read %s: %v", modelPath, err), exitIO)
			}
			hdr, _ := lmbin.DecodeSanityHeader(raw)
			_, vErr := lmbin.ReadSanityHeader(bytes.NewReader(raw))

			view := headerView{
				Path:           modelPath,
				Magic:          string(bytes.TrimRight(hdr.Magic[:], "\x00")),
				FloatZero:      hdr.FloatZero,
				FloatOne:       hdr.FloatOne,
				FloatMinusHalf: hdr.FloatMinusHalf,
				WordIdxOne:     hdr.WordIdxOne,
				WordIdxMax:     hdr.WordIdxMax,
				UsizeSanity:    hdr.UsizeSanity,
				Valid:          vErr == nil,
			}
			if vErr != nil {
				view.Error = vErr.Error()
			}

			if env.json {
				if err := env.writeJSON(view); err != nil {
					return err
				}
			} else {
				printHeader(env.out, view)
			}
			if vErr != nil {
				return cli.Exit("", exitFormat)
			}
			return nil
		},
	}
}

func readPrefix(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	buf := make([]byte, lmbin.SanityHeaderSize)
	if _, err := io.ReadFull(f, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func printHeader(w io.Writer, v headerView) {
	_, _ = fmt.Fprintf(w, "Model: %s\n", v.Path)
	_, _ = fmt.Fprintf(w, "  magic            %q\n", v.Magic)
	_, _ = fmt.Fprintf(w, "  float_zero       %v (%#08x)\n", v.FloatZero, math.Float32bits(v.FloatZero))
	_, _ = fmt.Fprintf(w, "  float_one        %v (%#08x)\n", v.FloatOne, math.Float32bits(v.FloatOne))
	_, _ = fmt.Fprintf(w, "  float_minus_half %v (%#08x)\n", v.FloatMinusHalf, math.Float32bits(v.FloatMinusHalf))
	_, _ = fmt.Fprintf(w, "  word_idx_one     %d\n", v.WordIdxOne)
	_, _ = fmt.Fprintf(w, "  word_idx_max     %#x\n", v.WordIdxMax)
	_, _ = fmt.Fprintf(w, "  usize_sanity     %d\n", v.UsizeSanity)
	if v.Valid {
		_, _ = fmt.Fprintln(w, "Status: valid")
		return
	}
	_, _ = fmt.Fprintf(w, "Status: invalid: %s\n", v.Error)
}
