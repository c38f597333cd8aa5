package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/anas-shakeel/go-rawedit/internal/codec"
	"github.com/anas-shakeel/go-rawedit/internal/observability"
)

type applyOptions struct {
	output  string
	outDir  string
	format  string
	quality int
	suffix  string
	jobs    int
}

func newApplyCommand(opts *options) *cobra.Command {
	ao := &applyOptions{}

	cmd := &cobra.Command{
		Use:   "apply INPUT...",
		Short: "Adjust images and write the results",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if ao.output != "" && len(args) > 1 {
				return errors.New("--output needs exactly one input; use --out-dir for several")
			}
			s, err := opts.settings(cmd)
			if err != nil {
				return err
			}

			outputs, formats, err := ao.destinations(args)
			if err != nil {
				return err
			}

			var outMu sync.Mutex
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(max(ao.jobs, 1))
			for i, input := range args {
				out, f := outputs[i], formats[i]
				g.Go(func() error {
					ed, _, err := opts.process(ctx, input, s)
					if err != nil {
						return err
					}
					defer ed.Close()

					err = codec.Save(out, func(w io.Writer) error {
						return ed.Export(w, f, ao.quality)
					})
					if err != nil {
						return fmt.Errorf("%s: %w", out, err)
					}
					opts.log.Info("wrote image",
						observability.String("input", input),
						observability.String("output", out),
						observability.String("format", string(f)))
					outMu.Lock()
					defer outMu.Unlock()
					fmt.Fprintln(cmd.OutOrStdout(), out)
					return nil
				})
			}
			return g.Wait()
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&ao.output, "output", "o", "", "output file (single input only)")
	flags.StringVar(&ao.outDir, "out-dir", "", "directory for outputs (default: next to each input)")
	flags.StringVarP(&ao.format, "format", "f", "", "output format: jpeg, png, gif, bmp, tiff (default: from output name, else input, else jpeg)")
	flags.IntVarP(&ao.quality, "quality", "q", codec.DefaultQuality, "JPEG quality 1-100")
	flags.StringVar(&ao.suffix, "suffix", "-edited", "suffix added to generated output names")
	flags.IntVarP(&ao.jobs, "jobs", "j", runtime.NumCPU(), "images processed concurrently")
	return cmd
}

// Resolves every output up front so that no two inputs write the same file
func (ao *applyOptions) destinations(inputs []string) ([]string, []codec.Format, error) {
	outputs := make([]string, len(inputs))
	formats := make([]codec.Format, len(inputs))
	seen := make(map[string]string, len(inputs))
	for i, input := range inputs {
		out, f, err := ao.destination(input)
		if err != nil {
			return nil, nil, err
		}
		key := filepath.Clean(out)
		if prev, ok := seen[key]; ok {
			return nil, nil, fmt.Errorf("%s and %s would both be written to %s", prev, input, out)
		}
		seen[key] = input
		outputs[i], formats[i] = out, f
	}
	return outputs, formats, nil
}

// Works out the output path and format for one input
func (ao *applyOptions) destination(input string) (string, codec.Format, error) {
	if ao.output != "" {
		if ao.format != "" {
			f, err := codec.ParseFormat(ao.format)
			return ao.output, f, err
		}
		f, err := codec.FormatFromPath(ao.output)
		if err != nil {
			return "", "", fmt.Errorf("%s: %w (use --format)", ao.output, err)
		}
		return ao.output, f, nil
	}

	f := codec.JPEG
	if ao.format != "" {
		var err error
		if f, err = codec.ParseFormat(ao.format); err != nil {
			return "", "", err
		}
	} else if inputFormat, err := codec.FormatFromPath(input); err == nil {
		f = inputFormat
	}

	dir := ao.outDir
	if dir == "" {
		dir = filepath.Dir(input)
	} else if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", err
	}

	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(dir, base+ao.suffix+"."+extension(f)), f, nil
}

func extension(f codec.Format) string {
	if f == codec.JPEG {
		return "jpg"
	}
	return string(f)
}
