// Package cli is the rawedit command line: flags for every adjustment and
// subcommands that process, inspect and export images.
package cli

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"
	"unicode"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/anas-shakeel/go-rawedit/internal/adjustments"
	"github.com/anas-shakeel/go-rawedit/internal/codec"
	"github.com/anas-shakeel/go-rawedit/internal/editor"
	"github.com/anas-shakeel/go-rawedit/internal/observability"
)

type options struct {
	preset  string
	verbose bool
	workers int
	log     observability.Logger
}

// Execute runs the root command with os.Args
func Execute() error {
	return NewRootCommand().ExecuteContext(context.Background())
}

func NewRootCommand() *cobra.Command {
	opts := &options{log: observability.NopLogger{}}

	root := &cobra.Command{
		Use:          "rawedit",
		Short:        "Apply photographic adjustments to images",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			opts.log = observability.NewStdLogger(cmd.ErrOrStderr(), opts.verbose)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.preset, "preset", "", "JSON preset file; explicit adjustment flags override it")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output to stderr")
	flags.IntVar(&opts.workers, "workers", runtime.GOMAXPROCS(0), "row workers per image (1 disables parallelism)")
	addAdjustmentFlags(flags)

	root.AddCommand(
		newApplyCommand(opts),
		newHistogramCommand(opts),
		newPreviewCommand(opts),
		newInfoCommand(opts),
	)
	return root
}

// flagName turns "noiseReduction" into "noise-reduction"
func flagName(p adjustments.Param) string {
	var sb strings.Builder
	for _, r := range p.String() {
		if unicode.IsUpper(r) {
			sb.WriteByte('-')
			r = unicode.ToLower(r)
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func addAdjustmentFlags(flags *pflag.FlagSet) {
	for _, p := range adjustments.Params() {
		r := p.Range()
		usage := fmt.Sprintf("%s adjustment in [%g, %g]", p, r.Min, r.Max)
		if unit := p.Unit(); unit != "" {
			usage += " " + unit
		}
		if p.Inert() {
			usage += " (accepted, currently has no effect)"
		}
		flags.Float64(flagName(p), 0, usage)
	}
}

// Resolves the preset (if any) and then every adjustment flag the user set
func (o *options) settings(cmd *cobra.Command) (adjustments.Settings, error) {
	s := adjustments.Default()
	if o.preset != "" {
		var err error
		if s, err = adjustments.ReadPresetFile(o.preset); err != nil {
			return s, err
		}
	}

	flags := cmd.Flags()
	for _, p := range adjustments.Params() {
		name := flagName(p)
		if !flags.Changed(name) {
			continue
		}
		v, err := flags.GetFloat64(name)
		if err != nil {
			return s, err
		}
		if !p.Range().Contains(v) {
			o.log.Warn("adjustment out of range, clamping",
				observability.String("param", p.String()),
				observability.Float("value", v))
		}
		s.Set(p, v)
	}
	return s, nil
}

// Decodes filename and runs it through a fresh editor session
func (o *options) process(ctx context.Context, filename string, s adjustments.Settings) (*editor.Editor, string, error) {
	src, format, err := codec.ReadFile(filename)
	if err != nil {
		return nil, "", err
	}

	log := o.log.With(observability.String("file", filename))
	ed := editor.New(editor.WithLogger(log), editor.WithWorkers(o.workers))
	if err := ed.LoadImage(src); err != nil {
		ed.Close()
		return nil, "", fmt.Errorf("%s: %w", filename, err)
	}
	if _, err := ed.Apply(ctx, s); err != nil {
		ed.Close()
		return nil, "", fmt.Errorf("%s: %w", filename, err)
	}
	return ed, format, nil
}

func fileSize(filename string) int64 {
	info, err := os.Stat(filename)
	if err != nil {
		return 0
	}
	return info.Size()
}
