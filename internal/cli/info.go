package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anas-shakeel/go-rawedit/internal/codec"
	"github.com/anas-shakeel/go-rawedit/internal/observability"
	"github.com/anas-shakeel/go-rawedit/internal/raster"
)

func newInfoCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "info INPUT",
		Short: "Print image metadata (adjustments are ignored)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			cfg, format, err := codec.ReadConfig(filename)
			if err != nil {
				return fmt.Errorf("%s: %w", filename, err)
			}
			opts.log.Debug("read header", observability.String("file", filename))

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Filename: \t%v\n", filename)
			fmt.Fprintf(w, "Format: \t%v\n", format)
			fmt.Fprintf(w, "Filesize: \t%v bytes\n", fileSize(filename))
			fmt.Fprintf(w, "Width: \t\t%v px\n", cfg.Width)
			fmt.Fprintf(w, "Height: \t%v px\n", cfg.Height)
			fmt.Fprintf(w, "PixelCount: \t%v pixels\n", cfg.Width*cfg.Height)
			fmt.Fprintf(w, "BufferSize: \t%v bytes\n", cfg.Width*cfg.Height*raster.BytesPerPixel)
			return nil
		},
	}
}
