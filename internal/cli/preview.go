package cli

import (
	"fmt"
	"image"
	"io"

	"github.com/spf13/cobra"

	"github.com/anas-shakeel/go-rawedit/internal/utils"
)

func newPreviewCommand(opts *options) *cobra.Command {
	var original bool

	cmd := &cobra.Command{
		Use:   "preview INPUT",
		Short: "Print an adjusted image in the terminal (use for small images only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.settings(cmd)
			if err != nil {
				return err
			}
			ed, _, err := opts.process(cmd.Context(), args[0], s)
			if err != nil {
				return err
			}
			defer ed.Close()

			img, err := ed.Snapshot()
			if original {
				img, err = ed.Original()
			}
			if err != nil {
				return err
			}
			printImage(cmd.OutOrStdout(), img)
			return nil
		},
	}
	cmd.Flags().BoolVar(&original, "original", false, "print the unedited image instead")
	return cmd
}

// Print the image in terminal, two spaces per pixel
func printImage(w io.Writer, img *image.NRGBA) {
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			p := img.NRGBAAt(x, y)
			fmt.Fprint(w, utils.ColoredBlock("  ", int(p.R), int(p.G), int(p.B)))
		}
		fmt.Fprint(w, "\n")
	}
}
