package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/anas-shakeel/go-rawedit/internal/histogram"
	"github.com/anas-shakeel/go-rawedit/internal/utils"
)

var channelColors = map[histogram.Channel][3]int{
	histogram.Luminance: {200, 200, 200},
	histogram.Red:       {220, 60, 60},
	histogram.Green:     {60, 200, 60},
	histogram.Blue:      {70, 110, 230},
}

func newHistogramCommand(opts *options) *cobra.Command {
	var columns, rows int

	cmd := &cobra.Command{
		Use:   "histogram INPUT",
		Short: "Print the per-channel histogram of an adjusted image",
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

			h, err := ed.Histogram()
			if err != nil {
				return err
			}
			printHistogram(cmd.OutOrStdout(), h, columns, rows)
			return nil
		},
	}
	cmd.Flags().IntVar(&columns, "columns", 64, "chart width in columns (divides 256)")
	cmd.Flags().IntVar(&rows, "rows", 6, "chart height in rows per channel")
	return cmd
}

// Groups the 256 bins into columns, keeping the largest bin of each group so
// spikes stay visible.
func columnHeights(h *histogram.Histogram, c histogram.Channel, columns int, height float64) []float64 {
	scaled := h.Scaled(c, height)
	per := histogram.Bins / columns
	out := make([]float64, columns)
	for i, v := range scaled {
		col := min(i/per, columns-1)
		out[col] = max(out[col], v)
	}
	return out
}

func printHistogram(w io.Writer, h *histogram.Histogram, columns, rows int) {
	columns = min(max(columns, 1), histogram.Bins)
	rows = max(rows, 1)

	for _, c := range histogram.Channels {
		rgb := channelColors[c]
		heights := columnHeights(h, c, columns, float64(rows))

		fmt.Fprintf(w, "%-10s total=%d mean=%.1f peak=%d\n", c, h.Total(c), h.Mean(c), h.Peak())
		for row := rows; row > 0; row-- {
			var sb strings.Builder
			for _, v := range heights {
				if v >= float64(row)-0.5 {
					sb.WriteString(utils.ColoredBlock(" ", rgb[0], rgb[1], rgb[2]))
				} else {
					sb.WriteByte(' ')
				}
			}
			fmt.Fprintln(w, sb.String())
		}
	}
}
