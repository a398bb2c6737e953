package cb64

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// WriteLayout renders the lane assignment of data, one line per row: the
// gate, both lane cells, the table row the tuple is looked up at and the
// output character. Pad rows show the '=' appended after the lookups.
func WriteLayout(w io.Writer, data []byte) error {
	s, err := NewShape(len(data))
	if err != nil {
		return err
	}
	lanes, err := AssignLanes(data)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "row\tq\tencoded_char\tbits_val\ttable_row\toutput")
	for row := range s.Rows() {
		char := lanes.EncodedChars[row].(int)
		bits := lanes.BitsVals[row].(int)
		if row < s.Num6BitChunks {
			fmt.Fprintf(tw, "%d\t1\t%d\t%d\t%d\t%c\n", row, char, bits, tableRow(uint64(char), uint64(bits)), char)
			continue
		}
		fmt.Fprintf(tw, "%d\t0\t%d\t%d\t%d\t%c\n", row, char, bits, 0, PaddingChar)
	}
	fmt.Fprintf(tw, "\n%s\n", s)
	return tw.Flush()
}
