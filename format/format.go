// Package format renders a tensor.Tensor as bracket-nested, human-readable
// text, driven by iter.Informed's dimension-enter/exit/value event stream
// rather than re-deriving nesting structure from shape and counters at the
// call site.
package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/itohio/tensorgraph/iter"
	"github.com/itohio/tensorgraph/tensor"
)

// String renders t as nested brackets, e.g. "[[1, 2], [3, 4]]".
func String(t tensor.Tensor) string {
	var b strings.Builder
	Print(&b, t)
	return b.String()
}

// Print writes t's bracket-nested rendering to w.
func Print(w io.Writer, t tensor.Tensor) {
	data := t.Data()
	data.Storage.WithRead(func(buf []float64) {
		walk := iter.NewInformed(buf, data.Layout)
		pendingComma := false

		for {
			step, ok := walk.Next()
			if !ok {
				break
			}
			switch step.Event {
			case iter.EnterDimension:
				if pendingComma {
					fmt.Fprint(w, ", ")
				}
				fmt.Fprint(w, "[")
				pendingComma = false
			case iter.ExitDimension:
				fmt.Fprint(w, "]")
				pendingComma = true
			case iter.Value:
				if pendingComma {
					fmt.Fprint(w, ", ")
				}
				fmt.Fprint(w, formatValue(step.Value))
				pendingComma = true
			}
		}
	})
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
