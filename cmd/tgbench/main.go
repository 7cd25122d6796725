// Command tgbench exercises the tensor engine end to end: by default it
// times a repeated chained scalar-op workload; with -demo it instead builds
// a fusion-heavy promise chain, materializes it and prints the result.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/itohio/tensorgraph/format"
	"github.com/itohio/tensorgraph/gen"
	"github.com/itohio/tensorgraph/internal/config"
	"github.com/itohio/tensorgraph/internal/xlog"
)

func main() {
	configPath := flag.String("config", "", "path to an EngineConfig YAML file (optional)")
	size := flag.Int("n", 1_000_000, "element count for the timing workload")
	iters := flag.Int("iters", 10, "number of add-then-multiply scalar op pairs chained before materializing")
	demo := flag.Bool("demo", false, "print the arange/fusion demo instead of timing")

	flag.Parse()

	if *configPath != "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "tgbench: loading config: %v\n", err)
			os.Exit(1)
		}
		if err := cfg.Apply(); err != nil {
			fmt.Fprintf(os.Stderr, "tgbench: applying config: %v\n", err)
			os.Exit(1)
		}
	}

	if *demo {
		runDemo()
		return
	}

	runTimingWorkload(*size, *iters)
}

// runDemo reproduces the arange/fusion end-to-end scenario: twenty chained
// scalar additions collapse into a single fused Sum before a trailing
// scalar Mul, and only then does the graph materialize.
func runDemo() {
	t := gen.Arange(12)
	p := t.AsPromise()
	for i := 0; i < 20; i++ {
		p = p.AddScalar(float64(i))
	}
	out := p.MulScalar(2.0).Materialize()

	xlog.Info("tgbench.demo.materialized", "shape", out.Shape())
	fmt.Println(format.String(out))
}

// runTimingWorkload chains iters add-then-multiply scalar op pairs over an
// n-element tensor and reports materialize wall time. Because every op in
// the chain is a ScalarOp, fusion folds the whole chain into one
// FusedScalar node before the timer's single Materialize() runs it: one
// in-place pass per op over a single buffer, with no intermediate buffers.
func runTimingWorkload(n, iters int) {
	base := gen.Arange(n)
	p := base.AsPromise()
	for i := 0; i < iters; i++ {
		p = p.AddScalar(1).MulScalar(1.0000001)
	}

	start := time.Now()
	out := p.Materialize()
	elapsed := time.Since(start)

	xlog.Info("tgbench.timing.done",
		"elements", n,
		"chained_pairs", iters,
		"elapsed", elapsed.String(),
		"first", out.At(0),
		"last", out.At(int32(n-1)),
	)
}
