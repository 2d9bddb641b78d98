package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Garsondee/Ball-Fuse/internal/game"
	"github.com/Garsondee/Ball-Fuse/internal/headless"
)

type reportOptions struct {
	runs      int
	maxSteps  int
	seedBase  int64
	seedStep  int64
	width     float64
	height    float64
	dropEvery int
	pattern   string
	grow      bool
}

func main() {
	var o reportOptions
	flag.IntVar(&o.runs, "runs", 5, "number of headless rounds")
	flag.IntVar(&o.maxSteps, "steps", 60*60*10, "step cap per round")
	flag.Int64Var(&o.seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&o.seedStep, "seed-step", 1, "seed increment between runs")
	flag.Float64Var(&o.width, "width", 540, "playfield width")
	flag.Float64Var(&o.height, "height", 960, "playfield height")
	flag.IntVar(&o.dropEvery, "drop-every", 30, "steps between auto-player drops")
	flag.StringVar(&o.pattern, "pattern", "random", "pointer pattern: random, sweep, center")
	flag.BoolVar(&o.grow, "block-growing", false, "block merges while a ball grows")
	flag.Parse()

	if err := validate(o); err != nil {
		fmt.Println("error:", err)
		os.Exit(2)
	}
	pattern, _ := pointerPattern(o.pattern)

	fmt.Printf("=== Headless Round Report ===\n")
	fmt.Printf("runs=%d steps=%d size=%.0fx%.0f drop_every=%d pattern=%s seed_base=%d seed_step=%d\n\n",
		o.runs, o.maxSteps, o.width, o.height, o.dropEvery, o.pattern, o.seedBase, o.seedStep)

	all := make([]headless.RoundStats, 0, o.runs)
	for i := 0; i < o.runs; i++ {
		seed := o.seedBase + int64(i)*o.seedStep
		rs := runRound(i+1, seed, o, pattern)
		all = append(all, rs)
		fmt.Print(headless.FormatRun(rs))
		fmt.Println()
	}
	fmt.Print(headless.FormatAggregate(headless.AggregateRounds(all)))
}

func validate(o reportOptions) error {
	switch {
	case o.runs <= 0:
		return fmt.Errorf("-runs must be > 0")
	case o.maxSteps <= 0:
		return fmt.Errorf("-steps must be > 0")
	case o.width <= 0 || o.height <= 0:
		return fmt.Errorf("-width and -height must be > 0")
	case o.dropEvery <= 0:
		return fmt.Errorf("-drop-every must be > 0")
	}
	if _, ok := pointerPattern(o.pattern); !ok {
		return fmt.Errorf("unsupported pattern %q (supported: random, sweep, center)", o.pattern)
	}
	return nil
}

func pointerPattern(name string) (headless.PointerPattern, bool) {
	switch name {
	case "random":
		return headless.RandomPointer, true
	case "sweep":
		return headless.SweepPointer, true
	case "center":
		return headless.CenterPointer, true
	}
	return nil, false
}

func runRound(run int, seed int64, o reportOptions, pattern headless.PointerPattern) headless.RoundStats {
	ts := headless.NewTestSim(
		headless.WithSize(o.width, o.height),
		headless.WithSeed(seed),
		headless.WithDropEvery(o.dropEvery),
		headless.WithPointerPattern(pattern),
		headless.WithConfig(func(c *game.Config) {
			c.BlockMergingWhenGrowing = o.grow
			c.Debris = false
		}),
	)
	ts.RunUntilEnd(o.maxSteps)
	return headless.Collect(run, seed, ts)
}
