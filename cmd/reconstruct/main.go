// Command reconstruct runs a simulated-annealing material reconstruction
// scenario from a YAML description and reports the final cost.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/pthm-cable/reconstruct/anneal"
	"github.com/pthm-cable/reconstruct/scenario"
	"github.com/pthm-cable/reconstruct/telemetry"
)

func main() {
	scenarioPath := flag.String("scenario", "", "Scenario YAML file (empty = use embedded defaults)")
	outputDir := flag.String("output", "", "Directory for per-step telemetry CSV (empty = disabled)")
	logEvery := flag.Uint64("log-every", 10000, "Log progress every N steps (0 = never)")
	flag.Parse()

	if err := scenario.Init(*scenarioPath); err != nil {
		log.Fatalf("reconstruct: loading scenario: %v", err)
	}
	cfg := scenario.Cfg()
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}

	run, err := scenario.Build(cfg)
	if err != nil {
		log.Fatalf("reconstruct: building run: %v", err)
	}

	rec, err := telemetry.NewRecorder(cfg.OutputDir)
	if err != nil {
		log.Fatalf("reconstruct: opening telemetry recorder: %v", err)
	}
	defer rec.Close()

	f := run.Furnace
	for i := uint64(0); i < run.Steps; i++ {
		f, err = anneal.Step(f, run.Cost, run.Modifier, run.Cooldown, run.RNG)
		if err != nil {
			log.Fatalf("reconstruct: step %d: %v", i, err)
		}

		c, err := run.Cost(f.System, f.Target)
		if err != nil {
			log.Fatalf("reconstruct: cost at step %d: %v", i, err)
		}
		if err := rec.Write(telemetry.StepRecord{
			Step:        f.Steps,
			Temperature: f.Temperature,
			Cost:        c,
			Accepted:    f.Accepted,
			Rejected:    f.Rejected,
		}); err != nil {
			log.Fatalf("reconstruct: writing telemetry at step %d: %v", i, err)
		}

		if *logEvery != 0 && f.Steps%*logEvery == 0 {
			fmt.Printf("step=%d T=%.6g cost=%.6g accepted=%d rejected=%d\n",
				f.Steps, f.Temperature, c, f.Accepted, f.Rejected)
		}
	}

	final, err := run.Cost(f.System, f.Target)
	if err != nil {
		log.Fatalf("reconstruct: final cost: %v", err)
	}
	fmt.Printf("done: steps=%d final_cost=%.6g accepted=%d rejected=%d\n", f.Steps, final, f.Accepted, f.Rejected)
}
