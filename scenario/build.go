package scenario

import (
	"fmt"
	"math/rand"

	"github.com/pthm-cable/reconstruct/anneal"
	"github.com/pthm-cable/reconstruct/cooldown"
	"github.com/pthm-cable/reconstruct/cost"
	"github.com/pthm-cable/reconstruct/fixtures"
	"github.com/pthm-cable/reconstruct/initializer"
	"github.com/pthm-cable/reconstruct/lattice"
	"github.com/pthm-cable/reconstruct/modifier"
	"github.com/pthm-cable/reconstruct/sampler"
	"github.com/pthm-cable/reconstruct/tracker"
)

// Run bundles everything Build resolved from a Scenario: a ready-to-step
// Furnace plus the strategies anneal.Step needs on every call.
type Run struct {
	Furnace  *anneal.Furnace
	Cost     cost.Cost
	Modifier modifier.Modifier
	Cooldown cooldown.Schedule
	RNG      *rand.Rand
	Steps    uint64
}

// Build resolves a Scenario into a Run: it generates the value-noise target
// grid (a Target file is rejected with an error), initializes the system
// grid from it, and constructs the named cost/modifier/sampler/cooldown
// strategies.
func Build(s *Scenario) (*Run, error) {
	rng := rand.New(rand.NewSource(s.Seed))

	target, err := buildTarget(s)
	if err != nil {
		return nil, fmt.Errorf("scenario: building target: %w", err)
	}

	system, err := initializer.InitializeRandom(target, s.Shape, rng)
	if err != nil {
		return nil, fmt.Errorf("scenario: initializing system: %w", err)
	}

	costFn, err := buildCost(s, system, target)
	if err != nil {
		return nil, fmt.Errorf("scenario: building cost function: %w", err)
	}

	mod, err := buildModifier(s, system)
	if err != nil {
		return nil, fmt.Errorf("scenario: building modifier: %w", err)
	}

	sched, err := buildCooldown(s)
	if err != nil {
		return nil, fmt.Errorf("scenario: building cooldown schedule: %w", err)
	}

	return &Run{
		Furnace:  anneal.New(system, target, s.Temperature),
		Cost:     costFn,
		Modifier: mod,
		Cooldown: sched,
		RNG:      rng,
		Steps:    s.Steps,
	}, nil
}

func buildTarget(s *Scenario) (tracker.Tracker, error) {
	var grid *lattice.Grid
	var err error

	if s.Target != "" {
		return nil, fmt.Errorf("scenario: loading a target grid from disk is not implemented; leave target empty to generate one from noise_seed")
	}
	grid, err = fixtures.ValueNoiseTarget(s.Shape, s.NoiseSeed, fixtures.NoiseConfig{
		Scale:      s.NoiseScale,
		Octaves:    4,
		Lacunarity: 2.0,
		Gain:       0.5,
		Threshold:  s.NoiseThreshold,
	})
	if err != nil {
		return nil, err
	}
	if grid.Periodic() != s.Periodic {
		grid, err = reperiodicize(grid, s.Periodic)
		if err != nil {
			return nil, err
		}
	}

	descriptors, directions, err := resolveDescriptors(s)
	if err != nil {
		return nil, err
	}
	return tracker.NewSimple(grid, descriptors, directions)
}

// reperiodicize rebuilds a grid with the same contents under a different
// boundary condition, since lattice.Grid's periodicity is fixed at
// construction.
func reperiodicize(g *lattice.Grid, periodic bool) (*lattice.Grid, error) {
	out, err := lattice.NewGrid(g.Shape(), periodic)
	if err != nil {
		return nil, err
	}
	for i := 0; i < g.Len(); i++ {
		out.SetFlat(i, g.AtFlat(i))
	}
	return out, nil
}

func resolveDescriptors(s *Scenario) ([]tracker.Descriptor, map[tracker.Descriptor][]tracker.Direction, error) {
	descriptors := make([]tracker.Descriptor, 0, len(s.Descriptors))
	directions := make(map[tracker.Descriptor][]tracker.Direction, len(s.Descriptors))
	for _, spec := range s.Descriptors {
		kind, err := resolveKind(spec.Kind)
		if err != nil {
			return nil, nil, err
		}
		d := tracker.Descriptor{Kind: kind, Phase: uint8(spec.Phase), Length: spec.Length}
		dirs := make([]tracker.Direction, 0, len(spec.Directions))
		for _, name := range spec.Directions {
			dirs = append(dirs, tracker.Direction(name))
		}
		descriptors = append(descriptors, d)
		directions[d] = dirs
	}
	return descriptors, directions, nil
}

func resolveKind(name string) (tracker.Kind, error) {
	switch name {
	case "s2":
		return tracker.KindS2, nil
	case "l2":
		return tracker.KindL2, nil
	case "surface":
		return tracker.KindSurface, nil
	default:
		return "", fmt.Errorf("scenario: unknown descriptor kind %q", name)
	}
}

func buildCost(s *Scenario, system, target tracker.Tracker) (cost.Cost, error) {
	switch s.Cost.Kind {
	case "euclid_mean":
		if s.Cost.Weighted {
			return cost.NewEuclidMeanWeighted(system, target)
		}
		return cost.EuclidMean, nil
	case "euclid_directional":
		if s.Cost.Weighted {
			return cost.NewEuclidDirectionalWeighted(system, target)
		}
		return cost.EuclidDirectional, nil
	case "capek":
		return cost.NewCapek(s.Cost.Eta, system, target)
	default:
		return nil, fmt.Errorf("scenario: unknown cost kind %q", s.Cost.Kind)
	}
}

func buildSampler(s *Scenario, system tracker.Tracker) (sampler.Sampler, error) {
	switch s.Sampler.Kind {
	case "uniform":
		return sampler.NewUniform(), nil
	case "interface":
		maxRetries := s.Sampler.MaxRetries
		return &sampler.Interface{MaxRetries: maxRetries}, nil
	case "dpn":
		alpha := s.Sampler.Alpha
		if alpha == 0 {
			alpha = 1.0
		}
		return sampler.NewDPN(system, alpha), nil
	default:
		return nil, fmt.Errorf("scenario: unknown sampler kind %q", s.Sampler.Kind)
	}
}

func buildModifier(s *Scenario, system tracker.Tracker) (modifier.Modifier, error) {
	samp, err := buildSampler(s, system)
	if err != nil {
		return nil, err
	}
	switch s.Modifier {
	case "flipper":
		return modifier.NewFlipper(samp), nil
	case "swapper":
		return modifier.NewSwapper(samp), nil
	default:
		return nil, fmt.Errorf("scenario: unknown modifier kind %q", s.Modifier)
	}
}

func buildCooldown(s *Scenario) (cooldown.Schedule, error) {
	switch s.Cooldown.Kind {
	case "exponential":
		lambda := s.Cooldown.Lambda
		if lambda == 0 {
			lambda = cooldown.DefaultExponentialLambda
		}
		return cooldown.NewExponential(lambda), nil
	case "aarts_korst":
		return cooldown.NewAartsKorst(s.Cooldown.N, s.Cooldown.Lambda), nil
	case "frost_heineman":
		return cooldown.NewFrostHeineman(s.Cooldown.N, s.Cooldown.Lambda), nil
	default:
		return nil, fmt.Errorf("scenario: unknown cooldown kind %q", s.Cooldown.Kind)
	}
}
