package scenario

import (
	"path/filepath"
	"testing"

	"github.com/pthm-cable/reconstruct/anneal"
)

func TestBuildFromDefaultsProducesRunnableFurnace(t *testing.T) {
	s, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	s.Shape = []int{16, 16}
	s.Steps = 20

	run, err := Build(s)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	f := run.Furnace
	for i := uint64(0); i < run.Steps; i++ {
		f, err = anneal.Step(f, run.Cost, run.Modifier, run.Cooldown, run.RNG)
		if err != nil {
			t.Fatalf("Step %d: %v", i, err)
		}
	}
	if f.Steps != run.Steps {
		t.Errorf("Steps = %d, want %d", f.Steps, run.Steps)
	}
}

func TestBuildRejectsUnknownCost(t *testing.T) {
	s, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	s.Shape = []int{8, 8}
	s.Cost.Kind = "not_a_real_cost"

	if _, err := Build(s); err == nil {
		t.Fatal("expected error for unknown cost kind")
	}
}

func TestBuildRejectsUnknownModifier(t *testing.T) {
	s, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	s.Shape = []int{8, 8}
	s.Modifier = "not_a_real_modifier"

	if _, err := Build(s); err == nil {
		t.Fatal("expected error for unknown modifier kind")
	}
}

func TestBuildWithDPNSamplerAndSwapper(t *testing.T) {
	s, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	s.Shape = []int{12, 12}
	s.Modifier = "swapper"
	s.Sampler.Kind = "dpn"
	s.Sampler.Alpha = 1.5

	run, err := Build(s)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	_, err = anneal.Step(run.Furnace, run.Cost, run.Modifier, run.Cooldown, run.RNG)
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
}

func TestBuildRejectsExplicitTargetFile(t *testing.T) {
	s, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	s.Shape = []int{8, 8}
	s.Target = filepath.Join(t.TempDir(), "target.bin")

	if _, err := Build(s); err == nil {
		t.Fatal("expected error since loading a target from disk is not implemented")
	}
}
