package scenario

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmbeddedDefaults(t *testing.T) {
	s, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(s.Shape) != 2 {
		t.Fatalf("expected default shape to be 2D, got %v", s.Shape)
	}
	if len(s.Descriptors) == 0 {
		t.Fatal("expected default scenario to track at least one descriptor")
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing scenario file")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	content := []byte("shape: [16, 16]\nsteps: 5\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("writeFile: %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Shape[0] != 16 || s.Shape[1] != 16 {
		t.Errorf("expected overridden shape [16 16], got %v", s.Shape)
	}
	if s.Steps != 5 {
		t.Errorf("expected overridden steps 5, got %d", s.Steps)
	}
	if s.Cost.Kind != "euclid_mean" {
		t.Errorf("expected un-overridden cost kind to retain default, got %q", s.Cost.Kind)
	}
}

func TestCfgPanicsBeforeInit(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected Cfg to panic before Init")
		}
	}()
	global = nil
	Cfg()
}

func TestValidateRejectsZeroSteps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("steps: 0\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for zero steps")
	}
}
