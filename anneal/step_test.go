package anneal

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/reconstruct/cooldown"
	"github.com/pthm-cable/reconstruct/cost"
	"github.com/pthm-cable/reconstruct/lattice"
	"github.com/pthm-cable/reconstruct/modifier"
	"github.com/pthm-cable/reconstruct/sampler"
	"github.com/pthm-cable/reconstruct/tracker"
)

func newTestTracker(t *testing.T, fill uint8, shape []int) tracker.Tracker {
	t.Helper()
	g, err := lattice.NewGrid(shape, true)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	if fill == 1 {
		for i := 0; i < g.Len(); i++ {
			g.SetFlat(i, 1)
		}
	}
	desc := tracker.Descriptor{Kind: tracker.KindS2, Phase: 1, Length: 3}
	tr, err := tracker.NewSimple(g, []tracker.Descriptor{desc}, map[tracker.Descriptor][]tracker.Direction{
		desc: {tracker.DirX, tracker.DirY},
	})
	if err != nil {
		t.Fatalf("NewSimple: %v", err)
	}
	return tr
}

func TestStepFromIdenticalTrackersAdvancesSteps(t *testing.T) {
	shape := []int{6, 6}
	system := newTestTracker(t, 0, shape)
	target := newTestTracker(t, 0, shape)
	f := New(system, target, 1.0)

	mod := modifier.NewFlipper(sampler.NewUniform())
	sched := cooldown.NewExponential(0.9)
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 20; i++ {
		next, err := Step(f, cost.EuclidMean, mod, sched, rng)
		if err != nil {
			t.Fatalf("Step: %v", err)
		}
		if next.Steps != f.Steps+1 {
			t.Errorf("Steps = %d, want %d", next.Steps, f.Steps+1)
		}
		f = next
	}
}

func TestStepNeverMutatesTemperatureOnReject(t *testing.T) {
	shape := []int{8, 8}
	system := newTestTracker(t, 0, shape)
	target := newTestTracker(t, 1, shape)
	f := New(system, target, 0.01)

	mod := modifier.NewFlipper(sampler.NewUniform())
	sched := cooldown.NewExponential(0.5)
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 50; i++ {
		before := f.Temperature
		next, err := Step(f, cost.EuclidMean, mod, sched, rng)
		if err != nil {
			t.Fatalf("Step: %v", err)
		}
		wasRejected := next.Rejected > f.Rejected
		if wasRejected && next.Temperature != before {
			t.Errorf("rejected step changed temperature: %v -> %v", before, next.Temperature)
		}
		f = next
	}
}

func TestStepCountersAreMutuallyExclusivePerStep(t *testing.T) {
	shape := []int{6, 6}
	system := newTestTracker(t, 0, shape)
	target := newTestTracker(t, 1, shape)
	f := New(system, target, 0.05)

	mod := modifier.NewFlipper(sampler.NewUniform())
	sched := cooldown.NewExponential(0.99)
	rng := rand.New(rand.NewSource(99))

	for i := 0; i < 100; i++ {
		prevAccepted, prevRejected := f.Accepted, f.Rejected
		next, err := Step(f, cost.EuclidMean, mod, sched, rng)
		if err != nil {
			t.Fatalf("Step: %v", err)
		}
		acceptedDelta := next.Accepted - prevAccepted
		rejectedDelta := next.Rejected - prevRejected
		if acceptedDelta > 0 && rejectedDelta > 0 {
			t.Fatalf("step both accepted and rejected")
		}
		if acceptedDelta > 1 || rejectedDelta > 1 {
			t.Fatalf("step counters advanced by more than one")
		}
		f = next
	}
}

func TestStepSharesTrackersAcrossCalls(t *testing.T) {
	shape := []int{5, 5}
	system := newTestTracker(t, 0, shape)
	target := newTestTracker(t, 0, shape)
	f := New(system, target, 1.0)

	mod := modifier.NewFlipper(sampler.NewUniform())
	sched := cooldown.NewExponential(0.9)
	rng := rand.New(rand.NewSource(3))

	next, err := Step(f, cost.EuclidMean, mod, sched, rng)
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if next.System != f.System || next.Target != f.Target {
		t.Error("expected Step to carry forward the same tracker instances")
	}
}
