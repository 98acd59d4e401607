package cost

import (
	"fmt"

	"github.com/pthm-cable/reconstruct/tracker"
)

// NewCapek builds the time-dependent Čapek cost. At construction time it
// computes two baselines -- s2_init = directional(S2 phase 0) and l2_init =
// directional(L2 phase 1) -- between a and b, and sets eta' = eta *
// (s2_init + l2_init). The returned Cost computes s2, l2s = directional(L2
// phase 1), l2v = directional(L2 phase 0), and returns
// s2 + l2s + l2v*eta'/(eta'+s2+l2s). The third term starts near zero and
// grows toward l2v as (s2+l2s) -> 0, pulling void-phase lineal-path into
// the objective only as the primary objectives converge.
func NewCapek(eta float64, a, b tracker.Tracker) (Cost, error) {
	if !tracker.SameDescriptors(a, b) {
		return nil, ErrDescriptorMismatch
	}
	s2Desc, l2sDesc, l2vDesc, err := capekDescriptors(a)
	if err != nil {
		return nil, err
	}

	s2Init, err := directionalDistance(a, b, s2Desc)
	if err != nil {
		return nil, err
	}
	l2Init, err := directionalDistance(a, b, l2sDesc)
	if err != nil {
		return nil, err
	}
	etaPrime := eta * (s2Init + l2Init)

	return func(system, target tracker.Tracker) (float64, error) {
		if !tracker.SameDescriptors(system, target) {
			return 0, ErrDescriptorMismatch
		}
		s2, err := directionalDistance(system, target, s2Desc)
		if err != nil {
			return 0, err
		}
		l2s, err := directionalDistance(system, target, l2sDesc)
		if err != nil {
			return 0, err
		}
		l2v, err := directionalDistance(system, target, l2vDesc)
		if err != nil {
			return 0, err
		}
		denom := etaPrime + s2 + l2s
		var term3 float64
		if denom != 0 {
			term3 = l2v * etaPrime / denom
		}
		return s2 + l2s + term3, nil
	}, nil
}

// NewGeneralizedCapek generalizes NewCapek: dict maps each extra tracked
// descriptor to a control eta_k in [0,1]. The returned cost sums, over all
// k in dict, eta_k'/(eta_k'+s2+l2s) * directional(k), on top of the same
// s2+l2s baseline terms NewCapek uses.
func NewGeneralizedCapek(dict map[tracker.Descriptor]float64, a, b tracker.Tracker) (Cost, error) {
	if !tracker.SameDescriptors(a, b) {
		return nil, ErrDescriptorMismatch
	}
	s2Desc, l2sDesc, _, err := capekDescriptors(a)
	if err != nil {
		return nil, err
	}

	s2Init, err := directionalDistance(a, b, s2Desc)
	if err != nil {
		return nil, err
	}
	l2Init, err := directionalDistance(a, b, l2sDesc)
	if err != nil {
		return nil, err
	}

	etaPrimes := make(map[tracker.Descriptor]float64, len(dict))
	for d, eta := range dict {
		if _, ok := findDescriptorExact(a, d); !ok {
			return nil, fmt.Errorf("cost: generalized čapek descriptor %+v is not tracked", d)
		}
		etaPrimes[d] = eta * (s2Init + l2Init)
	}

	return func(system, target tracker.Tracker) (float64, error) {
		if !tracker.SameDescriptors(system, target) {
			return 0, ErrDescriptorMismatch
		}
		s2, err := directionalDistance(system, target, s2Desc)
		if err != nil {
			return 0, err
		}
		l2s, err := directionalDistance(system, target, l2sDesc)
		if err != nil {
			return 0, err
		}
		total := s2 + l2s
		for d, etaPrime := range etaPrimes {
			dk, err := directionalDistance(system, target, d)
			if err != nil {
				return 0, err
			}
			denom := etaPrime + s2 + l2s
			if denom == 0 {
				continue
			}
			total += etaPrime / denom * dk
		}
		return total, nil
	}, nil
}

func capekDescriptors(t tracker.Tracker) (s2, l2s, l2v tracker.Descriptor, err error) {
	s2, ok := findDescriptor(t, tracker.KindS2, 0)
	if !ok {
		return s2, l2s, l2v, fmt.Errorf("cost: čapek cost requires a tracked S2 descriptor for phase 0")
	}
	l2s, ok = findDescriptor(t, tracker.KindL2, 1)
	if !ok {
		return s2, l2s, l2v, fmt.Errorf("cost: čapek cost requires a tracked L2 descriptor for phase 1")
	}
	l2v, ok = findDescriptor(t, tracker.KindL2, 0)
	if !ok {
		return s2, l2s, l2v, fmt.Errorf("cost: čapek cost requires a tracked L2 descriptor for phase 0")
	}
	return s2, l2s, l2v, nil
}

func findDescriptorExact(t tracker.Tracker, want tracker.Descriptor) (tracker.Descriptor, bool) {
	for _, d := range t.Descriptors() {
		if d == want {
			return d, true
		}
	}
	return tracker.Descriptor{}, false
}
