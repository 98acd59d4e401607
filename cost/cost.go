// Package cost provides the scalar distance functions between a system's
// and a target's tracked correlation functions that the annealing driver
// minimizes.
package cost

import (
	"fmt"

	"github.com/pthm-cable/reconstruct/tracker"
)

// Cost maps a pair of trackers to a non-negative scalar distance.
type Cost func(system, target tracker.Tracker) (float64, error)

// EuclidMean averages each descriptor's correlation values across
// directions to one vector per tracker, then sums squared-Euclidean
// distances across descriptors.
func EuclidMean(system, target tracker.Tracker) (float64, error) {
	if !tracker.SameDescriptors(system, target) {
		return 0, ErrDescriptorMismatch
	}
	var total float64
	for _, d := range system.Descriptors() {
		dist, err := meanDistance(system, target, d)
		if err != nil {
			return 0, err
		}
		total += dist
	}
	return total, nil
}

// EuclidDirectional sums squared-Euclidean distances per direction without
// averaging, then sums across descriptors. Both trackers must report
// identical direction sets (SameDescriptors enforces this).
func EuclidDirectional(system, target tracker.Tracker) (float64, error) {
	if !tracker.SameDescriptors(system, target) {
		return 0, ErrDescriptorMismatch
	}
	var total float64
	for _, d := range system.Descriptors() {
		dist, err := directionalDistance(system, target, d)
		if err != nil {
			return 0, err
		}
		total += dist
	}
	return total, nil
}

// NewEuclidMeanWeighted computes, at construction time, each descriptor's
// baseline EuclidMean distance between a and b. The returned Cost sums
// distance_d / baseline_d across descriptors, so each descriptor's
// contribution starts normalized to 1.
func NewEuclidMeanWeighted(a, b tracker.Tracker) (Cost, error) {
	baselines, err := baselineDistances(a, b, meanDistance)
	if err != nil {
		return nil, err
	}
	return func(system, target tracker.Tracker) (float64, error) {
		if !tracker.SameDescriptors(system, target) {
			return 0, ErrDescriptorMismatch
		}
		var total float64
		for _, d := range system.Descriptors() {
			dist, err := meanDistance(system, target, d)
			if err != nil {
				return 0, err
			}
			total += dist / baselines[d]
		}
		return total, nil
	}, nil
}

// NewEuclidDirectionalWeighted is the per-direction analogue of
// NewEuclidMeanWeighted.
func NewEuclidDirectionalWeighted(a, b tracker.Tracker) (Cost, error) {
	baselines, err := baselineDistances(a, b, directionalDistance)
	if err != nil {
		return nil, err
	}
	return func(system, target tracker.Tracker) (float64, error) {
		if !tracker.SameDescriptors(system, target) {
			return 0, ErrDescriptorMismatch
		}
		var total float64
		for _, d := range system.Descriptors() {
			dist, err := directionalDistance(system, target, d)
			if err != nil {
				return 0, err
			}
			total += dist / baselines[d]
		}
		return total, nil
	}, nil
}

func baselineDistances(a, b tracker.Tracker, distance func(a, b tracker.Tracker, d tracker.Descriptor) (float64, error)) (map[tracker.Descriptor]float64, error) {
	if !tracker.SameDescriptors(a, b) {
		return nil, ErrDescriptorMismatch
	}
	if len(a.Descriptors()) == 0 {
		return nil, fmt.Errorf("cost: weighted cost factory requires at least one tracked descriptor")
	}
	baselines := make(map[tracker.Descriptor]float64, len(a.Descriptors()))
	for _, d := range a.Descriptors() {
		dist, err := distance(a, b, d)
		if err != nil {
			return nil, err
		}
		if dist == 0 {
			return nil, ErrZeroBaseline
		}
		baselines[d] = dist
	}
	return baselines, nil
}

func meanDistance(system, target tracker.Tracker, d tracker.Descriptor) (float64, error) {
	sysData, ok := system.CorrelationFor(d)
	if !ok {
		return 0, fmt.Errorf("cost: system tracker does not carry descriptor %+v", d)
	}
	tgtData, ok := target.CorrelationFor(d)
	if !ok {
		return 0, fmt.Errorf("cost: target tracker does not carry descriptor %+v", d)
	}
	return squaredEuclidean(sysData.Mean(), tgtData.Mean()), nil
}

func directionalDistance(system, target tracker.Tracker, d tracker.Descriptor) (float64, error) {
	sysData, ok := system.CorrelationFor(d)
	if !ok {
		return 0, fmt.Errorf("cost: system tracker does not carry descriptor %+v", d)
	}
	tgtData, ok := target.CorrelationFor(d)
	if !ok {
		return 0, fmt.Errorf("cost: target tracker does not carry descriptor %+v", d)
	}
	var total float64
	for _, dir := range system.Directions(d) {
		sv, ok := sysData.ForDirection(dir)
		if !ok {
			return 0, fmt.Errorf("cost: system tracker missing direction %s for descriptor %+v", dir, d)
		}
		tv, ok := tgtData.ForDirection(dir)
		if !ok {
			return 0, fmt.Errorf("cost: target tracker missing direction %s for descriptor %+v", dir, d)
		}
		total += squaredEuclidean(sv, tv)
	}
	return total, nil
}

func squaredEuclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return sum
}

// findDescriptor returns the first tracked descriptor of the given kind and
// phase, ignoring length.
func findDescriptor(t tracker.Tracker, kind tracker.Kind, phase uint8) (tracker.Descriptor, bool) {
	for _, d := range t.Descriptors() {
		if d.Kind == kind && d.Phase == phase {
			return d, true
		}
	}
	return tracker.Descriptor{}, false
}
