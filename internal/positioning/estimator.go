package positioning

import (
	"math"
	"sort"
)

// resolveReadings filters readings to those whose beacon is known, pairing
// each with its Beacon record. Unresolved beacons are silently dropped;
// every estimator works only on readings whose beacon resolves.
func resolveReadings(registry *MapRegistry, readings []RssiReading) []struct {
	Beacon Beacon
	RSSI   int
} {
	out := make([]struct {
		Beacon Beacon
		RSSI   int
	}, 0, len(readings))
	for _, r := range readings {
		b, ok := registry.Lookup(r.BeaconID)
		if !ok {
			continue
		}
		out = append(out, struct {
			Beacon Beacon
			RSSI   int
		}{Beacon: b, RSSI: r.RSSI})
	}
	return out
}

// EstimateProximity picks the strongest-RSSI beacon and reports its own
// location as the user's location.
func EstimateProximity(registry *MapRegistry, ranging *RangingModel, readings []RssiReading) PositioningResult {
	resolved := resolveReadings(registry, readings)
	if len(resolved) == 0 {
		return PositioningResult{Mode: Proximity}
	}

	best := resolved[0]
	for _, r := range resolved[1:] {
		if r.RSSI > best.RSSI {
			best = r
		}
	}

	return PositioningResult{
		Location:           Point{X: best.Beacon.X, Y: best.Beacon.Y},
		Mode:               Proximity,
		Confidence:         1.0,
		NearestBeaconID:    best.Beacon.ID,
		NearestRoom:        registry.NearestRoom(best.Beacon.ID),
		EstimatedDistanceM: ranging.Distance(best.RSSI),
	}
}

// rssiWeight is the weighting function shared by the weighted-centroid
// estimator: w_i = 10^((rssi_i + 100)/20).
func rssiWeight(rssi int) float64 {
	return math.Pow(10, (float64(rssi)+100)/20)
}

// EstimateWeighted computes an RSSI-weighted centroid of resolvable
// beacons, then passes it through the corridor constraint.
func EstimateWeighted(registry *MapRegistry, ranging *RangingModel, readings []RssiReading) PositioningResult {
	resolved := resolveReadings(registry, readings)
	if len(resolved) == 0 {
		return PositioningResult{Mode: Weighted}
	}

	var sumW, sumX, sumY float64
	best := resolved[0]
	for _, r := range resolved {
		w := rssiWeight(r.RSSI)
		sumW += w
		sumX += w * r.Beacon.X
		sumY += w * r.Beacon.Y
		if r.RSSI > best.RSSI {
			best = r
		}
	}
	if sumW == 0 {
		return PositioningResult{Mode: Weighted}
	}

	centroid := Point{X: sumX / sumW, Y: sumY / sumW}
	constrained := ApplySoftCorridorConstraint(centroid)

	return PositioningResult{
		Location:           constrained,
		Mode:               Weighted,
		Confidence:         1.0,
		NearestBeaconID:    best.Beacon.ID,
		NearestRoom:        registry.NearestRoom(best.Beacon.ID),
		EstimatedDistanceM: ranging.Distance(best.RSSI),
	}
}

// EstimateTrilateration produces a position from >=3 beacons via an
// RSSI-weighted nonlinear least-squares solve seeded by a weighted
// centroid. Returns a result with Confidence <= 0.3 (invalid per
// PositioningResult.Valid) when the geometry or signal quality is too poor
// to trust; callers fall back to weighted proximity in that case.
func EstimateTrilateration(registry *MapRegistry, ranging *RangingModel, readings []RssiReading) PositioningResult {
	var candidates []RangedReading
	for _, r := range readings {
		if r.RSSI < MinValidRSSI {
			continue
		}
		b, ok := registry.Lookup(r.BeaconID)
		if !ok {
			continue
		}
		candidates = append(candidates, RangedReading{Beacon: b, RSSI: r.RSSI, Distance: ranging.Distance(r.RSSI)})
	}
	if len(candidates) < 3 {
		return PositioningResult{Mode: Trilateration}
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Distance < candidates[j].Distance })
	if len(candidates) > TrilaterationMaxBeacons {
		candidates = candidates[:TrilaterationMaxBeacons]
	}

	// Seed: weighted centroid with w_i = 10^((rssi_i+100)/30) / max(d_i,0.5)^2.
	var sumW, sumX, sumY float64
	for _, c := range candidates {
		d := math.Max(c.Distance, 0.5)
		w := math.Pow(10, (float64(c.RSSI)+100)/30) / (d * d)
		sumW += w
		sumX += w * c.Beacon.X
		sumY += w * c.Beacon.Y
	}
	p := Point{X: sumX / sumW, Y: sumY / sumW}

	// Adaptive-learning-rate gradient descent toward the RSSI-weighted
	// distance-residual minimum.
	lr := TrilaterationLRInit
	prevSSE := math.Inf(1)

	for iter := 0; iter < TrilaterationMaxIter; iter++ {
		var sumWg, sse float64
		gx, gy := 0.0, 0.0

		for _, c := range candidates {
			rho := c.Distance * PixelsPerMeter
			dx := p.X - c.Beacon.X
			dy := p.Y - c.Beacon.Y
			r := math.Hypot(dx, dy)
			if r < 1 {
				r = 1
			}
			e := r - rho
			w := math.Pow(10, (float64(c.RSSI)+90)/25)
			sumWg += w
			sse += w * e * e
			gx += w * e * dx / r
			gy += w * e * dy / r
		}

		if sumWg == 0 {
			break
		}
		gx /= sumWg
		gy /= sumWg

		if sse > prevSSE {
			lr *= TrilaterationLRDecay
		} else if prevSSE-sse > TrilaterationLRGrowTrig*prevSSE {
			lr = math.Min(lr*TrilaterationLRGrow, TrilaterationLRMax)
		}
		prevSSE = sse

		step := Point{X: -lr * gx, Y: -lr * gy}
		p = p.Add(step)

		if math.Hypot(step.X, step.Y) < TrilaterationStepEps {
			break
		}
	}

	p = ApplySoftCorridorConstraint(p)

	confidence := trilaterationConfidence(candidates)

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.RSSI > best.RSSI {
			best = c
		}
	}

	return PositioningResult{
		Location:           p,
		Mode:               Trilateration,
		Confidence:         confidence,
		NearestBeaconID:    best.Beacon.ID,
		NearestRoom:        registry.NearestRoom(best.Beacon.ID),
		EstimatedDistanceM: ranging.Distance(best.RSSI),
	}
}

// trilaterationConfidence implements the three-factor blend:
// beacon count, strongest signal, and the bounding-box spread of the
// beacons actually used.
func trilaterationConfidence(candidates []RangedReading) float64 {
	n := len(candidates)
	beaconFactor := math.Min(float64(n)/5.0, 1.0)

	strongest := candidates[0].RSSI
	for _, c := range candidates[1:] {
		if c.RSSI > strongest {
			strongest = c.RSSI
		}
	}
	signalFactor := clampF(float64(strongest+100)/50.0, 0, 1)

	minX, maxX := candidates[0].Beacon.X, candidates[0].Beacon.X
	minY, maxY := candidates[0].Beacon.Y, candidates[0].Beacon.Y
	for _, c := range candidates[1:] {
		minX, maxX = math.Min(minX, c.Beacon.X), math.Max(maxX, c.Beacon.X)
		minY, maxY = math.Min(minY, c.Beacon.Y), math.Max(maxY, c.Beacon.Y)
	}
	diagonal := math.Hypot(maxX-minX, maxY-minY)
	spreadFactor := math.Min(diagonal/200.0, 1.0)

	return 0.3*beaconFactor + 0.4*signalFactor + 0.3*spreadFactor
}
