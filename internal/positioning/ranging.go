package positioning

import "math"

// RangingModel converts a single RSSI sample to an estimated distance in
// metres via a piecewise-adaptive log-distance path-loss model: a fixed
// intercept (TxPower), with the path-loss exponent broadened as the
// signal weakens.
type RangingModel struct{}

// NewRangingModel constructs the model. There is no tunable state: the
// constants are the calibrated table for this building's beacon deployment.
func NewRangingModel() *RangingModel {
	return &RangingModel{}
}

// pathLossExponent returns n for a given RSSI: the base exponent in the
// near field, linearly broadened through the mid band, fixed wider past
// the far threshold.
func pathLossExponent(rssi int) float64 {
	r := float64(rssi)
	switch {
	case r >= NearRSSI:
		return BaseN
	case r >= FarRSSI:
		return BaseN + 0.5*(NearRSSI-r)/(NearRSSI-FarRSSI)
	default:
		return BaseN + 0.8
	}
}

// Distance converts rssi (dBm) to a clamped distance estimate in metres.
// Callers are expected to have already rejected rssi < MinValidRSSI
// upstream; Distance still clamps defensively so it never returns outside
// [MinDistanceM, MaxDistanceM].
func (m *RangingModel) Distance(rssi int) float64 {
	n := pathLossExponent(rssi)
	d := CalibFactor * math.Pow(10.0, (TxPower-float64(rssi))/(10.0*n))
	if d < MinDistanceM {
		return MinDistanceM
	}
	if d > MaxDistanceM {
		return MaxDistanceM
	}
	return d
}
