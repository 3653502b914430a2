package positioning

// PixelsPerMeter relates the pixel coordinate space to metres throughout the
// building. All geometry below (corridors, snap threshold, speed clamps) is
// expressed in pixels; this is the sole conversion factor to the outside
// world.
const PixelsPerMeter = 18.0

// RangingModel constants (piecewise-adaptive log-distance path-loss model),
// mirrored from the Beacon & room reference tables this engine was tuned
// against.
const (
	TxPower      = -59.0
	BaseN        = 2.2
	NearRSSI     = -60.0
	FarRSSI      = -80.0
	MinValidRSSI = -90
	MinDistanceM = 0.5
	MaxDistanceM = 15.0
	CalibFactor  = 1.15
)

// Corridor constraint rectangles, in map pixels.
const (
	MainMinX = 200.0
	MainMaxX = 1650.0
	MainMinY = 180.0
	MainMaxY = 270.0

	LeftMinX = 200.0
	LeftMaxX = 290.0
	LeftMinY = 270.0
	LeftMaxY = 700.0

	CorridorMargin         = 100.0
	SoftConstraintStrength = 0.7
	MainCenterY            = 225.0
	LeftCenterX            = 245.0
	CenterPull             = 0.2
)

// Trilateration solver constants.
const (
	TrilaterationMaxBeacons = 6
	TrilaterationMaxIter    = 50
	TrilaterationStepEps    = 0.5 // px
	TrilaterationLRInit     = 0.5
	TrilaterationLRDecay    = 0.5
	TrilaterationLRGrow     = 1.1
	TrilaterationLRMax      = 1.0
	TrilaterationLRGrowTrig = 0.1 // residual must drop by >10%
	TrilaterationMinConf    = 0.3
	HybridTrilaterationConf = 0.5
)

// Orchestrator smoothing & navigation constants.
const (
	JitterBufferSize       = 2
	MaxSpeedPxPerSec       = 90.0
	MovementSpeedThreshold = 15.0
	MinDtSeconds           = 0.05

	AlphaMovingNormal      = 0.50
	AlphaStaticNormal      = 0.15
	MinMoveThresholdNormal = 6.0

	AlphaMovingNav      = 0.75
	AlphaStaticNav      = 0.35
	MinMoveThresholdNav = 4.0
)

// Snap-to-route threshold, in pixels (~3.3 m).
const SnapToRouteThresholdPx = 60.0
