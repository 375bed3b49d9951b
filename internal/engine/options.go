package engine

// Options configures the simulation, projection, and interaction constants.
// Zero values fall back to defaults, so a literal with a few overrides works.
type Options struct {
	// DesiredDistance is the edge spring's rest distance. The spring is dead
	// between MinDistance and DesiredDistance, pulls together beyond it, and
	// pushes apart below MinDistance.
	DesiredDistance float64
	MinDistance     float64
	SpringConstant  float64

	// RepulsionForce scales the inverse-square pairwise repulsion.
	RepulsionForce float64

	// MaxNodeSpeed caps per-step node displacement.
	MaxNodeSpeed float64

	// ProjectionDistance is the perspective camera distance; the divide is
	// ProjectionDistance/(ProjectionDistance+z), with the denominator floored
	// at MinProjectionDenominator.
	ProjectionDistance       float64
	MinProjectionDenominator float64

	// NodeRadius is the unscaled hit-test and draw radius in pixels.
	NodeRadius float64

	// RotateSensitivity converts pointer pixels to radians while rotating.
	RotateSensitivity float64

	// ZoomIntensity is the per-wheel-notch zoom exponent: each notch
	// multiplies zoom by exp(±ZoomIntensity).
	ZoomIntensity float64
}

// withDefaults returns a copy with zero fields replaced by defaults.
func (o *Options) withDefaults() Options {
	d := Options{
		DesiredDistance:          150,
		MinDistance:              50,
		SpringConstant:           0.1,
		RepulsionForce:           5000,
		MaxNodeSpeed:             10,
		ProjectionDistance:       1000,
		MinProjectionDenominator: 1,
		NodeRadius:               15,
		RotateSensitivity:        0.01,
		ZoomIntensity:            0.1,
	}
	if o == nil {
		return d
	}

	if o.DesiredDistance != 0 {
		d.DesiredDistance = o.DesiredDistance
	}
	if o.MinDistance != 0 {
		d.MinDistance = o.MinDistance
	}
	if o.SpringConstant != 0 {
		d.SpringConstant = o.SpringConstant
	}
	if o.RepulsionForce != 0 {
		d.RepulsionForce = o.RepulsionForce
	}
	if o.MaxNodeSpeed != 0 {
		d.MaxNodeSpeed = o.MaxNodeSpeed
	}
	if o.ProjectionDistance != 0 {
		d.ProjectionDistance = o.ProjectionDistance
	}
	if o.MinProjectionDenominator != 0 {
		d.MinProjectionDenominator = o.MinProjectionDenominator
	}
	if o.NodeRadius != 0 {
		d.NodeRadius = o.NodeRadius
	}
	if o.RotateSensitivity != 0 {
		d.RotateSensitivity = o.RotateSensitivity
	}
	if o.ZoomIntensity != 0 {
		d.ZoomIntensity = o.ZoomIntensity
	}
	return d
}
