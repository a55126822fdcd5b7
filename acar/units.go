package acar

const (
	// AtomicUnitToMilliMC converts momentum in atomic units to 1e-3 m0c.
	// One data series of the reference tool applied it unconditionally; here it
	// is only used when a caller passes it as the momentum scale.
	AtomicUnitToMilliMC = 7.298202236578298

	// KeVToMilliMC converts a detector FWHM in keV to 1e-3 m0c, the unit the
	// resolution kernel expects.
	KeVToMilliMC = 3.91

	// DefaultMomentumCutoff is the largest momentum (a.u.) read from simulation output.
	DefaultMomentumCutoff = 5.5
)
