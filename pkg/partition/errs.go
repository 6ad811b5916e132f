package partition

import "errors"

var (
	// ErrNoStates indicates a parameter record without any state energies.
	ErrNoStates = errors.New("partition: no states")

	// ErrTooManyStates indicates more states than MaxStates.
	ErrTooManyStates = errors.New("partition: too many states")

	// ErrPotentialMismatch indicates a chemical-potential list whose length
	// differs from the energy list.
	ErrPotentialMismatch = errors.New("partition: potentials and energies differ in length")

	// ErrNonFinite indicates an infinite or otherwise unusable value.
	ErrNonFinite = errors.New("partition: non-finite value")

	// ErrTemperatureRange indicates bounds that are not positive or not
	// strictly increasing.
	ErrTemperatureRange = errors.New("partition: invalid temperature range")

	// ErrStep indicates a step that is not positive or not smaller than the
	// temperature range.
	ErrStep = errors.New("partition: invalid temperature step")

	// ErrNoSamples indicates a sweep that would produce no samples.
	ErrNoSamples = errors.New("partition: sweep has no samples")

	// ErrTooManySamples indicates a sweep longer than MaxSamples.
	ErrTooManySamples = errors.New("partition: too many samples")

	// ErrNotInitialized indicates use of a Manager before Initialize succeeded.
	ErrNotInitialized = errors.New("partition: manager not initialized")

	// ErrIndex indicates a sample index outside the sweep.
	ErrIndex = errors.New("partition: sample index out of range")

	// ErrCalculated indicates a second calculation of a sample. Samples are
	// written once; Initialize starts a fresh sweep.
	ErrCalculated = errors.New("partition: sample already calculated")

	// ErrOpenOutput indicates that the output file could not be created.
	// Samples are left untouched, so the save can be retried elsewhere.
	ErrOpenOutput = errors.New("partition: cannot open output")
)
