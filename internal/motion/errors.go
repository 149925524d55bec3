package motion

import "errors"

var (
	ErrInvalidFactor    = errors.New("motion: damping factor must be in (0,1]")
	ErrInvalidSpring    = errors.New("motion: spring stiffness must be positive and damping non-negative")
	ErrUnknownSmoother  = errors.New("motion: unknown smoother kind")
	ErrInvalidLength    = errors.New("motion: trail length out of range")
	ErrInvalidThreshold = errors.New("motion: threshold must be in [0,1]")
	ErrInvalidDelay     = errors.New("motion: delay must not be negative")
	ErrInvalidDuration  = errors.New("motion: duration must not be negative")
	ErrNoWords          = errors.New("motion: typewriter needs at least one word")
	ErrRangeMismatch    = errors.New("motion: input and output ranges must have equal length of at least two")
	ErrAlreadyMounted   = errors.New("motion: component already mounted")
)
