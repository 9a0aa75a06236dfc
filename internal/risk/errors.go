package risk

import "errors"

var (
	// ErrNoRecords is returned when a feature batch is empty
	ErrNoRecords = errors.New("no occurrence records")

	// ErrUnknownCategory is returned when a disease name was not seen while fitting the category index
	ErrUnknownCategory = errors.New("unknown category")

	// ErrInsufficientData is returned when too few records remain to split and fit
	ErrInsufficientData = errors.New("insufficient training data")

	// ErrDegenerateFit is returned when the regression produces non-finite coefficients
	ErrDegenerateFit = errors.New("degenerate regression fit")

	// ErrDimensionMismatch is returned when a feature row has the wrong width
	ErrDimensionMismatch = errors.New("feature dimension mismatch")

	// ErrNotTrained is returned when a prediction is requested from an empty bundle
	ErrNotTrained = errors.New("model not trained")
)
