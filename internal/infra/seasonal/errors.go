package seasonal

import "errors"

var (
	ErrInsufficientTrainingData = errors.New("insufficient training data, need at least 2 points")
	ErrMismatchedDataLen        = errors.New("input data has different length than time")
	ErrUnsortedTime             = errors.New("training time must be strictly increasing")
	ErrUntrainedModel           = errors.New("model has not been trained yet")
	ErrSingularSystem           = errors.New("normal equations are not positive definite")
	ErrUnknownHolidayCalendar   = errors.New("unknown holiday calendar")
	ErrInvalidOptions           = errors.New("invalid model options")
)
