package explain

import "fmt"

// DimensionMismatchError reports a shape or length inconsistency between
// inputs that are required to be parallel.
type DimensionMismatchError struct {
	What     string
	Expected int
	Got      int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("%s length mismatch: expected %d, got %d", e.What, e.Expected, e.Got)
}

// EmptyInputError reports zero values where at least one is required
type EmptyInputError struct {
	What string
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("%s cannot have 0 samples", e.What)
}

// ZeroSampleError reports an instance matrix with zero rows passed to a
// local assembler.
type ZeroSampleError struct{}

func (e *ZeroSampleError) Error() string {
	return "X has zero samples"
}

// UnsupportedClassCountError reports a discrimination curve or attribution
// requested on labels that are not binary. Multiclass is unsupported, not
// silently degraded.
type UnsupportedClassCountError struct {
	Count int
}

func (e *UnsupportedClassCountError) Error() string {
	return fmt.Sprintf("only binary classification supported: found %d classes", e.Count)
}

// ModelNotFittedError reports an explanation requested before the model was
// fit and its state snapshotted.
type ModelNotFittedError struct{}

func (e *ModelNotFittedError) Error() string {
	return "model is not fitted; call fit and take a snapshot before explaining"
}
