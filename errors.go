package tdr

import (
	"github.com/cockroachdb/errors"

	"github.com/nozzle/tdr/hat"
)

// Construction and hat errors. Errors returned by the generator match these
// with errors.Is.
var (
	ErrNotUnimodal            = hat.ErrNotUnimodal
	ErrNotConcave             = hat.ErrNotConcave
	ErrUnbounded              = hat.ErrUnbounded
	ErrDegenerate             = hat.ErrDegenerate
	ErrCannotBoundHat         = hat.ErrCannotBoundHat
	ErrDegenerateConstruction = hat.ErrDegenerateConstruction
	ErrSplitFailed            = hat.ErrSplitFailed
)

var (
	// ErrReinitFailed reports that neither the percentiles of the old hat nor
	// the retry points produced a valid hat. The generator is disabled.
	ErrReinitFailed = errors.New("reinitialization failed")

	// ErrIterationCapExceeded reports a sample call that hit the iteration
	// cap. The generator stays usable.
	ErrIterationCapExceeded = errors.New("maximum number of iterations exceeded")

	// ErrNotBuilt reports use of a generator before Build succeeded.
	ErrNotBuilt = errors.New("generator not built")

	// ErrDisabled reports use of a generator after a fatal failure.
	ErrDisabled = errors.New("generator disabled")

	// ErrInvalidConfig reports an unusable configuration.
	ErrInvalidConfig = errors.New("invalid configuration")
)
