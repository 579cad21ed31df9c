package tdr

// Outcome classifies one iteration of the rejection loop.
type Outcome int

const (
	// AcceptedBySqueeze is an acceptance below the squeeze, without
	// evaluating the density.
	AcceptedBySqueeze Outcome = iota
	// AcceptedByDensity is an acceptance below the density.
	AcceptedByDensity
	// Rejected is a rejected candidate.
	Rejected
)

func (o Outcome) String() string {
	switch o {
	case AcceptedBySqueeze:
		return "squeeze"
	case AcceptedByDensity:
		return "density"
	case Rejected:
		return "rejected"
	}
	return "unknown"
}

// Observer receives events of a generator. Implementations are called from
// the goroutine that uses the generator.
type Observer interface {
	ObserveTrial(o Outcome)
	ObserveIntervals(n int)
	ObserveSplitFailure(err error)
	ObserveIterationCap()
}

type nopObserver struct{}

func (nopObserver) ObserveTrial(Outcome)      {}
func (nopObserver) ObserveIntervals(int)      {}
func (nopObserver) ObserveSplitFailure(error) {}
func (nopObserver) ObserveIterationCap()      {}
