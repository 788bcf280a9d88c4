package pagination

// FetchState is the controller's position in the fetch state machine.
type FetchState int

const (
	// StateIdle means no fetch is in flight.
	StateIdle FetchState = iota

	// StateFetching means one fetch is in flight and its page will be applied.
	StateFetching

	// StateFetchingWithResetPending means the in-flight page is stale and a
	// fetch from row 0 replaces it once it resolves.
	StateFetchingWithResetPending
)

// String implements fmt.Stringer.
func (s FetchState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetching:
		return "fetching"
	case StateFetchingWithResetPending:
		return "fetching_reset_pending"
	default:
		return "unknown"
	}
}
