package params

// kindDecision is the outcome of reconciling an incoming value's kind with a
// parameter's declared kind on the guarded Set path.
type kindDecision int

const (
	// kindInitialize commits the incoming kind onto an untyped declaration.
	kindInitialize kindDecision = iota
	// kindMatch leaves the declaration alone; the tags already agree.
	kindMatch
	// kindFollow adopts the incoming kind; checking is off, so the
	// declaration tracks whatever arrives.
	kindFollow
	// kindRetain keeps the declared kind and commits only the value.
	kindRetain
	// kindRaise aborts the pair: nothing is committed and the caller gets a
	// TypeMismatchError.
	kindRaise
)

// reconcile decides what a guarded update does about kinds. It is pure: the
// caller owns commits and events.
func reconcile(declared, incoming Kind, checkKind, raiseOnMismatch bool) kindDecision {
	switch {
	case !declared.Concrete():
		return kindInitialize
	case declared == incoming:
		return kindMatch
	case !checkKind:
		return kindFollow
	case raiseOnMismatch:
		return kindRaise
	default:
		return kindRetain
	}
}
