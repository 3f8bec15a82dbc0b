package zenshare

// State is a step of CreateShareLink.
//
//	Idle -> Encrypting -> Uploading -> Ready
//	          |              |
//	          +--> Failed <--+
//
// States are never resumed; a retry starts over from Idle with fresh keys.
type State int

const (
	// StateIdle is the state before any work.
	StateIdle State = iota
	// StateEncrypting covers key generation, derivation and sealing.
	StateEncrypting
	// StateUploading covers the POST to the paste store.
	StateUploading
	// StateReady means the link was built.
	StateReady
	// StateFailed means the attempt was abandoned.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateEncrypting:
		return "encrypting"
	case StateUploading:
		return "uploading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition follows s.
func (s State) Terminal() bool {
	return s == StateReady || s == StateFailed
}

// StateHook observes CreateShareLink state transitions. It is called
// synchronously on the calling goroutine.
type StateHook func(State)
