package listctl

// State is the lifecycle position of a Controller.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateEditing
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateEditing:
		return "editing"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalText renders the state by name in page views.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
