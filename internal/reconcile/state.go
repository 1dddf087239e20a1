package reconcile

type State string

const (
	StateIdle            State = "IDLE"
	StateAwaitingGateway State = "AWAITING_GATEWAY"
	StateVerifying       State = "VERIFYING"
	StateBooking         State = "BOOKING"
	StateSucceeded       State = "SUCCEEDED"
	StateFailed          State = "FAILED"
)

// Idle -> Failed covers bookings that never reached the gateway (staging or
// redirect construction failed). Terminal states only ever reset to Idle.
var validNext = map[State]map[State]bool{
	StateIdle:            {StateAwaitingGateway: true, StateBooking: true, StateFailed: true},
	StateAwaitingGateway: {StateVerifying: true, StateFailed: true},
	StateVerifying:       {StateBooking: true, StateFailed: true},
	StateBooking:         {StateSucceeded: true, StateFailed: true},
	StateSucceeded:       {StateIdle: true},
	StateFailed:          {StateIdle: true},
}

func CanTransition(from, to State) bool {
	return validNext[from][to]
}

func (s State) Terminal() bool {
	return s == StateSucceeded || s == StateFailed
}
