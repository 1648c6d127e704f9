package domain

type PlayerID int

const (
	Empty   PlayerID = 0
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

const (
	Rows    = 6
	Columns = 7
)

// IsPlayer reports whether p names one of the two seats.
func (p PlayerID) IsPlayer() bool {
	return p == Player1 || p == Player2
}

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrMalformedEvent   Error = "malformed event"
	ErrUnsupportedEvent Error = "unsupported event type"
	ErrInvalidCell      Error = "invalid cell"
)
