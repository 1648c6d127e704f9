package game

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/iamasit07/4-in-a-row/client/internal/domain"
)

// Sender delivers an event to the server.
type Sender interface {
	Send(event domain.Event) error
}

// Closer ends the connection with a normal closure.
type Closer interface {
	CloseNormal() error
}

const ErrInvalidColumn domain.Error = "invalid column"

// Relay forwards column selections to the server. It does not check
// whether a move is legal; the server answers with an error event if not.
type Relay struct {
	Session *Session
	Sender  Sender
}

func NewRelay(s *Session, sender Sender) *Relay {
	return &Relay{Session: s, Sender: sender}
}

// SelectColumn handles input on a column cell. tag is the cell's column
// index as text; an empty tag means the input landed outside any column.
// It reports whether a play event was sent.
func (r *Relay) SelectColumn(tag string) (bool, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return false, nil
	}

	// spectators cannot move
	if r.Session.IsSpectator() {
		return false, nil
	}

	column, err := strconv.Atoi(tag)
	if err != nil {
		return false, fmt.Errorf("%w: %q", ErrInvalidColumn, tag)
	}

	if err := r.Sender.Send(domain.NewMove(column)); err != nil {
		return false, fmt.Errorf("send play: %w", err)
	}
	log.Printf("[RELAY] Sent play for column %d", column)
	return true, nil
}
