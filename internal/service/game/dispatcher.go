package game

import (
	"errors"
	"fmt"
	"log"

	"github.com/iamasit07/4-in-a-row/client/internal/domain"
)

// View is the part of the UI the dispatcher is allowed to change.
type View interface {
	PlaceMarker(player domain.PlayerID, column, row int)
	ShowNotice(text string)
	SetLinks(join, watch string)
}

const ErrSessionOver domain.Error = "game already finished"

// Dispatcher applies inbound events to the view. After a win event it
// accepts nothing further.
type Dispatcher struct {
	Session *Session
	View    View
	Closer  Closer

	finished bool
	winner   domain.PlayerID
}

func NewDispatcher(s *Session, view View, closer Closer) *Dispatcher {
	return &Dispatcher{Session: s, View: view, Closer: closer}
}

// Dispatch decodes one message and performs its UI action. Errors are
// returned before the view is touched.
func (d *Dispatcher) Dispatch(data []byte) error {
	if d.finished {
		return ErrSessionOver
	}

	event, err := domain.Decode(data)
	if err != nil {
		log.Printf("[DISPATCH] Rejected message: %v", err)
		return err
	}

	switch e := event.(type) {
	case domain.InitEvent:
		d.View.SetLinks(d.Session.JoinLink(e.JoinKey()), d.Session.WatchLink(e.WatchKey()))

	case domain.PlayEvent:
		if !e.Applied() {
			return fmt.Errorf("%w: play without player or row", domain.ErrMalformedEvent)
		}
		if !e.Player.IsPlayer() || !domain.InBounds(*e.Row, e.Column) {
			return fmt.Errorf("%w: player %d column %d row %d", domain.ErrInvalidCell, *e.Player, e.Column, *e.Row)
		}
		d.View.PlaceMarker(*e.Player, e.Column, *e.Row)

	case domain.WinEvent:
		if !e.Player.IsPlayer() {
			return fmt.Errorf("%w: winner %d", domain.ErrInvalidCell, e.Player)
		}
		// Only the win notice; a win is not also reported as an error.
		d.finished = true
		d.winner = e.Player
		d.View.ShowNotice(WinNotice(e.Player))
		if d.Closer != nil {
			if err := d.Closer.CloseNormal(); err != nil {
				log.Printf("[DISPATCH] Close after win failed: %v", err)
			}
		}

	case domain.ErrorEvent:
		d.View.ShowNotice(e.Message)

	default:
		return fmt.Errorf("%w: %T", domain.ErrUnsupportedEvent, event)
	}
	return nil
}

func (d *Dispatcher) Finished() bool {
	return d.finished
}

func (d *Dispatcher) Winner() domain.PlayerID {
	return d.winner
}

func WinNotice(player domain.PlayerID) string {
	return fmt.Sprintf("Player %d wins!", player)
}

// IsProtocolError reports whether err means the server sent something
// this client cannot process.
func IsProtocolError(err error) bool {
	return errors.Is(err, domain.ErrUnsupportedEvent) ||
		errors.Is(err, domain.ErrMalformedEvent) ||
		errors.Is(err, domain.ErrInvalidCell)
}
