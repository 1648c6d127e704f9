package domain

import (
	"encoding/json"
	"fmt"
)

type EventType string

const (
	EventInit  EventType = "init"
	EventPlay  EventType = "play"
	EventWin   EventType = "win"
	EventError EventType = "error"
)

// Event is one message on the connection. The set of variants is closed:
// InitEvent, PlayEvent, WinEvent and ErrorEvent.
type Event interface {
	Type() EventType
	isEvent()
}

// InitEvent identifies the client's role when sent, and carries the
// server-assigned join/watch keys when received. A nil key is absent from
// the wire; a pointer to "" is sent as an empty value.
type InitEvent struct {
	Join  *string `json:"join,omitempty"`
	Watch *string `json:"watch,omitempty"`
}

// PlayEvent is a column selection. Player and Row are only set on moves
// the server has applied and echoed back.
type PlayEvent struct {
	Column int       `json:"column"`
	Player *PlayerID `json:"player,omitempty"`
	Row    *int      `json:"row,omitempty"`
}

type WinEvent struct {
	Player PlayerID `json:"player"`
}

type ErrorEvent struct {
	Message string `json:"message"`
}

func (InitEvent) Type() EventType  { return EventInit }
func (PlayEvent) Type() EventType  { return EventPlay }
func (WinEvent) Type() EventType   { return EventWin }
func (ErrorEvent) Type() EventType { return EventError }

func (InitEvent) isEvent()  {}
func (PlayEvent) isEvent()  {}
func (WinEvent) isEvent()   {}
func (ErrorEvent) isEvent() {}

// Key returns a pointer to k for building InitEvent values.
func Key(k string) *string {
	return &k
}

// JoinKey is the join key, or "" when absent.
func (e InitEvent) JoinKey() string {
	if e.Join == nil {
		return ""
	}
	return *e.Join
}

// WatchKey is the watch key, or "" when absent.
func (e InitEvent) WatchKey() string {
	if e.Watch == nil {
		return ""
	}
	return *e.Watch
}

// NewMove builds an outbound play event.
func NewMove(column int) PlayEvent {
	return PlayEvent{Column: column}
}

// Applied reports whether the server filled in player and row.
func (e PlayEvent) Applied() bool {
	return e.Player != nil && e.Row != nil
}

// envelope is the flat wire shape shared by every event.
type envelope struct {
	Type    EventType `json:"type"`
	Join    *string   `json:"join,omitempty"`
	Watch   *string   `json:"watch,omitempty"`
	Column  *int      `json:"column,omitempty"`
	Player  *PlayerID `json:"player,omitempty"`
	Row     *int      `json:"row,omitempty"`
	Message *string   `json:"message,omitempty"`
}

// Encode serializes an event as a single JSON object tagged with "type".
func Encode(event Event) ([]byte, error) {
	env := envelope{}
	switch e := event.(type) {
	case InitEvent:
		env.Type = EventInit
		env.Join = e.Join
		env.Watch = e.Watch
	case PlayEvent:
		column := e.Column
		env.Type = EventPlay
		env.Column = &column
		env.Player = e.Player
		env.Row = e.Row
	case WinEvent:
		player := e.Player
		env.Type = EventWin
		env.Player = &player
	case ErrorEvent:
		message := e.Message
		env.Type = EventError
		env.Message = &message
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedEvent, event)
	}
	return json.Marshal(env)
}

// Decode parses one wire message into its concrete event.
func Decode(data []byte) (Event, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}

	switch env.Type {
	case EventInit:
		return InitEvent{Join: env.Join, Watch: env.Watch}, nil
	case EventPlay:
		if env.Column == nil {
			return nil, fmt.Errorf("%w: play without column", ErrMalformedEvent)
		}
		return PlayEvent{Column: *env.Column, Player: env.Player, Row: env.Row}, nil
	case EventWin:
		if env.Player == nil {
			return nil, fmt.Errorf("%w: win without player", ErrMalformedEvent)
		}
		return WinEvent{Player: *env.Player}, nil
	case EventError:
		if env.Message == nil {
			return ErrorEvent{}, nil
		}
		return ErrorEvent{Message: *env.Message}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEvent, env.Type)
	}
}
