package game

import (
	"fmt"
	"net/url"

	"github.com/iamasit07/4-in-a-row/client/internal/domain"
)

type Role string

const (
	RoleCreator   Role = "creator"
	RoleJoiner    Role = "joiner"
	RoleSpectator Role = "spectator"
)

// Session is what the client knows about itself: where it was served
// from and which game, if any, it is attaching to.
type Session struct {
	page     *url.URL
	join     string
	hasJoin  bool
	watch    string
	hasWatch bool
}

// ParseSession reads the page URL the client was opened with. The
// "join" and "watch" query parameters select the role.
func ParseSession(pageURL string) (*Session, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid page url: %w", err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid page url %q: missing host", pageURL)
	}

	q := u.Query()
	return &Session{
		page:     u,
		join:     q.Get("join"),
		hasJoin:  q.Has("join"),
		watch:    q.Get("watch"),
		hasWatch: q.Has("watch"),
	}, nil
}

// WithJoin returns a copy of the session that joins the given game.
func (s *Session) WithJoin(key string) *Session {
	copied := *s
	copied.join, copied.hasJoin = key, true
	return &copied
}

// WithWatch returns a copy of the session that spectates the given game.
func (s *Session) WithWatch(key string) *Session {
	copied := *s
	copied.watch, copied.hasWatch = key, true
	return &copied
}

func (s *Session) Host() string {
	return s.page.Host
}

func (s *Session) PageURL() string {
	return s.page.String()
}

func (s *Session) Role() Role {
	switch {
	case s.hasWatch:
		return RoleSpectator
	case s.hasJoin:
		return RoleJoiner
	default:
		return RoleCreator
	}
}

func (s *Session) IsSpectator() bool {
	return s.Role() == RoleSpectator
}

// InitEvent is sent once, as soon as the connection opens.
func (s *Session) InitEvent() domain.InitEvent {
	event := domain.InitEvent{}
	if s.hasJoin {
		event.Join = domain.Key(s.join)
	}
	if s.hasWatch {
		event.Watch = domain.Key(s.watch)
	}
	return event
}

func (s *Session) JoinLink(key string) string {
	return s.link("join", key)
}

func (s *Session) WatchLink(key string) string {
	return s.link("watch", key)
}

// link resolves "?<param>=<key>" against the page URL.
func (s *Session) link(param, key string) string {
	if key == "" {
		return ""
	}
	ref := &url.URL{RawQuery: url.Values{param: {key}}.Encode()}
	return s.page.ResolveReference(ref).String()
}
