package ui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamasit07/4-in-a-row/client/internal/domain"
	"github.com/iamasit07/4-in-a-row/client/internal/service/game"
)

type fakeConn struct {
	sent   []domain.Event
	closes int
}

func (c *fakeConn) Send(event domain.Event) error {
	c.sent = append(c.sent, event)
	return nil
}

func (c *fakeConn) CloseNormal() error {
	c.closes++
	return nil
}

func testModel(t *testing.T, pageURL string) (Model, *fakeConn) {
	t.Helper()
	session, err := game.ParseSession(pageURL)
	require.NoError(t, err)
	conn := &fakeConn{}
	return NewModel(session, conn, conn), conn
}

func update(t *testing.T, model Model, message tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, command := model.Update(message)
	next, ok := updated.(Model)
	require.True(t, ok)
	return next, command
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestColumnKeySendsPlay(t *testing.T) {
	model, conn := testModel(t, "http://localhost:8000/")

	model, _ = update(t, model, runeKey('4'))

	assert.Equal(t, []domain.Event{domain.NewMove(3)}, conn.sent)
	assert.Equal(t, 3, model.Cursor())
}

func TestCursorAndEnterSendPlay(t *testing.T) {
	model, conn := testModel(t, "http://localhost:8000/?join=abc")
	require.Equal(t, 3, model.Cursor())

	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyLeft})
	model, _ = update(t, model, runeKey('h'))
	model, _ = update(t, model, runeKey('h'))
	model, _ = update(t, model, runeKey('h'))
	assert.Equal(t, 0, model.Cursor())

	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, []domain.Event{domain.NewMove(0)}, conn.sent)

	for i := 0; i < 10; i++ {
		model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyRight})
	}
	assert.Equal(t, domain.Columns-1, model.Cursor())
}

func TestSpectatorKeysSendNothing(t *testing.T) {
	model, conn := testModel(t, "http://localhost:8000/?watch=xyz")

	model, _ = update(t, model, runeKey('2'))
	_, _ = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Empty(t, conn.sent)
}

func TestInboundPlayPlacesMarker(t *testing.T) {
	model, _ := testModel(t, "http://localhost:8000/")

	model, command := update(t, model, InboundMsg{Data: []byte(`{"type":"play","player":1,"column":3,"row":0}`)})

	assert.Nil(t, command)
	assert.Equal(t, domain.Player1, model.Board().At(0, 3))
	assert.Contains(t, model.View(), "O")
	assert.NotContains(t, model.View(), "game over")
}

func TestInboundWinNotifiesAndCloses(t *testing.T) {
	model, conn := testModel(t, "http://localhost:8000/")

	model, _ = update(t, model, InboundMsg{Data: []byte(`{"type":"win","player":2}`)})

	assert.Equal(t, "Player 2 wins!", model.Notice())
	assert.Equal(t, 1, conn.closes)
	assert.Contains(t, model.View(), "Player 2 wins!")
	assert.Contains(t, model.View(), "game over, player 2 won")

	model, command := update(t, model, InboundMsg{Data: []byte(`{"type":"error","message":"late"}`)})
	assert.Nil(t, command)
	assert.NoError(t, model.Err())
	assert.Equal(t, "Player 2 wins!", model.Notice())
}

func TestInboundInitSetsLinks(t *testing.T) {
	model, _ := testModel(t, "http://localhost:8000/")

	model, _ = update(t, model, InboundMsg{Data: []byte(`{"type":"init","join":"j1","watch":"w1"}`)})

	join, watch := model.Links()
	assert.Equal(t, "http://localhost:8000/?join=j1", join)
	assert.Equal(t, "http://localhost:8000/?watch=w1", watch)
	assert.Contains(t, model.View(), join)
}

func TestInboundUnknownTypeQuits(t *testing.T) {
	model, _ := testModel(t, "http://localhost:8000/")

	model, command := update(t, model, InboundMsg{Data: []byte(`{"type":"draw"}`)})

	require.NotNil(t, command)
	assert.Equal(t, tea.Quit(), command())
	assert.ErrorIs(t, model.Err(), domain.ErrUnsupportedEvent)
	assert.Equal(t, 0, model.Board().Moves())
	assert.Empty(t, model.Notice())
}

func TestErrorNoticeIsDismissible(t *testing.T) {
	model, _ := testModel(t, "http://localhost:8000/")

	model, _ = update(t, model, InboundMsg{Data: []byte(`{"type":"error","message":"Not your turn."}`)})
	assert.Equal(t, "Not your turn.", model.Notice())

	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, model.Notice())
}

func TestClosedConnectionStopsSending(t *testing.T) {
	model, conn := testModel(t, "http://localhost:8000/")

	model, _ = update(t, model, ConnClosedMsg{Err: errors.New("EOF")})
	assert.Equal(t, "Connection lost: EOF", model.Notice())

	model, _ = update(t, model, runeKey('1'))
	assert.Empty(t, conn.sent)
	assert.Equal(t, "Connection closed.", model.Notice())
	assert.Contains(t, model.View(), "disconnected")
}

func TestQuitKey(t *testing.T) {
	model, _ := testModel(t, "http://localhost:8000/")

	_, command := update(t, model, runeKey('q'))
	require.NotNil(t, command)
	assert.Equal(t, tea.Quit(), command())
}
