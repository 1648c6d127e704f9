package ui

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iamasit07/4-in-a-row/client/internal/domain"
	"github.com/iamasit07/4-in-a-row/client/internal/service/game"
)

// InboundMsg carries one message read from the connection into the
// UI loop.
type InboundMsg struct {
	Data []byte
}

// ConnClosedMsg reports that the connection stopped delivering messages.
type ConnClosedMsg struct {
	Err error
}

// boardState is everything the dispatcher may change. It lives behind a
// pointer so the dispatcher and every copy of Model share it.
type boardState struct {
	board     *domain.Board
	notice    string
	joinLink  string
	watchLink string
}

func (s *boardState) PlaceMarker(player domain.PlayerID, column, row int) {
	if err := s.board.Place(player, column, row); err != nil {
		log.Printf("[UI] Dropped marker: %v", err)
	}
}

func (s *boardState) ShowNotice(text string) {
	s.notice = text
}

func (s *boardState) SetLinks(join, watch string) {
	s.joinLink = join
	s.watchLink = watch
}

// Model is the bubbletea model for one game session.
type Model struct {
	session    *game.Session
	relay      *game.Relay
	dispatcher *game.Dispatcher
	state      *boardState

	keys  KeyMap
	theme Theme
	help  help.Model

	cursor     int
	connClosed bool
	err        error
}

func NewModel(session *game.Session, sender game.Sender, closer game.Closer) Model {
	state := &boardState{board: domain.NewBoard()}
	return Model{
		session:    session,
		relay:      game.NewRelay(session, sender),
		dispatcher: game.NewDispatcher(session, state, closer),
		state:      state,
		keys:       DefaultKeyMap,
		theme:      DefaultTheme,
		help:       help.New(),
		cursor:     domain.Columns / 2,
	}
}

func (model Model) Init() tea.Cmd {
	return nil
}

func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.help.Width = message.Width
		return model, nil

	case InboundMsg:
		if err := model.dispatcher.Dispatch(message.Data); err != nil {
			if errors.Is(err, game.ErrSessionOver) {
				log.Printf("[UI] Ignoring message after game end")
				return model, nil
			}
			if game.IsProtocolError(err) {
				log.Printf("[UI] Protocol error from server: %v", err)
			} else {
				log.Printf("[UI] Dispatch failed: %v", err)
			}
			model.err = fmt.Errorf("dispatch: %w", err)
			return model, tea.Quit
		}
		return model, nil

	case ConnClosedMsg:
		model.connClosed = true
		if message.Err != nil && !model.dispatcher.Finished() {
			model.state.notice = "Connection lost: " + message.Err.Error()
		}
		return model, nil

	case tea.KeyMsg:
		return model.handleKey(message)
	}
	return model, nil
}

func (model Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit
	case key.Matches(message, model.keys.Dismiss):
		model.state.notice = ""
	case key.Matches(message, model.keys.Left):
		if model.cursor > 0 {
			model.cursor--
		}
	case key.Matches(message, model.keys.Right):
		if model.cursor < domain.Columns-1 {
			model.cursor++
		}
	case key.Matches(message, model.keys.Drop):
		model.selectColumn(strconv.Itoa(model.cursor))
	case key.Matches(message, model.keys.Column):
		number, _ := strconv.Atoi(message.String())
		model.cursor = number - 1
		model.selectColumn(strconv.Itoa(model.cursor))
	}
	return model, nil
}

// selectColumn is the equivalent of clicking the cell tagged with tag.
func (model *Model) selectColumn(tag string) {
	if model.session.IsSpectator() {
		return
	}
	if model.connClosed {
		model.state.notice = "Connection closed."
		return
	}
	if _, err := model.relay.SelectColumn(tag); err != nil {
		model.state.notice = err.Error()
	}
}

// Err is the protocol error that ended the session, if any.
func (model Model) Err() error {
	return model.err
}

func (model Model) Board() *domain.Board {
	return model.state.board
}

func (model Model) Notice() string {
	return model.state.notice
}

func (model Model) Links() (join, watch string) {
	return model.state.joinLink, model.state.watchLink
}

func (model Model) Cursor() int {
	return model.cursor
}

func (model Model) View() string {
	var b strings.Builder

	header := lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderText)
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	b.WriteString(header.Render("Connect Four"))
	b.WriteString(faint.Render("  " + roleLabel(model.session.Role())))
	b.WriteString("\n\n")

	b.WriteString(model.renderBoard())
	b.WriteString("\n")

	join, watch := model.Links()
	if join != "" {
		b.WriteString(faint.Render("Invite: ") + join + "\n")
	}
	if watch != "" {
		b.WriteString(faint.Render("Watch:  ") + watch + "\n")
	}

	if model.state.notice != "" {
		notice := lipgloss.NewStyle().Bold(true).Foreground(model.theme.Notice)
		b.WriteString("\n" + notice.Render(model.state.notice) + "\n")
	}
	if model.dispatcher.Finished() {
		b.WriteString(faint.Render(fmt.Sprintf("game over, player %d won", model.dispatcher.Winner())) + "\n")
	}
	if model.connClosed {
		b.WriteString(faint.Render("disconnected") + "\n")
	}

	b.WriteString("\n" + model.help.ShortHelpView(model.keys.help(model.session.IsSpectator())))
	return b.String()
}

func (model Model) renderBoard() string {
	frame := lipgloss.NewStyle().Foreground(model.theme.Frame)
	cursor := lipgloss.NewStyle().Bold(true).Foreground(model.theme.Cursor)
	empty := lipgloss.NewStyle().Foreground(model.theme.EmptyCell)
	label := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	players := map[domain.PlayerID]lipgloss.Style{
		domain.Player1: lipgloss.NewStyle().Foreground(model.theme.Player1),
		domain.Player2: lipgloss.NewStyle().Foreground(model.theme.Player2),
	}

	var b strings.Builder

	b.WriteString(" ")
	for column := 0; column < domain.Columns; column++ {
		if column == model.cursor && !model.session.IsSpectator() {
			b.WriteString(cursor.Render(" v"))
		} else {
			b.WriteString("  ")
		}
	}
	b.WriteString("\n")

	// row 0 is the bottom of the board
	grid := model.state.board.Snapshot()
	for row := domain.Rows - 1; row >= 0; row-- {
		b.WriteString(frame.Render("|"))
		for column := 0; column < domain.Columns; column++ {
			player := grid[row][column]
			if style, ok := players[player]; ok {
				b.WriteString(" " + style.Render("O"))
			} else {
				b.WriteString(" " + empty.Render("."))
			}
		}
		b.WriteString(frame.Render(" |") + "\n")
	}
	b.WriteString(frame.Render("+" + strings.Repeat("--", domain.Columns) + "-+"))
	b.WriteString("\n ")
	for column := 1; column <= domain.Columns; column++ {
		b.WriteString(label.Render(fmt.Sprintf(" %d", column)))
	}
	b.WriteString("\n")
	return b.String()
}

func roleLabel(role game.Role) string {
	switch role {
	case game.RoleJoiner:
		return "second player"
	case game.RoleSpectator:
		return "spectating"
	default:
		return "first player"
	}
}
