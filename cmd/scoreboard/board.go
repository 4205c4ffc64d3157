package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sicko7947/gamestate"
	"github.com/sicko7947/gamestate/internal/config"
	"github.com/sicko7947/gamestate/session"
	"github.com/spf13/cobra"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

var (
	scoreStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			Padding(0, 1)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

// Store updates delivered to the program
type (
	scoreMsg gamestate.ScoreState
	modalMsg gamestate.Corner
)

// bridge hands store notifications to the bubbletea event loop. Store
// callbacks run inside Update, so they must never block; only the latest
// value is kept since every notification carries the full state.
type bridge[T any] struct {
	ch chan T
}

func newBridge[T any]() *bridge[T] {
	return &bridge[T]{ch: make(chan T, 1)}
}

func (b *bridge[T]) publish(v T) {
	for {
		select {
		case b.ch <- v:
			return
		default:
			select {
			case <-b.ch:
			default:
			}
		}
	}
}

func (b *bridge[T]) wait() tea.Cmd {
	return func() tea.Msg {
		return <-b.ch
	}
}

// board renders a session's stores
type board struct {
	session *session.Session

	scores *bridge[scoreMsg]
	modals *bridge[modalMsg]
	unsubs []gamestate.Unsubscriber

	score  int
	corner gamestate.Corner

	width  int
	height int
}

func newBoard(s *session.Session) *board {
	b := &board{
		session: s,
		scores:  newBridge[scoreMsg](),
		modals:  newBridge[modalMsg](),
		width:   defaultWidth,
		height:  defaultHeight,
	}

	b.unsubs = append(b.unsubs,
		s.Score().Subscribe(func(st gamestate.ScoreState) { b.scores.publish(scoreMsg(st)) }),
		s.Modal().Subscribe(func(c gamestate.Corner) { b.modals.publish(modalMsg(c)) }),
	)

	return b
}

func (b *board) close() {
	for _, unsub := range b.unsubs {
		unsub()
	}
	b.unsubs = nil
}

func (b *board) Init() tea.Cmd {
	return tea.Batch(b.scores.wait(), b.modals.wait())
}

func (b *board) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case scoreMsg:
		b.score = msg.Score
		return b, b.scores.wait()

	case modalMsg:
		b.corner = gamestate.Corner(msg)
		return b, b.modals.wait()

	case tea.WindowSizeMsg:
		b.width, b.height = msg.Width, msg.Height
		return b, nil

	case tea.KeyMsg:
		return b, b.handleKey(msg)
	}

	return b, nil
}

func (b *board) handleKey(msg tea.KeyMsg) tea.Cmd {
	score := b.session.Score()
	modal := b.session.Modal()

	switch key := msg.String(); key {
	case "q", "ctrl+c":
		return tea.Quit
	case " ", "+":
		score.AddScore(1)
	case "-":
		score.AddScore(-1)
	case "r":
		score.ResetScore()
	case "1", "2", "3", "4":
		modal.SetOpenModal(gamestate.AllCorners[key[0]-'1'])
	case "esc":
		modal.CloseModal()
	}
	return nil
}

func (b *board) View() string {
	header := scoreStyle.Render(fmt.Sprintf("Score: %d", b.score))
	help := helpStyle.Render("space/+ add  - subtract  r reset  1-4 open modal  esc close  q quit")

	cellW := max(b.width/2, 16)
	cellH := max((b.height-4)/2, 3)

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		b.cell(gamestate.CornerTopLeft, cellW, cellH),
		b.cell(gamestate.CornerTopRight, cellW, cellH),
	)
	bottom := lipgloss.JoinHorizontal(lipgloss.Top,
		b.cell(gamestate.CornerBottomLeft, cellW, cellH),
		b.cell(gamestate.CornerBottomRight, cellW, cellH),
	)

	lines := []string{header, top, bottom}
	if b.corner.IsOpen() && !b.corner.Known() {
		lines = append(lines, warnStyle.Render(fmt.Sprintf("modal open in unrecognised corner %q", string(b.corner))))
	}
	lines = append(lines, help)

	return strings.Join(lines, "\n")
}

// cell draws one quadrant, with the modal pinned to its outer corner when open
func (b *board) cell(corner gamestate.Corner, width, height int) string {
	content := ""
	if b.corner == corner {
		content = modalStyle.Render(fmt.Sprintf("%s modal\nscore %d", corner, b.score))
	}

	hPos, vPos := lipgloss.Left, lipgloss.Top
	if corner == gamestate.CornerTopRight || corner == gamestate.CornerBottomRight {
		hPos = lipgloss.Right
	}
	if corner == gamestate.CornerBottomLeft || corner == gamestate.CornerBottomRight {
		vPos = lipgloss.Bottom
	}

	return lipgloss.Place(width, height, hPos, vPos, content)
}

func runBoard(cmd *cobra.Command, cfg config.Config) error {
	logger, logCloser, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	history, err := openHistory(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	opts := []session.Option{
		session.WithLogger(logger),
		session.WithConfig(cfg.SessionConfig()),
		session.WithContext(cmd.Context()),
	}
	if history != nil {
		opts = append(opts, session.WithHistory(history))
	}

	s := session.New(opts...)
	defer s.Close()

	b := newBoard(s)
	defer b.close()

	if _, err := tea.NewProgram(b, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run(); err != nil {
		return fmt.Errorf("run board: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Session %s ended with score %d\n", s.ID(), s.Score().Get().Score)
	return nil
}
