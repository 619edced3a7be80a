package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/TheAppMakerPro/gyro-maze/internal/core"
	"github.com/TheAppMakerPro/gyro-maze/internal/game"
)

// AttemptRecorder counts level attempts for the progress screen.
// Implementations must absorb their own errors.
type AttemptRecorder interface {
	AttemptStarted(level int)
}

// PlayResult says where the player wants to go after a play screen.
type PlayResult struct {
	NextLevel int  // advance to this level when > 0
	Restart   bool // rebuild the same level with fresh lives
	ToMenu    bool
	Quit      bool
}

// noticeDuration is how long transient pickup messages stay on screen.
const noticeDuration = 2 * time.Second

// PlayModel is the Bubble Tea model for one level session.
type PlayModel struct {
	session *game.Session
	rec     AttemptRecorder // may be nil
	tilt    *TiltController
	theme   Theme
	board   Board
	screen  *core.Screen

	settings Settings
	dt       float64
	width    int
	height   int

	notice      string
	noticeUntil time.Time
	lastWin     *game.Won
	lastLost    *game.Lost

	standalone bool // quit the program on exit instead of flagging
	done       bool
	result     PlayResult
	quitting   bool
}

// NewPlayModel wires a session to the terminal. The session must be in
// the loaded state; Init starts it.
func NewPlayModel(session *game.Session, rec AttemptRecorder, st Settings, width, height int) PlayModel {
	m := PlayModel{
		session:  session,
		rec:      rec,
		tilt:     NewTiltController(st.TiltRamp, st.TiltDecay, st.InvertY),
		theme:    GetTheme(),
		settings: st,
		dt:       1.0 / float64(st.FPS),
		width:    width,
		height:   height,
	}
	m.layout()
	return m
}

// layout fits the board to the current terminal size.
func (m *PlayModel) layout() {
	def := m.session.Definition()
	m.board = NewBoard(def, m.width-2, m.height-4)
	m.screen = core.NewScreen(m.board.Cols(), m.board.Rows())
}

// Init starts the session and the tick loop.
func (m PlayModel) Init() tea.Cmd {
	if err := m.session.Start(); err == nil && m.rec != nil {
		m.rec.AttemptStarted(m.session.Level())
	}
	return tickCmd(m.settings.FPS)
}

// Update handles messages and updates the model state.
func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m PlayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	now := time.Now()
	state := m.session.State()

	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		m.done = true
		m.result = PlayResult{Quit: true}
		return m, tea.Quit

	case "left", "a":
		m.tilt.PressX(-1, now)
	case "right", "d":
		m.tilt.PressX(1, now)
	case "up", "w":
		m.tilt.PressY(-1, now)
	case "down", "s":
		m.tilt.PressY(1, now)

	case "p":
		switch state {
		case game.StateRunning:
			m.session.Pause()
		case game.StatePaused:
			m.session.Resume()
		}

	case "t":
		if m.session.ActivateTimeWarp() {
			m.setNotice("time warp!", now)
		}

	case "esc":
		if state == game.StateRunning {
			m.session.Pause()
			return m, nil
		}
		return m.leave(PlayResult{ToMenu: true})

	case "b":
		if state == game.StatePaused || state.Terminal() {
			return m.leave(PlayResult{ToMenu: true})
		}

	case "r":
		if state == game.StateGameOver {
			// Out of lives: the caller rebuilds the run with a fresh
			// wallet load, which tops the lives back up.
			return m.leave(PlayResult{Restart: true})
		}
		return m.restartInPlace()

	case "n":
		if state == game.StateWon {
			next := m.session.Level() + 1
			if next <= m.settings.MaxLevel {
				return m.leave(PlayResult{NextLevel: next})
			}
			return m.leave(PlayResult{ToMenu: true})
		}
	}

	return m, nil
}

// leave finishes the play screen with the given result.
func (m PlayModel) leave(res PlayResult) (tea.Model, tea.Cmd) {
	m.done = true
	m.result = res
	if m.standalone {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// restartInPlace rebuilds the attempt without leaving the screen.
func (m PlayModel) restartInPlace() (tea.Model, tea.Cmd) {
	if err := m.session.Restart(); err != nil {
		return m, nil
	}
	m.tilt.Reset()
	m.notice = ""
	m.lastWin = nil
	m.lastLost = nil
	if err := m.session.Start(); err == nil && m.rec != nil {
		m.rec.AttemptStarted(m.session.Level())
	}
	return m, nil
}

// handleTick advances the simulation by one fixed frame.
func (m PlayModel) handleTick() (tea.Model, tea.Cmd) {
	if m.done && m.standalone {
		return m, nil
	}
	now := time.Now()
	tilt := m.tilt.Step(m.dt, now)
	for _, ev := range m.session.Tick(m.dt, tilt) {
		m.consumeEvent(ev, now)
	}
	return m, tickCmd(m.settings.FPS)
}

// consumeEvent turns gameplay events into HUD notices and overlay data.
func (m *PlayModel) consumeEvent(ev game.Event, now time.Time) {
	switch ev := ev.(type) {
	case game.PowerupCollected:
		m.setNotice(ev.Type.String()+"!", now)
	case game.PowerupExpired:
		m.setNotice(ev.Type.String()+" faded", now)
	case game.ShieldBurst:
		m.setNotice("shield burst!", now)
	case game.LifeGained:
		m.setNotice("extra life!", now)
	case game.BouncePadTriggered:
		m.setNotice("boing!", now)
	case game.Won:
		win := ev
		m.lastWin = &win
	case game.Lost:
		lost := ev
		m.lastLost = &lost
	}
}

func (m *PlayModel) setNotice(text string, now time.Time) {
	m.notice = text
	m.noticeUntil = now.Add(noticeDuration)
}

// View renders the play screen: HUD, board and footer.
func (m PlayModel) View() string {
	if m.quitting {
		return ""
	}

	m.board.Draw(m.screen, m.session.Definition(), m.session.LevelState(), m.theme)
	m.drawOverlay()

	pad := ""
	if left := (m.width - m.board.Cols()) / 2; left > 0 {
		pad = strings.Repeat(" ", left)
	}

	var b strings.Builder
	b.WriteString(" " + m.hudLine() + "\n")
	b.WriteString(" " + m.statusLine() + "\n")
	for _, line := range strings.Split(RenderScreen(m.screen), "\n") {
		b.WriteString(pad + line + "\n")
	}
	b.WriteString(" " + m.theme.HUDDim.Render(m.helpLine()))
	return b.String()
}

// hudLine summarizes the attempt: level, clock, pickups and lives.
func (m PlayModel) hudLine() string {
	def := m.session.Definition()
	elapsed := m.session.ElapsedMs()
	stars := strings.Repeat("★", def.StarsFor(elapsed))
	hearts := strings.Repeat("♥", max(0, m.session.Lives()))
	if hearts == "" {
		hearts = "-"
	}

	return fmt.Sprintf("%s  %s  %s  %s  %s",
		m.theme.HUDTitle.Render(fmt.Sprintf("Level %d · %s", def.ID, def.Name)),
		m.theme.HUDValue.Render(fmt.Sprintf("%6.1fs", float64(elapsed)/1000)),
		m.theme.HUDValue.Render(stars),
		m.theme.HUDValue.Render(fmt.Sprintf("coins %d/%d · bank %d",
			m.session.CoinsCollected(), len(def.Coins), m.session.WalletCoins())),
		m.theme.HUDValue.Render(hearts),
	)
}

// statusLine shows the transient notice or the running effect timers.
func (m PlayModel) statusLine() string {
	if m.notice != "" && time.Now().Before(m.noticeUntil) {
		return m.theme.Notice.Render(m.notice)
	}

	st := m.session.LevelState()
	elapsed := m.session.ElapsedMs()
	parts := make([]string, 0, len(st.Effects)+1)
	for _, e := range st.Effects {
		left := float64(e.EndsMs-elapsed) / 1000
		if left < 0 {
			left = 0
		}
		parts = append(parts, fmt.Sprintf("%s %.1fs", e.Type, left))
	}
	if m.session.TimeWarpAvailable() {
		parts = append(parts, "t: time warp ready")
	}
	return m.theme.HUDDim.Render(strings.Join(parts, " · "))
}

func (m PlayModel) helpLine() string {
	switch m.session.State() {
	case game.StateWon:
		return "n: next   r: retry   b: menu   q: quit"
	case game.StateLost:
		return "r: retry   b: menu   q: quit"
	case game.StateGameOver:
		return "r: start over   b: menu   q: quit"
	case game.StatePaused:
		return "p: resume   r: restart   b: menu   q: quit"
	}
	return "arrows/wasd: tilt   p: pause   r: restart   t: warp   q: quit"
}

// drawOverlay writes the state banner over the board when the attempt
// is paused or decided.
func (m PlayModel) drawOverlay() {
	switch m.session.State() {
	case game.StatePaused:
		drawOverlayLines(m.screen, []string{
			"P A U S E D",
			"",
			"p: resume",
		}, m.theme.Overlay)

	case game.StateWon:
		lines := []string{"LEVEL COMPLETE"}
		if w := m.lastWin; w != nil {
			lines = append(lines,
				fmt.Sprintf("time %.2fs  %s", float64(w.TimeMs)/1000, strings.Repeat("★", w.Stars)),
				fmt.Sprintf("coins %d · reward +%d", w.Coins, w.Reward),
			)
			if w.IsNewBest {
				lines = append(lines, "new best!")
			}
		}
		drawOverlayLines(m.screen, lines, m.theme.Overlay)

	case game.StateLost:
		lines := []string{"BALL LOST"}
		if m.lastLost != nil {
			lines = append(lines, fmt.Sprintf("lives left: %d", m.lastLost.Remaining))
		}
		drawOverlayLines(m.screen, lines, m.theme.Overlay)

	case game.StateGameOver:
		drawOverlayLines(m.screen, []string{
			"G A M E  O V E R",
		}, m.theme.Overlay)
	}
}

// Done reports whether the player has left the screen. The embedding
// flow model polls it after every update.
func (m PlayModel) Done() bool { return m.done }

// Result returns where to go next once Done.
func (m PlayModel) Result() PlayResult { return m.result }

// Level returns the level number the session is playing.
func (m PlayModel) Level() int { return m.session.Level() }

// IsQuitting reports whether the whole program should exit.
func (m PlayModel) IsQuitting() bool { return m.quitting }

// RunPlay runs one level session as its own Bubble Tea program and
// reports where the player wants to go next.
func RunPlay(session *game.Session, rec AttemptRecorder, st Settings, width, height int) (PlayResult, error) {
	model := NewPlayModel(session, rec, st, width, height)
	model.standalone = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return PlayResult{Quit: true}, err
	}
	m, ok := final.(PlayModel)
	if !ok {
		return PlayResult{Quit: true}, nil
	}
	if !m.Done() {
		return PlayResult{Quit: true}, nil
	}
	return m.Result(), nil
}
