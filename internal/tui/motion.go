package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"funweb/internal/anim"
)

// トラックの左右に空ける幅
const trackMargin = 2

var (
	trackStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#555555"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF"))
	statusStyle = lipgloss.NewStyle().Faint(true)
)

// MotionModel は MotionSim を操作する bubbletea モデル
//
// space/enter で開始、p で一時停止、r でリセット、q/esc/ctrl+c で終了する。
type MotionModel struct {
	sim      *anim.MotionSim
	interval time.Duration
	cols     int

	// lastTime は前回ティックの時刻。ゼロ値なら次のティックで計測を始める
	lastTime time.Time
}

// NewMotion は新しい MotionModel を作成する
func NewMotion(sim *anim.MotionSim, interval time.Duration) MotionModel {
	return MotionModel{
		sim:      sim,
		interval: interval,
		cols:     defaultCols,
	}
}

func (m MotionModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init は最初のティックを予約する
func (m MotionModel) Init() tea.Cmd {
	return m.tick()
}

// Update はメッセージに応じてモデルを更新する
func (m MotionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		now := time.Time(msg)
		if m.sim.Running() {
			if !m.lastTime.IsZero() {
				m.sim.Step(now.Sub(m.lastTime).Seconds())
			}
			m.lastTime = now
		}
		return m, m.tick()

	case tea.WindowSizeMsg:
		m.cols = max(msg.Width, trackMargin*2+1)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case " ", "enter":
			if !m.sim.Running() {
				m.sim.Start()
				m.lastTime = time.Time{}
			}
		case "p", "P":
			m.sim.Pause()
		case "r", "R":
			m.sim.Reset()
			m.lastTime = time.Time{}
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}
	return m, nil
}

// View は各物体のトラックとラベルを描画する
func (m MotionModel) View() string {
	width := m.cols - trackMargin*2

	var b strings.Builder
	for _, o := range m.sim.Objects {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%s  Speed: %.1f m/s  Distance: %.1f m", o.Name, o.Speed, o.Position)))
		b.WriteByte('\n')

		pos := int(math.Round(m.sim.Progress(o) * float64(width-1)))
		marker := lipgloss.NewStyle().Foreground(lipgloss.Color(o.Color)).Render("●")

		b.WriteString(strings.Repeat(" ", trackMargin))
		b.WriteString(trackStyle.Render(strings.Repeat("─", pos)))
		b.WriteString(marker)
		b.WriteString(trackStyle.Render(strings.Repeat("─", width-1-pos)))
		b.WriteString("\n\n")
	}

	state := "paused"
	if m.sim.Running() {
		state = "running"
	}
	b.WriteString(statusStyle.Render(fmt.Sprintf("[%s] space: start  p: pause  r: reset  q: quit", state)))
	return b.String()
}

// Sim は操作中の MotionSim を返す
func (m MotionModel) Sim() *anim.MotionSim {
	return m.sim
}
