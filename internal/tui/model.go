// Package tui はパスアニメーターを端末上に描画する
package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"funweb/internal/anim"
)

// 端末サイズが届く前に使う描画サイズ
const (
	defaultCols = 72
	defaultRows = 19
)

var (
	markerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FFFF")).Background(lipgloss.Color("#000000"))
	blankStyle  = lipgloss.NewStyle().Background(lipgloss.Color("#000000"))
)

// tickMsg はティックごとに届くメッセージ
type tickMsg time.Time

// Model は Scene を保持する bubbletea モデル
type Model struct {
	scene    *anim.Scene
	interval time.Duration
	canvas   anim.Canvas
}

// New は新しい Model を作成する
func New(scene *anim.Scene, interval time.Duration) Model {
	return Model{
		scene:    scene,
		interval: interval,
		canvas:   anim.NewCanvas(defaultCols, defaultRows, scene.Amplitude),
	}
}

// tick は次のティックを予約する
func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init は最初のティックを予約する
func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update はメッセージに応じてモデルを更新する
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.scene.Tick()
		return m, m.tick()

	case tea.WindowSizeMsg:
		// 最終行はステータス表示に使う
		rows := msg.Height - 1
		if rows < 1 {
			rows = 1
		}
		m.canvas = anim.NewCanvas(msg.Width, rows, m.scene.Amplitude)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}
	return m, nil
}

// View は現在のフレームを描画する
func (m Model) View() string {
	grid := m.canvas.Render(m.scene.Positions())

	var b strings.Builder
	for _, row := range grid {
		for _, set := range row {
			if set {
				b.WriteString(markerStyle.Render("●"))
			} else {
				b.WriteString(blankStyle.Render(" "))
			}
		}
		b.WriteByte('\n')
	}
	b.WriteString("q: quit")
	return b.String()
}

// Scene は描画中の Scene を返す
func (m Model) Scene() *anim.Scene {
	return m.scene
}
