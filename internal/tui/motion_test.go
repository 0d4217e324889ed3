package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"funweb/internal/anim"
)

func newTestMotion(t *testing.T) MotionModel {
	t.Helper()
	sim := anim.NewMotionSim(anim.DefaultMotionParams(), anim.DefaultMotionObjects())
	return NewMotion(sim, 40*time.Millisecond)
}

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMotionModel_InitSchedulesTick(t *testing.T) {
	m := newTestMotion(t)
	assert.NotNil(t, m.Init())
}

func TestMotionModel_TickWhilePausedDoesNothing(t *testing.T) {
	m := newTestMotion(t)
	t0 := time.Now()

	updated, cmd := m.Update(tickMsg(t0))
	require.NotNil(t, cmd, "停止中も次のティックは予約する")
	updated, _ = updated.Update(tickMsg(t0.Add(time.Second)))

	for _, o := range updated.(MotionModel).Sim().Objects {
		assert.Equal(t, 0.0, o.Position)
	}
}

func TestMotionModel_StartKeys(t *testing.T) {
	for _, k := range []string{" ", "enter"} {
		t.Run(k, func(t *testing.T) {
			m := newTestMotion(t)
			updated, cmd := m.Update(key(k))
			assert.Nil(t, cmd)
			assert.True(t, updated.(MotionModel).Sim().Running())
		})
	}
}

func TestMotionModel_StepUsesElapsedTime(t *testing.T) {
	m := newTestMotion(t)
	t0 := time.Now()

	var model tea.Model = m
	model, _ = model.Update(key(" "))
	// 開始直後のティックは計測開始のみ
	model, _ = model.Update(tickMsg(t0))
	for _, o := range model.(MotionModel).Sim().Objects {
		assert.Equal(t, 0.0, o.Position)
	}

	model, _ = model.Update(tickMsg(t0.Add(100 * time.Millisecond)))

	want := anim.NewMotionSim(anim.DefaultMotionParams(), anim.DefaultMotionObjects())
	want.Start()
	want.Step(0.1)
	for i, o := range model.(MotionModel).Sim().Objects {
		assert.InDelta(t, want.Objects[i].Position, o.Position, 1e-9)
		assert.InDelta(t, want.Objects[i].Speed, o.Speed, 1e-9)
	}
}

func TestMotionModel_PauseKeepsPosition(t *testing.T) {
	m := newTestMotion(t)
	t0 := time.Now()

	var model tea.Model = m
	model, _ = model.Update(key(" "))
	model, _ = model.Update(tickMsg(t0))
	model, _ = model.Update(tickMsg(t0.Add(200 * time.Millisecond)))
	model, _ = model.Update(key("p"))

	sim := model.(MotionModel).Sim()
	require.False(t, sim.Running())
	before := sim.Objects[0].Position
	require.Greater(t, before, 0.0)

	model, _ = model.Update(tickMsg(t0.Add(time.Second)))
	assert.Equal(t, before, sim.Objects[0].Position)

	// 再開後、停止していた時間は計上しない
	model, _ = model.Update(key(" "))
	model, _ = model.Update(tickMsg(t0.Add(10 * time.Second)))
	assert.Equal(t, before, sim.Objects[0].Position)
	_, _ = model.Update(tickMsg(t0.Add(10*time.Second + 50*time.Millisecond)))
	assert.Greater(t, sim.Objects[0].Position, before)
	assert.Less(t, sim.Objects[0].Position, sim.Params.MaxDistance)
}

func TestMotionModel_ResetKey(t *testing.T) {
	m := newTestMotion(t)
	t0 := time.Now()

	var model tea.Model = m
	model, _ = model.Update(key(" "))
	model, _ = model.Update(tickMsg(t0))
	model, _ = model.Update(tickMsg(t0.Add(500 * time.Millisecond)))
	model, _ = model.Update(key("r"))

	sim := model.(MotionModel).Sim()
	assert.False(t, sim.Running())
	for _, o := range sim.Objects {
		assert.Equal(t, 0.0, o.Position)
		assert.Equal(t, o.InitialSpeed, o.Speed)
	}
}

func TestMotionModel_QuitKeys(t *testing.T) {
	for _, k := range []tea.KeyMsg{
		key("q"),
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	} {
		t.Run(k.String(), func(t *testing.T) {
			m := newTestMotion(t)
			_, cmd := m.Update(k)
			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
		})
	}
}

func TestMotionModel_View(t *testing.T) {
	m := newTestMotion(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 12})
	view := updated.(MotionModel).View()

	assert.Contains(t, view, "A  Speed: 4.0 m/s  Distance: 0.0 m")
	assert.Contains(t, view, "B  Speed: 6.0 m/s  Distance: 0.0 m")
	assert.Contains(t, view, "C  Speed: 8.0 m/s  Distance: 0.0 m")
	assert.Equal(t, 3, strings.Count(view, "●"))
	assert.Contains(t, view, "[paused]")

	lines := strings.Split(view, "\n")
	assert.Contains(t, lines[len(lines)-1], "space: start")
}

func TestMotionModel_ViewMarkerAtFinish(t *testing.T) {
	sim := anim.NewMotionSim(anim.DefaultMotionParams(), []*anim.MovingObject{
		anim.NewMovingObject("A", "#FF0000", 10, 4),
	})
	sim.Objects[0].Position = sim.Params.MaxDistance
	m := NewMotion(sim, 40*time.Millisecond)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 20, Height: 5})

	lines := strings.Split(updated.(MotionModel).View(), "\n")
	// 2行目がトラック。ゴールに着いた物体は右端に描く
	assert.True(t, strings.HasSuffix(lines[1], "●"), "track: %q", lines[1])
}
