package anim

import (
	"math/rand/v2"
	"time"
)

// Scene はマーカー群と共有パラメータを保持する描画コンテキスト
type Scene struct {
	Markers   []Marker
	Amplitude float64

	ticks int
}

// SceneConfig は Scene の生成パラメータ
type SceneConfig struct {
	Markers   int     // マーカー数
	Amplitude float64 // 軌道の振幅
}

// DefaultSceneConfig はデフォルトの生成パラメータを返す
func DefaultSceneConfig() SceneConfig {
	return SceneConfig{
		Markers:   15,
		Amplitude: DefaultAmplitude,
	}
}

// NewRand はシードから乱数生成器を作成する
// 0 を含むどのシードでも同じ列を返す
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewTimeRand は現在時刻をシードにした乱数生成器を作成する
func NewTimeRand() *rand.Rand {
	return NewRand(uint64(time.Now().UnixNano()))
}

// NewScene は新しい Scene を作成する
func NewScene(cfg SceneConfig, rng *rand.Rand) *Scene {
	markers := make([]Marker, cfg.Markers)
	for i := range markers {
		markers[i] = NewMarker(rng)
	}
	return &Scene{
		Markers:   markers,
		Amplitude: cfg.Amplitude,
	}
}

// Tick は全マーカーを1ティック進める
func (s *Scene) Tick() {
	for i := range s.Markers {
		s.Markers[i].Advance()
	}
	s.ticks++
}

// Step は n ティック進める
func (s *Scene) Step(n int) {
	for range n {
		s.Tick()
	}
}

// Ticks は経過ティック数を返す
func (s *Scene) Ticks() int {
	return s.ticks
}

// Positions は全マーカーの現在座標をマーカー順に返す
func (s *Scene) Positions() []Point {
	points := make([]Point, len(s.Markers))
	for i, m := range s.Markers {
		points[i] = m.Position(s.Amplitude)
	}
	return points
}
