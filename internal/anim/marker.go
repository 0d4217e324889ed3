package anim

import (
	"math"
	"math/rand/v2"
)

// マーカー増分の範囲 [MinIncrement, MaxIncrement)
const (
	MinIncrement = 0.002
	MaxIncrement = 0.005
)

// DefaultAmplitude は軌道の大きさを決める共有定数
const DefaultAmplitude = 180.0

// Point は2次元座標
type Point struct {
	X float64
	Y float64
}

// Marker は軌道上を移動する1つのマーカー
type Marker struct {
	Phase     float64 // 位相角 (ラジアン)
	Increment float64 // 1ティックあたりの位相の増分
}

// NewMarker は乱数で初期位相と増分を割り当てたマーカーを作成する
func NewMarker(rng *rand.Rand) Marker {
	inc := MinIncrement + rng.Float64()*(MaxIncrement-MinIncrement)
	// 丸めで上限に届いた場合は区間内に戻す
	if inc >= MaxIncrement {
		inc = math.Nextafter(MaxIncrement, 0)
	}
	return Marker{
		Phase:     rng.Float64() * 2 * math.Pi,
		Increment: inc,
	}
}

// Advance は位相を1ティック分進める
func (m *Marker) Advance() {
	m.Phase += m.Increment
}

// Position は現在の位相での座標を返す
func (m Marker) Position(amplitude float64) Point {
	return pathPoint(m.Phase, amplitude)
}

// PositionAt は n ティック後の座標を閉形式で返す
func PositionAt(m Marker, amplitude float64, n int) Point {
	return pathPoint(m.Phase+float64(n)*m.Increment, amplitude)
}

func pathPoint(theta, amplitude float64) Point {
	s := math.Sin(theta)
	return Point{
		X: amplitude * s,
		Y: amplitude * s * math.Cos(theta),
	}
}
