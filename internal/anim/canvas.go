package anim

import (
	"math"
	"strings"
)

// Canvas はワールド座標を文字グリッドに写像する
// 原点は中央、y軸は上向き
type Canvas struct {
	Cols       int
	Rows       int
	HalfWidth  float64 // x 方向に表示するワールド範囲の半分
	HalfHeight float64 // y 方向に表示するワールド範囲の半分
}

// NewCanvas は8の字全体が収まる Canvas を作成する
// 軌道の y 成分は振幅の半分までしか動かない
func NewCanvas(cols, rows int, amplitude float64) Canvas {
	return Canvas{
		Cols:       cols,
		Rows:       rows,
		HalfWidth:  amplitude,
		HalfHeight: amplitude / 2,
	}
}

// Cell はワールド座標に対応するセル位置を返す
// 範囲外なら ok は false
func (c Canvas) Cell(p Point) (col, row int, ok bool) {
	if c.Cols <= 0 || c.Rows <= 0 || c.HalfWidth <= 0 || c.HalfHeight <= 0 {
		return 0, 0, false
	}
	col = int(math.Round((p.X + c.HalfWidth) / (2 * c.HalfWidth) * float64(c.Cols-1)))
	row = int(math.Round((c.HalfHeight - p.Y) / (2 * c.HalfHeight) * float64(c.Rows-1)))
	if col < 0 || col >= c.Cols || row < 0 || row >= c.Rows {
		return 0, 0, false
	}
	return col, row, true
}

// Render はマーカーのあるセルを true にしたグリッドを返す
func (c Canvas) Render(points []Point) [][]bool {
	if c.Cols <= 0 || c.Rows <= 0 {
		return nil
	}
	grid := make([][]bool, c.Rows)
	for i := range grid {
		grid[i] = make([]bool, c.Cols)
	}
	for _, p := range points {
		if col, row, ok := c.Cell(p); ok {
			grid[row][col] = true
		}
	}
	return grid
}

// Lines はグリッドを行ごとの文字列に変換する
func Lines(grid [][]bool, on, off string) []string {
	lines := make([]string, len(grid))
	var b strings.Builder
	for i, row := range grid {
		b.Reset()
		for _, set := range row {
			if set {
				b.WriteString(on)
			} else {
				b.WriteString(off)
			}
		}
		lines[i] = b.String()
	}
	return lines
}
