package anim

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"io"
)

// マーカーの描画色（黒背景にシアン）
var (
	BackgroundColor = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	MarkerColor     = color.RGBA{R: 0, G: 255, B: 255, A: 255}
)

// MarkerRadius はマーカー円の半径 (px)
const MarkerRadius = 5

// ImageRenderer は Scene を画像に描画する
type ImageRenderer struct {
	width   int
	height  int
	quality int
}

// NewImageRenderer は新しい ImageRenderer を作成する
// quality は JPEG 品質 (1-100)
func NewImageRenderer(width, height, quality int) *ImageRenderer {
	if quality < 1 || quality > 100 {
		quality = jpeg.DefaultQuality
	}
	return &ImageRenderer{
		width:   width,
		height:  height,
		quality: quality,
	}
}

// Render はマーカー位置を描いた画像を返す
// ワールド座標1単位を1pxとし、原点を画像中央に置く
func (r *ImageRenderer) Render(points []Point) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: BackgroundColor}, image.Point{}, draw.Src)

	cx, cy := r.width/2, r.height/2
	for _, p := range points {
		fillDisc(img, cx+int(p.X), cy-int(p.Y), MarkerRadius, MarkerColor)
	}
	return img
}

// Validate は画像サイズが正かを検証する
func (r *ImageRenderer) Validate() error {
	if r.width <= 0 || r.height <= 0 {
		return fmt.Errorf("無効な画像サイズ: %dx%d", r.width, r.height)
	}
	return nil
}

// Encode は描画結果を JPEG として書き出す
func (r *ImageRenderer) Encode(w io.Writer, points []Point) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if err := jpeg.Encode(w, r.Render(points), &jpeg.Options{Quality: r.quality}); err != nil {
		return fmt.Errorf("JPEGエンコードに失敗: %w", err)
	}
	return nil
}

// fillDisc は中心 (x, y) 半径 radius の円を塗りつぶす
// 画像外のピクセルは無視する
func fillDisc(img *image.RGBA, x, y, radius int, c color.RGBA) {
	bounds := img.Bounds()
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > radius*radius {
				continue
			}
			px, py := x+dx, y+dy
			if image.Pt(px, py).In(bounds) {
				img.SetRGBA(px, py, c)
			}
		}
	}
}
