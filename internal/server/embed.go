package server

import (
	_ "embed"
)

// FallbackContentType は代替ページの Content-Type
const FallbackContentType = "text/html; charset=utf-8"

//go:embed fallback.html
var fallbackHTML string

// FallbackPage は要求されたファイルが無いときに返すHTMLを返す
// background.jpg と Tailwind CDN を参照する
// 呼び出しごとに新しいスライスを返す
func FallbackPage() []byte {
	return []byte(fallbackHTML)
}
