package server

import (
	"io/fs"
	"path"
	"strings"
)

// RouteKind はルーティング結果の種別
type RouteKind int

// RouteKind の定数定義
const (
	RouteNotFound  RouteKind = iota // 該当ファイルなし
	RouteFound                      // ファイルあり
	RouteRedirect                   // 末尾 "/" の無いディレクトリ
	RouteDirectory                  // インデックスの無いディレクトリ（一覧を返す）
)

// String は種別名を返す
func (k RouteKind) String() string {
	switch k {
	case RouteFound:
		return "found"
	case RouteRedirect:
		return "redirect"
	case RouteDirectory:
		return "directory"
	default:
		return "not_found"
	}
}

// Route はリクエストパスの解決結果
//
// Path の意味は Kind によって異なる:
//   - RouteFound: ルート直下からのファイルの相対パス
//   - RouteRedirect: リダイレクト先のURLパス（末尾 "/" 付き）
//   - RouteDirectory: ルート直下からのディレクトリの相対パス
//   - RouteNotFound: 空
type Route struct {
	Kind RouteKind
	Path string
}

// Found は該当ファイルがあるかを返す
func (r Route) Found() bool {
	return r.Kind == RouteFound
}

// Resolve はURLパスをルートファイルシステム上のファイルに解決する
// I/Oは fs.Stat のみで、レスポンスは書かない
func Resolve(fsys fs.FS, urlPath, index string) Route {
	// "/" はインデックスファイルに割り当てる
	if urlPath == "/" {
		urlPath = "/" + index
	}

	trailingSlash := strings.HasSuffix(urlPath, "/")
	name := strings.TrimSuffix(strings.TrimLeft(urlPath, "/"), "/")
	if name == "" || !fs.ValidPath(name) {
		return Route{Kind: RouteNotFound}
	}

	info, err := fs.Stat(fsys, name)
	if err != nil {
		return Route{Kind: RouteNotFound}
	}

	if !info.IsDir() {
		// "style.css/" のように通常ファイルの後ろに "/" があるものは存在しない扱い
		if trailingSlash {
			return Route{Kind: RouteNotFound}
		}
		return Route{Kind: RouteFound, Path: name}
	}

	// 相対リンクを解決できるよう、ディレクトリは末尾 "/" 付きに揃える
	if !trailingSlash {
		return Route{Kind: RouteRedirect, Path: urlPath + "/"}
	}

	indexPath := path.Join(name, index)
	if indexInfo, err := fs.Stat(fsys, indexPath); err == nil && !indexInfo.IsDir() {
		return Route{Kind: RouteFound, Path: indexPath}
	}
	return Route{Kind: RouteDirectory, Path: name}
}
