// Package server は、静的ファイルの配信と代替ページの返却を担います。
//
// 責務:
//   - HTTPサーバーの起動と管理
//   - ルートディレクトリからの静的ファイル配信
//   - ファイルが無い場合の埋め込みHTML（代替ページ）の返却
//
// 仕様:
//   - ルーティングは gin を使用し、全パスを1つのハンドラで受ける
//   - "/" はインデックスファイル（デフォルト index.html）に割り当てる
//   - それ以外のパスは先頭の "/" を取り除いてそのまま探す
//   - 末尾 "/" の無いディレクトリは 301 で "/" 付きに転送する
//   - インデックスの無いディレクトリは一覧を返す
//   - 見つからなければ 404 と text/html; charset=utf-8 の代替ページを返す
//   - パス解決は Resolve（純粋関数）、レスポンス書き込みは StaticHandler が行う
//   - グレースフルシャットダウンに対応
package server
