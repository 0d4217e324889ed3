// Package anim は8の字軌道を移動するマーカー群のシミュレーションを担う
//
// # 責務
// - マーカーの生成（位相と増分の乱数割り当て）
// - 固定ステップでのティック更新
// - 位置の算出と描画（文字グリッド、JPEG画像）
// - 直線コースを進む物体の運動シミュレーション (MotionSim)
//
// # 仕様
// - 位置は x = A·sin(θ), y = A·sin(θ)·cos(θ) で求める（A はデフォルト180）
// - 増分は [0.002, 0.005) の一様乱数で、生成後は変化しない
// - 位相は折り返さない（sin/cos は周期関数のため不要）
// - Scene は明示的なコンテキストとして渡し、グローバル状態を持たない
// - ティックは外部ドライバから呼び出す。スリープはこのパッケージでは行わない
// - MotionSim は経過秒数で進め、ゴールに着いた物体はそこで止まる
package anim
