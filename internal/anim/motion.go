package anim

import "math"

// Gravity は重力加速度 (m/s²)
const Gravity = 9.81

// MovingObject は直線コース上を進む物体
type MovingObject struct {
	Name  string
	Color string // 描画色 ("#RRGGBB")

	Mass         float64 // 質量 (kg)
	Speed        float64 // 速さ (m/s)
	Position     float64 // スタートからの距離 (m)
	Acceleration float64 // 加速度 (m/s²)

	// InitialSpeed はリセット時に戻す速さ
	InitialSpeed float64
}

// NewMovingObject は速さ speed で静止位置にある物体を作成する
func NewMovingObject(name, color string, mass, speed float64) *MovingObject {
	return &MovingObject{
		Name:         name,
		Color:        color,
		Mass:         mass,
		Speed:        speed,
		InitialSpeed: speed,
	}
}

// ApplyForces は摩擦係数 mu と空気抵抗係数 airC から加速度を求める
//
// 駆動力は質量×速さとし、摩擦力 mu·m·g と空気抵抗 airC·v を差し引く。
// 合力は0未満にならない。
func (o *MovingObject) ApplyForces(mu, airC float64) {
	if o.Mass <= 0 {
		o.Acceleration = 0
		return
	}
	friction := mu * o.Mass * Gravity
	air := airC * o.Speed
	driving := o.Mass * o.Speed

	net := math.Max(0, driving-friction-air)
	o.Acceleration = net / o.Mass
}

// Update は dt 秒進める
// maxDistance に達したら位置をそこに止め、速さと加速度を0にする
func (o *MovingObject) Update(dt, maxDistance float64) {
	o.Speed = math.Max(0, o.Speed+o.Acceleration*dt)
	o.Position += o.Speed * dt

	if o.Position >= maxDistance {
		o.Position = maxDistance
		o.Speed = 0
		o.Acceleration = 0
	}
}

// Reset はスタート位置と初速に戻す
func (o *MovingObject) Reset() {
	o.Position = 0
	o.Speed = o.InitialSpeed
	o.Acceleration = 0
}

// Finished はゴールに到達したかを返す
func (o *MovingObject) Finished(maxDistance float64) bool {
	return o.Position >= maxDistance
}

// MotionParams はコース全体に共通のパラメータ
type MotionParams struct {
	MaxDistance   float64 // コースの長さ (m)
	TimeScale     float64 // 経過時間の倍率
	Friction      float64 // 摩擦係数 mu
	AirResistance float64 // 空気抵抗係数
}

// DefaultMotionParams はデフォルトのパラメータを返す
func DefaultMotionParams() MotionParams {
	return MotionParams{
		MaxDistance:   100,
		TimeScale:     1,
		Friction:      0.02,
		AirResistance: 0.1,
	}
}

// DefaultMotionObjects は A/B/C の3物体を返す
func DefaultMotionObjects() []*MovingObject {
	return []*MovingObject{
		NewMovingObject("A", "#FF0000", 10, 4),
		NewMovingObject("B", "#00FF00", 10, 6),
		NewMovingObject("C", "#0000FF", 10, 8),
	}
}

// MotionSim は複数の物体を同じ条件で走らせる
// 開始・一時停止・リセットの状態を持つ
type MotionSim struct {
	Objects []*MovingObject
	Params  MotionParams

	running bool
}

// NewMotionSim は停止状態の MotionSim を作成する
func NewMotionSim(params MotionParams, objects []*MovingObject) *MotionSim {
	return &MotionSim{
		Objects: objects,
		Params:  params,
	}
}

// Start は実行を開始する
func (s *MotionSim) Start() {
	s.running = true
}

// Pause は実行を止める。位置と速さは保持する
func (s *MotionSim) Pause() {
	s.running = false
}

// Reset は停止して全物体をスタート位置に戻す
func (s *MotionSim) Reset() {
	s.running = false
	for _, o := range s.Objects {
		o.Reset()
	}
}

// Running は実行中かを返す
func (s *MotionSim) Running() bool {
	return s.running
}

// Step は実時間 dt 秒分進める。停止中は何もしない
// 実際に進める時間は dt×TimeScale
func (s *MotionSim) Step(dt float64) {
	if !s.running || dt <= 0 {
		return
	}
	scaled := dt * s.Params.TimeScale
	for _, o := range s.Objects {
		o.ApplyForces(s.Params.Friction, s.Params.AirResistance)
		o.Update(scaled, s.Params.MaxDistance)
	}
}

// Finished は全物体がゴールに到達したかを返す
func (s *MotionSim) Finished() bool {
	for _, o := range s.Objects {
		if !o.Finished(s.Params.MaxDistance) {
			return false
		}
	}
	return true
}

// Progress は物体の到達率 [0, 1] を返す
func (s *MotionSim) Progress(o *MovingObject) float64 {
	if s.Params.MaxDistance <= 0 {
		return 0
	}
	return math.Min(1, math.Max(0, o.Position/s.Params.MaxDistance))
}
