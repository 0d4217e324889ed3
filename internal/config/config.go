package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config はアプリケーション全体の設定を保持する構造体
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Animator AnimatorConfig `yaml:"animator"`
	Motion   MotionConfig   `yaml:"motion"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig はHTTPサーバーの設定
type ServerConfig struct {
	Host  string `yaml:"host"`  // リッスンするホスト
	Port  int    `yaml:"port"`  // リッスンするポート番号
	Root  string `yaml:"root"`  // 配信するルートディレクトリ
	Index string `yaml:"index"` // "/" に割り当てるファイル名

	// タイムアウト設定
	ReadTimeout  time.Duration `yaml:"read_timeout"`  // 読み込みタイムアウト
	WriteTimeout time.Duration `yaml:"write_timeout"` // 書き込みタイムアウト
}

// AnimatorConfig はパスアニメーターの設定
type AnimatorConfig struct {
	Markers   int           `yaml:"markers"`   // マーカー数
	Amplitude float64       `yaml:"amplitude"` // 軌道の振幅
	Interval  time.Duration `yaml:"interval"`  // 1ティックの間隔
	Seed      *uint64       `yaml:"seed"`      // 乱数シード (未指定なら起動時刻から生成)
}

// MotionConfig は運動シミュレーションの設定
type MotionConfig struct {
	MaxDistance   float64 `yaml:"max_distance"`   // コースの長さ (m)
	TimeScale     float64 `yaml:"time_scale"`     // 経過時間の倍率
	Friction      float64 `yaml:"friction"`       // 摩擦係数
	AirResistance float64 `yaml:"air_resistance"` // 空気抵抗係数
}

// LogConfig はロガーの設定
type LogConfig struct {
	Level       string   `yaml:"level"`        // debug, info, warn, error
	OutputPaths []string `yaml:"output_paths"` // zap の出力先
}

// Default はデフォルト設定を返す
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "127.0.0.1",
			Port:         8000,
			Root:         ".",
			Index:        "index.html",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 0, // 大きいファイル向けにタイムアウト無効化
		},
		Animator: AnimatorConfig{
			Markers:   15,
			Amplitude: 180,
			Interval:  40 * time.Millisecond,
		},
		Motion: MotionConfig{
			MaxDistance:   100,
			TimeScale:     1,
			Friction:      0.02,
			AirResistance: 0.1,
		},
		Log: LogConfig{
			Level:       "info",
			OutputPaths: []string{"stderr"},
		},
	}
}

// Load は設定を読み込む
// デフォルト値 → YAMLファイル (path が空でなければ) → 環境変数 の順に上書きする
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	// 設定の検証
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("設定の検証に失敗: %w", err)
	}

	return cfg, nil
}

// readFile はYAMLファイルの内容で設定を上書きする
func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("設定ファイルの読み込みに失敗: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("設定ファイルの解析に失敗: %w", err)
	}
	return nil
}

// applyEnv は環境変数で設定を上書きする
func (c *Config) applyEnv() {
	c.Server.Host = getEnvOrDefault("SERVER_HOST", c.Server.Host)
	c.Server.Port = getEnvAsIntOrDefault("PORT", c.Server.Port)
	c.Server.Root = getEnvOrDefault("SERVER_ROOT", c.Server.Root)
	c.Server.Index = getEnvOrDefault("SERVER_INDEX", c.Server.Index)
	c.Animator.Interval = getEnvAsDurationOrDefault("ANIMATOR_INTERVAL", c.Animator.Interval)
	c.Log.Level = getEnvOrDefault("LOG_LEVEL", c.Log.Level)
}

// Validate は設定の妥当性を検証する
func (c *Config) Validate() error {
	// サーバー設定の検証
	// ポート0はテスト用の空きポート割り当てとして許可する
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("無効なポート番号: %d", c.Server.Port)
	}
	if c.Server.Index == "" {
		return errors.New("インデックスファイル名が空です")
	}

	// アニメーター設定の検証
	if c.Animator.Markers <= 0 {
		return fmt.Errorf("無効なマーカー数: %d", c.Animator.Markers)
	}
	if c.Animator.Amplitude <= 0 {
		return fmt.Errorf("無効な振幅: %v", c.Animator.Amplitude)
	}
	if c.Animator.Interval <= 0 {
		return fmt.Errorf("無効なティック間隔: %v", c.Animator.Interval)
	}

	// 運動シミュレーション設定の検証
	if c.Motion.MaxDistance <= 0 {
		return fmt.Errorf("無効なコース長: %v", c.Motion.MaxDistance)
	}
	if c.Motion.TimeScale <= 0 {
		return fmt.Errorf("無効な時間倍率: %v", c.Motion.TimeScale)
	}
	if c.Motion.Friction < 0 || c.Motion.AirResistance < 0 {
		return fmt.Errorf("無効な抵抗係数: friction=%v air=%v", c.Motion.Friction, c.Motion.AirResistance)
	}

	return nil
}

// ServerAddress はサーバーのリッスンアドレスを返す
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// ServerURL は起動時に表示するURLを返す
func (c *Config) ServerURL() string {
	return "http://" + c.ServerAddress()
}

// getEnvOrDefault は環境変数を取得し、設定されていない場合はデフォルト値を返す
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault は環境変数を整数として取得し、設定されていない場合はデフォルト値を返す
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var intVal int
		if _, err := fmt.Sscanf(value, "%d", &intVal); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvAsDurationOrDefault は環境変数を time.Duration として取得する
func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
