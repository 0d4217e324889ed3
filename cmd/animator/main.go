// Package main はパスアニメーターコマンドの実装です
package main

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"funweb/internal/anim"
	"funweb/internal/config"
	"funweb/internal/logging"
	"funweb/internal/tui"
)

// options はコマンドラインフラグの値
type options struct {
	configPath string
	seed       uint64
	interval   time.Duration
	markers    int
	logFile    string

	// snapshot 用
	ticks   int
	outPath string
	width   int
	height  int
	quality int

	// motion 用
	maxDistance   float64
	timeScale     float64
	friction      float64
	airResistance float64
}

// newRootCmd はフラグの状態を持つ新しいコマンドツリーを作成する
func newRootCmd() *cobra.Command {
	return newCommand(&options{})
}

// newCommand は opts にフラグを束縛したコマンドツリーを作成する
func newCommand(opts *options) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "animator",
		Short: "8の字軌道を移動するマーカーを端末に描画する",
		Long: `15個のマーカーが x = A·sin(θ), y = A·sin(θ)·cos(θ) の軌道上を移動します。
q / esc / ctrl+c で終了します。`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnimator(cmd, opts)
		},
	}

	pflags := rootCmd.PersistentFlags()
	pflags.StringVar(&opts.configPath, "config", "", "YAML設定ファイルのパス")
	pflags.Uint64Var(&opts.seed, "seed", 0, "乱数シード (未指定なら起動時刻)")
	pflags.DurationVar(&opts.interval, "interval", 0, "ティック間隔 (デフォルト: 40ms)")
	pflags.IntVar(&opts.markers, "markers", 0, "マーカー数 (デフォルト: 15)")
	pflags.StringVar(&opts.logFile, "log-file", "", "ログの出力先ファイル (未指定なら出力しない)")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "指定ティック後のフレームをJPEGで書き出す",
		Long: `スリープせずに --ticks 分だけシーンを進め、1フレームをJPEGで保存します。
同じ --seed なら同じ画像になります。`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSnapshot(cmd, opts)
		},
	}
	flags := snapshotCmd.Flags()
	flags.IntVar(&opts.ticks, "ticks", 0, "進めるティック数")
	flags.StringVar(&opts.outPath, "out", "frame.jpg", "出力ファイル")
	flags.IntVar(&opts.width, "width", 480, "画像幅")
	flags.IntVar(&opts.height, "height", 320, "画像高さ")
	flags.IntVar(&opts.quality, "quality", 90, "JPEG品質 (1-100)")

	motionCmd := &cobra.Command{
		Use:   "motion",
		Short: "3つの物体が直線コースを進む運動シミュレーション",
		Long: `摩擦と空気抵抗を受けながら物体 A/B/C がゴールまで進みます。
space / enter で開始、p で一時停止、r でリセット、q で終了します。`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMotion(cmd, opts)
		},
	}
	mflags := motionCmd.Flags()
	mflags.Float64Var(&opts.maxDistance, "max-distance", 0, "コースの長さ m (デフォルト: 100)")
	mflags.Float64Var(&opts.timeScale, "time-scale", 0, "経過時間の倍率 (デフォルト: 1)")
	mflags.Float64Var(&opts.friction, "friction", 0, "摩擦係数 (デフォルト: 0.02)")
	mflags.Float64Var(&opts.airResistance, "air-resistance", 0, "空気抵抗係数 (デフォルト: 0.1)")

	rootCmd.AddCommand(snapshotCmd, motionCmd)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig は設定を読み込み、指定されたフラグで上書きする
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("設定の読み込みに失敗しました: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		seed := opts.seed
		cfg.Animator.Seed = &seed
	}
	if flags.Changed("interval") {
		cfg.Animator.Interval = opts.interval
	}
	if flags.Changed("markers") {
		cfg.Animator.Markers = opts.markers
	}
	if flags.Changed("max-distance") {
		cfg.Motion.MaxDistance = opts.maxDistance
	}
	if flags.Changed("time-scale") {
		cfg.Motion.TimeScale = opts.timeScale
	}
	if flags.Changed("friction") {
		cfg.Motion.Friction = opts.friction
	}
	if flags.Changed("air-resistance") {
		cfg.Motion.AirResistance = opts.airResistance
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("設定の検証に失敗しました: %w", err)
	}
	return cfg, nil
}

// newLogger は端末を描画に使うため、ファイル指定時のみ出力するロガーを作る
func newLogger(cfg *config.Config, logFile string) (*zap.Logger, error) {
	if logFile == "" {
		return zap.NewNop(), nil
	}
	cfg.Log.OutputPaths = []string{logFile}
	return logging.New(cfg.Log)
}

// newRand はシード指定があれば再現可能な乱数生成器を返す
func newRand(cfg *config.Config) *rand.Rand {
	if cfg.Animator.Seed == nil {
		return anim.NewTimeRand()
	}
	return anim.NewRand(*cfg.Animator.Seed)
}

func newScene(cfg *config.Config) *anim.Scene {
	return anim.NewScene(anim.SceneConfig{
		Markers:   cfg.Animator.Markers,
		Amplitude: cfg.Animator.Amplitude,
	}, newRand(cfg))
}

func runAnimator(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, opts.logFile)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	scene := newScene(cfg)
	logger.Info("アニメーションを開始します",
		zap.Int("markers", len(scene.Markers)),
		zap.Duration("interval", cfg.Animator.Interval))

	p := tea.NewProgram(tui.New(scene, cfg.Animator.Interval), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("描画の実行に失敗しました: %w", err)
	}

	logger.Info("アニメーションを終了しました", zap.Int("ticks", scene.Ticks()))
	return nil
}

func runSnapshot(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	if opts.ticks < 0 {
		return fmt.Errorf("無効なティック数: %d", opts.ticks)
	}
	renderer := anim.NewImageRenderer(opts.width, opts.height, opts.quality)
	// 出力ファイルを作る前に検証し、空ファイルを残さない
	if err := renderer.Validate(); err != nil {
		return err
	}
	logger, err := newLogger(cfg, opts.logFile)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	scene := newScene(cfg)
	scene.Step(opts.ticks)

	f, err := os.Create(opts.outPath)
	if err != nil {
		return fmt.Errorf("出力ファイルの作成に失敗しました: %w", err)
	}
	if err := renderer.Encode(f, scene.Positions()); err != nil {
		_ = f.Close()
		return errors.Join(err, os.Remove(opts.outPath))
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("出力ファイルのクローズに失敗しました: %w", err)
	}

	logger.Info("フレームを書き出しました", zap.String("path", opts.outPath), zap.Int("ticks", scene.Ticks()))
	fmt.Fprintf(cmd.OutOrStdout(), "%s (%d ticks)\n", opts.outPath, scene.Ticks())
	return nil
}

// newMotionSim は設定から停止状態のシミュレーションを作る
func newMotionSim(cfg *config.Config) *anim.MotionSim {
	return anim.NewMotionSim(anim.MotionParams{
		MaxDistance:   cfg.Motion.MaxDistance,
		TimeScale:     cfg.Motion.TimeScale,
		Friction:      cfg.Motion.Friction,
		AirResistance: cfg.Motion.AirResistance,
	}, anim.DefaultMotionObjects())
}

func runMotion(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, opts.logFile)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	sim := newMotionSim(cfg)
	logger.Info("運動シミュレーションを開始します",
		zap.Float64("max_distance", sim.Params.MaxDistance),
		zap.Float64("friction", sim.Params.Friction),
		zap.Float64("air_resistance", sim.Params.AirResistance))

	p := tea.NewProgram(tui.NewMotion(sim, cfg.Animator.Interval), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("描画の実行に失敗しました: %w", err)
	}

	logger.Info("運動シミュレーションを終了しました", zap.Bool("finished", sim.Finished()))
	return nil
}
