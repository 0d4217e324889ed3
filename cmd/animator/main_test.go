package main

import (
	"bytes"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// 環境変数の設定値がフラグ以外の経路で混ざらないようにする
	for _, key := range []string{"SERVER_HOST", "PORT", "SERVER_ROOT", "SERVER_INDEX", "ANIMATOR_INTERVAL", "LOG_LEVEL"} {
		_ = os.Unsetenv(key)
	}
	os.Exit(m.Run())
}

// execute はコマンドツリーを毎回作り直して実行する
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestSnapshotCommand(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.jpg")
	second := filepath.Join(dir, "b.jpg")

	for _, out := range []string{first, second} {
		stdout, err := execute(t, "snapshot", "--seed", "7", "--ticks", "120", "--width", "200", "--height", "100", "--out", out)
		require.NoError(t, err)
		assert.Equal(t, out+" (120 ticks)\n", stdout)
	}

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, a, b, "同じシードなら同じフレームになる")

	img, err := jpeg.Decode(bytes.NewReader(a))
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 100, img.Bounds().Dy())
}

func TestSnapshotCommand_SeedZeroIsReproducible(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.jpg")
	second := filepath.Join(dir, "b.jpg")

	for _, out := range []string{first, second} {
		_, err := execute(t, "snapshot", "--seed", "0", "--ticks", "50", "--width", "120", "--height", "80", "--out", out)
		require.NoError(t, err)
	}

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, a, b, "シード0も固定シードとして扱う")
}

func TestSnapshotCommand_InvalidMarkers(t *testing.T) {
	_, err := execute(t, "snapshot", "--markers=-1", "--out", filepath.Join(t.TempDir(), "x.jpg"))
	assert.Error(t, err)
}

func TestSnapshotCommand_InvalidSizeLeavesNoFile(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"zero width", []string{"--width", "0"}},
		{"negative height", []string{"--height=-5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "frame.jpg")
			args := append([]string{"snapshot", "--seed", "1", "--out", out}, tt.args...)

			_, err := execute(t, args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "無効な画像サイズ")

			_, statErr := os.Stat(out)
			assert.True(t, os.IsNotExist(statErr), "失敗時に出力ファイルを残さない")
		})
	}
}

func TestNewRootCmd_FlagsDoNotLeak(t *testing.T) {
	out := filepath.Join(t.TempDir(), "frame.jpg")
	_, err := execute(t, "snapshot", "--seed", "3", "--markers", "2", "--out", out)
	require.NoError(t, err)

	// 2回目の実行には前回のフラグ値と Changed 状態が残らない
	opts := &options{}
	root := newCommand(opts)
	snapshot, _, err := root.Find([]string{"snapshot"})
	require.NoError(t, err)

	var ran bool
	snapshot.RunE = func(cmd *cobra.Command, _ []string) error {
		ran = true
		for _, name := range []string{"seed", "markers", "out"} {
			assert.False(t, cmd.Flags().Changed(name), "%s は未指定のはず", name)
		}
		assert.Equal(t, 0, opts.markers)
		assert.Equal(t, "frame.jpg", opts.outPath)

		cfg, err := loadConfig(cmd, opts)
		require.NoError(t, err)
		assert.Equal(t, 15, cfg.Animator.Markers)
		assert.Nil(t, cfg.Animator.Seed)
		return nil
	}
	root.SetArgs([]string{"snapshot"})
	require.NoError(t, root.Execute())
	assert.True(t, ran)
}

func TestLoadConfig_FlagOverrides(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, opts *options, cmd *cobra.Command)
	}{
		{
			name: "seed unset uses time",
			args: nil,
			check: func(t *testing.T, opts *options, cmd *cobra.Command) {
				cfg, err := loadConfig(cmd, opts)
				require.NoError(t, err)
				assert.Nil(t, cfg.Animator.Seed)
			},
		},
		{
			name: "seed zero is explicit",
			args: []string{"--seed", "0"},
			check: func(t *testing.T, opts *options, cmd *cobra.Command) {
				cfg, err := loadConfig(cmd, opts)
				require.NoError(t, err)
				require.NotNil(t, cfg.Animator.Seed)
				assert.Equal(t, uint64(0), *cfg.Animator.Seed)
			},
		},
		{
			name: "motion parameters",
			args: []string{"--max-distance", "50", "--time-scale", "2", "--friction", "0", "--air-resistance", "0.3"},
			check: func(t *testing.T, opts *options, cmd *cobra.Command) {
				cfg, err := loadConfig(cmd, opts)
				require.NoError(t, err)
				sim := newMotionSim(cfg)
				assert.Equal(t, 50.0, sim.Params.MaxDistance)
				assert.Equal(t, 2.0, sim.Params.TimeScale)
				assert.Equal(t, 0.0, sim.Params.Friction)
				assert.Equal(t, 0.3, sim.Params.AirResistance)
				assert.Len(t, sim.Objects, 3)
				assert.False(t, sim.Running())
			},
		},
		{
			name: "invalid time scale",
			args: []string{"--time-scale", "0"},
			check: func(t *testing.T, opts *options, cmd *cobra.Command) {
				_, err := loadConfig(cmd, opts)
				assert.Error(t, err)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// motion サブコマンドのフラグを解析し、端末を使わずに設定だけ確かめる
			opts := &options{}
			root := newCommand(opts)
			motion, _, err := root.Find([]string{"motion"})
			require.NoError(t, err)

			var ran bool
			motion.RunE = func(cmd *cobra.Command, _ []string) error {
				ran = true
				tt.check(t, opts, cmd)
				return nil
			}
			root.SetArgs(append([]string{"motion"}, tt.args...))
			require.NoError(t, root.Execute())
			assert.True(t, ran)
		})
	}
}
