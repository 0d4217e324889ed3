// Package main は静的ファイルサーバーコマンドの実装です
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"funweb/internal/config"
	"funweb/internal/logging"
	"funweb/internal/server"
)

// options はコマンドラインフラグの値
type options struct {
	configPath string
	host       string
	port       int
	root       string
	index      string
}

// newRootCmd はフラグの状態を持つ新しいコマンドを作成する
func newRootCmd() *cobra.Command {
	return newCommand(&options{})
}

// newCommand は opts にフラグを束縛したコマンドを作成する
func newCommand(opts *options) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "server",
		Short: "カレントディレクトリのファイルを配信する静的ファイルサーバー",
		Long: `ルートディレクトリのファイルをHTTPで配信します。

"/" はインデックスファイル (デフォルト index.html) を返します。
末尾 "/" の無いディレクトリは "/" 付きにリダイレクトし、
インデックスの無いディレクトリは一覧を返します。
ファイルが見つからない場合は 404 と埋め込みのエラーページを返します。`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServer(cmd, opts)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "YAML設定ファイルのパス")
	flags.StringVar(&opts.host, "host", "", "サーバーのホスト (デフォルト: 127.0.0.1)")
	flags.IntVar(&opts.port, "port", 0, "サーバーのポート (デフォルト: 8000)")
	flags.StringVar(&opts.root, "root", "", "配信するディレクトリ (デフォルト: カレントディレクトリ)")
	flags.StringVar(&opts.index, "index", "", "\"/\" に割り当てるファイル名 (デフォルト: index.html)")
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

	// コマンドラインオプションで設定を上書き
	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.Server.Host = opts.host
	}
	if flags.Changed("port") {
		cfg.Server.Port = opts.port
	}
	if flags.Changed("root") {
		cfg.Server.Root = opts.root
	}
	if flags.Changed("index") {
		cfg.Server.Index = opts.index
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("設定の検証に失敗しました: %w", err)
	}
	return cfg, nil
}

func runServer(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	gin.SetMode(gin.ReleaseMode)
	srv := server.New(cfg, logger)

	// SIGINT/SIGTERM でキャンセルされるコンテキスト
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// サーバーを起動
	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("サーバーの起動に失敗しました: %w", err)
	}
	return nil
}
