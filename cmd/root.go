package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/shouni/go-comic-strip/internal/config"
	"github.com/shouni/go-comic-strip/pkg/style"

	clibase "github.com/shouni/go-cli-base"
	"github.com/spf13/cobra"
)

// opts は CLI フラグの値を集約する実行時オプションなのだ。
var opts config.GenerateOptions

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義するのだ。
func addAppFlags(rootCmd *cobra.Command) {
	// --- 生成内容の指定 ---
	rootCmd.PersistentFlags().StringVarP(&opts.Prompt, "prompt", "p", "", "コミックの題材なのだ。省略すると対話的に聞くのだ。")
	rootCmd.PersistentFlags().StringVarP(&opts.Style, "style", "s", "",
		fmt.Sprintf("画風キーワードなのだ [%s]。未知の値は %s 扱いなのだ。", strings.Join(style.Names(), ", "), style.DefaultName))

	// --- 生成結果の出力設定 ---
	rootCmd.PersistentFlags().StringVarP(&opts.OutputDir, "output-dir", "o", config.DefaultOutputDir, "完成したPNGの保存先ディレクトリなのだ。")

	// --- AIモデル・挙動設定 ---
	rootCmd.PersistentFlags().StringVar(&opts.AIModel, "model", config.DefaultModel, "使用するテキスト生成モデル名なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.ImageModel, "image-model", config.DefaultImageModel, "使用する画像生成モデル名なのだ。")
	rootCmd.PersistentFlags().DurationVar(&opts.HTTPTimeout, "http-timeout", config.DefaultHTTPTimeout, "Webリクエストのタイムアウトなのだ。")
}

// preRunAppE は、コマンド実行前に環境変数などの必須チェックを行うのだ。
func preRunAppE(cmd *cobra.Command, args []string) error {
	// Gemini APIを利用するため、APIキーの存在チェックは欠かせないのだ！
	if os.Getenv("GEMINI_API_KEY") == "" {
		return fmt.Errorf("エラー: 環境変数 GEMINI_API_KEY が設定されていません。Gemini APIの利用には必須なのだ")
	}

	return nil
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	clibase.Execute(
		"go-comic-strip",
		addAppFlags,
		preRunAppE,
		generateCmd,
		storyCmd,
	)
}
