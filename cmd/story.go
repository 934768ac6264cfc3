package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-comic-strip/internal/config"
	"github.com/shouni/go-comic-strip/internal/pipeline"

	"github.com/spf13/cobra"
)

// storyCmd は、画像を描かずにストーリー構成案だけを生成して表示するのだ。
var storyCmd = &cobra.Command{
	Use:   "story",
	Short: "ストーリー構成案だけを生成してJSONで表示するのだ。",
	Long: `画像生成を行わず、4パネル分の構成案（説明・セリフ・画像指示）だけを作って
標準出力にJSONで書き出すのだ。画像モデルのクォータを使わずに構成を確認できるのだよ。`,
	Example: "  go-comic-strip story -p \"a cat becomes mayor\"",
	RunE:    storyCommand,
}

// init は将来的にフラグを追加する場合に使うのだ。
func init() {
}

// storyCommand は、story サブコマンドの実行ロジック本体なのだ。
func storyCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if err := promptForMissingOptions(cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
		return err
	}
	if opts.Prompt == "" {
		return fmt.Errorf("コミックの題材（--prompt）を指定してほしいのだ")
	}

	cfg := config.LoadConfig()
	cfg.GeminiModel = opts.AIModel
	cfg.Options = opts

	slog.Info("ストーリー構成案の生成を開始するのだ", "prompt", opts.Prompt, "text_model", cfg.GeminiModel)

	if err := pipeline.ExecuteStoryOnly(ctx, cfg, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("構成案の生成に失敗したのだ: %w", err)
	}

	slog.Info("構成案の生成が完了したのだ！")
	return nil
}
