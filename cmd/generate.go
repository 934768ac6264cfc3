package cmd

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/shouni/go-comic-strip/internal/config"
	"github.com/shouni/go-comic-strip/internal/pipeline"
	"github.com/shouni/go-comic-strip/pkg/style"

	"github.com/spf13/cobra"
)

// generateCmd は、題材から4コマコミックを1枚生成するのだ。
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "題材から4コマコミックを生成するのだ。",
	Long: `題材のプロンプトからストーリー構成案を作り、パネルを1枚ずつ描画して、
2x2のコミックとして合成・保存するのだ。出力はPNGファイル1枚だけなのだよ。`,
	Example: "  go-comic-strip generate -p \"a robot learns to paint\" -s manga",
	RunE:    generateCommand,
}

func init() {
}

func generateCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// 1. フラグがなければ対話的に聞くのだ
	if err := promptForMissingOptions(cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
		return err
	}
	if opts.Prompt == "" {
		return fmt.Errorf("コミックの題材（--prompt）を指定してほしいのだ")
	}

	// 2. 環境変数等から基本設定をロードするのだ
	cfg := config.LoadConfig()
	cfg.GeminiModel = opts.AIModel
	cfg.GeminiImageModel = opts.ImageModel
	cfg.Options = opts

	slog.Info("コミック生成パイプラインを起動するのだ！",
		"prompt", opts.Prompt,
		"style", opts.Style,
		"text_model", cfg.GeminiModel,
		"image_model", cfg.GeminiImageModel,
		"output_dir", opts.OutputDir)

	// 3. パイプラインを実行するのだ
	if err := pipeline.Execute(ctx, cfg); err != nil {
		return fmt.Errorf("パイプライン実行中にエラーが発生したのだ: %w", err)
	}

	slog.Info("すべての生成工程が完了したのだ！")
	return nil
}

// promptForMissingOptions は、フラグで渡されなかった題材とスタイルを標準入力から読むのだ。
func promptForMissingOptions(in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)

	if opts.Prompt == "" {
		fmt.Fprint(out, "コミックの題材を入力するのだ: ")
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("題材の読み込みに失敗したのだ: %w", err)
		}
		opts.Prompt = strings.TrimSpace(line)
	}

	if opts.Style == "" {
		fmt.Fprintf(out, "画風を入力するのだ [%s] (空なら %s): ", strings.Join(style.Names(), ", "), style.DefaultName)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			// スタイルは未指定でもデフォルトで続行できるのだ
			opts.Style = style.DefaultName
			return nil
		}
		opts.Style = strings.TrimSpace(line)
		if opts.Style == "" {
			opts.Style = style.DefaultName
		}
	}

	return nil
}
