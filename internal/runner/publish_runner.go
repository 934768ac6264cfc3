package runner

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// PublishRunner は、完成したコミック画像を永続化するためのインターフェース。
type PublishRunner interface {
	// Run はキャンバスをPNGとして保存し、書き込んだパスを返す。
	Run(ctx context.Context, canvas image.Image) (string, error)
}

// LocalPublishRunner は、設定された出力ディレクトリにPNGを1枚だけ書き出す実体。
// 出力先は明示的な設定値であり、カレントディレクトリ等の暗黙の状態には依存しない。
type LocalPublishRunner struct {
	outputDir string
	now       func() time.Time // テストで時刻を固定するための注入点
}

// NewLocalPublishRunner は、LocalPublishRunnerの新しいインスタンスを生成して返す。
func NewLocalPublishRunner(outputDir string) *LocalPublishRunner {
	return &LocalPublishRunner{
		outputDir: outputDir,
		now:       time.Now,
	}
}

// Run は出力ディレクトリを必要なら作成し、Unixタイムスタンプ由来のファイル名で
// PNGを1枚書き出すのだ。1回の実行で書くファイルはこの1枚だけなのだ。
func (pr *LocalPublishRunner) Run(ctx context.Context, canvas image.Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("保存処理が中断されたのだ: %w", err)
	}

	if err := os.MkdirAll(pr.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("出力ディレクトリの作成に失敗したのだ %s: %w", pr.outputDir, err)
	}

	name := fmt.Sprintf("comic_%d.png", pr.now().Unix())
	outputPath := filepath.Join(pr.outputDir, name)

	f, err := os.Create(outputPath)
	if err != nil {
		return "", fmt.Errorf("出力ファイルの作成に失敗したのだ %s: %w", outputPath, err)
	}
	defer f.Close()

	if err := png.Encode(f, canvas); err != nil {
		return "", fmt.Errorf("PNGのエンコードに失敗したのだ: %w", err)
	}

	slog.Info("コミックを保存したのだ！", "path", outputPath)
	return outputPath, nil
}
