package adapters

import (
	"context"

	"github.com/shouni/go-comic-strip/pkg/domain"
)

// TextCompleter は自由文の指示プロンプトから続きのテキストを生成するサービスの窓口なのだ。
// 実体は外部のテキスト生成モデルであり、中身は不透明として扱うのだ。
type TextCompleter interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ImageSynthesizer はプロンプトと生成パラメータから1枚のラスタ画像を合成するサービスの窓口なのだ。
// テスト時には決定的なスタブへ差し替えられることを前提とした狭いインターフェースなのだ。
type ImageSynthesizer interface {
	Synthesize(ctx context.Context, req domain.PanelImageRequest) (*domain.PanelImage, error)
}
