package renderer

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"

	"github.com/shouni/go-comic-strip/pkg/adapters"
	"github.com/shouni/go-comic-strip/pkg/domain"
	"github.com/shouni/go-comic-strip/pkg/style"
)

// パネル画像の固定生成パラメータです。コミックは全パネルが揃って初めて成立するため、
// ここでのリトライや部分的な成功の扱いは行いません。
const (
	GuidanceScale = 7.5
	StepCount     = 30
	PanelWidth    = 512
	PanelHeight   = 512
)

// 文字や吹き出しはコンポーザーが描くため、画像側では徹底的に排除します。
const negativePrompt = "speech bubble, dialogue balloon, text, letters, words, watermark, signature, low quality, distorted, bad anatomy"

// PanelRenderer はスタイル接頭辞とパネルの画像指示を結合し、
// 画像合成サービスで1枚のラスタ画像を生成します。
type PanelRenderer struct {
	synthesizer adapters.ImageSynthesizer
}

// NewPanelRenderer は依存関係を注入して PanelRenderer を生成します。
func NewPanelRenderer(synthesizer adapters.ImageSynthesizer) (*PanelRenderer, error) {
	if synthesizer == nil {
		return nil, fmt.Errorf("synthesizer (adapters.ImageSynthesizer) is required")
	}
	return &PanelRenderer{synthesizer: synthesizer}, nil
}

// BuildPrompt はスタイル名を接頭辞に解決し、画像指示と結合した最終プロンプトを返します。
// 未知のスタイル名は style.Resolve が黙って comic に正規化します。
func BuildPrompt(imagePrompt, styleName string) string {
	return style.Resolve(styleName) + ", " + imagePrompt
}

// Render は1パネル分の画像を合成してデコード済みのラスタとして返します。
// 合成サービスの失敗はそのまま呼び出し元へ伝播します（この層での救済はしません）。
func (r *PanelRenderer) Render(ctx context.Context, imagePrompt, styleName string) (image.Image, error) {
	prompt := BuildPrompt(imagePrompt, styleName)

	resp, err := r.synthesizer.Synthesize(ctx, domain.PanelImageRequest{
		Prompt:         prompt,
		NegativePrompt: negativePrompt,
		GuidanceScale:  GuidanceScale,
		Steps:          StepCount,
		Width:          PanelWidth,
		Height:         PanelHeight,
	})
	if err != nil {
		return nil, fmt.Errorf("パネルの描画に失敗しました: %w", err)
	}

	img, format, err := image.Decode(bytes.NewReader(resp.Data))
	if err != nil {
		return nil, fmt.Errorf("パネル画像のデコードに失敗しました (%s): %w", resp.MimeType, err)
	}

	slog.Info("パネルを描画したのだ", "format", format, "bytes", len(resp.Data))
	return img, nil
}
