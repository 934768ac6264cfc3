package adapters

import (
	"context"
	"fmt"

	"github.com/shouni/go-comic-strip/pkg/domain"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
	"github.com/shouni/gemini-image-kit/pkg/generator"
)

// GeminiImageSynthesizer は gemini-image-kit のジェネレーターを
// ImageSynthesizer として公開するアダプターです。
type GeminiImageSynthesizer struct {
	imgGen generator.ImageGenerator
}

// NewGeminiImageSynthesizer は依存関係を注入して GeminiImageSynthesizer を生成します。
func NewGeminiImageSynthesizer(imgGen generator.ImageGenerator) (*GeminiImageSynthesizer, error) {
	if imgGen == nil {
		return nil, fmt.Errorf("imgGen (generator.ImageGenerator) is required")
	}
	return &GeminiImageSynthesizer{imgGen: imgGen}, nil
}

// Synthesize は生成要求を gemini-image-kit のリクエスト形式に写して実行します。
// GuidanceScale と Steps はこのバックエンドでは解釈されず、正方形の解像度は
// アスペクト比 1:1 として伝達します。
func (s *GeminiImageSynthesizer) Synthesize(ctx context.Context, req domain.PanelImageRequest) (*domain.PanelImage, error) {
	resp, err := s.imgGen.GenerateMangaPanel(ctx, imagedom.ImageGenerationRequest{
		Prompt:         req.Prompt,
		NegativePrompt: req.NegativePrompt,
		AspectRatio:    aspectRatioFor(req.Width, req.Height),
	})
	if err != nil {
		return nil, fmt.Errorf("パネル画像の合成に失敗しました: %w", err)
	}
	if resp == nil || len(resp.Data) == 0 {
		return nil, fmt.Errorf("画像サービスが空のレスポンスを返しました")
	}

	return &domain.PanelImage{
		Data:     resp.Data,
		MimeType: resp.MimeType,
	}, nil
}

// aspectRatioFor は幅と高さから Gemini が受け付けるアスペクト比表記を決定します。
func aspectRatioFor(width, height int) string {
	switch {
	case width == height:
		return "1:1"
	case width > height:
		return "16:9"
	default:
		return "3:4"
	}
}
