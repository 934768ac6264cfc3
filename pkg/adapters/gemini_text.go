package adapters

import (
	"context"
	"fmt"
	"strings"

	"github.com/shouni/go-ai-client/v2/pkg/ai/gemini"
)

// GeminiTextCompleter は Gemini のテキスト生成モデルを TextCompleter として公開します。
type GeminiTextCompleter struct {
	aiClient gemini.GenerativeModel
	model    string
}

// NewGeminiTextCompleter は依存関係を注入して GeminiTextCompleter を生成します。
func NewGeminiTextCompleter(aiClient gemini.GenerativeModel, model string) (*GeminiTextCompleter, error) {
	if aiClient == nil {
		return nil, fmt.Errorf("aiClient is required")
	}
	if model == "" {
		return nil, fmt.Errorf("model is required")
	}
	return &GeminiTextCompleter{
		aiClient: aiClient,
		model:    model,
	}, nil
}

// Complete はプロンプトをモデルに渡し、生成テキストをそのまま返します。
// サンプリング温度はクライアント初期化時の設定に従うため、同じ入力でも出力は揺れます。
func (c *GeminiTextCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.aiClient.GenerateContent(ctx, prompt, c.model)
	if err != nil {
		return "", fmt.Errorf("テキスト生成に失敗しました: %w", err)
	}
	return strings.TrimSpace(resp.Text), nil
}
