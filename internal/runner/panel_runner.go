package runner

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"github.com/shouni/go-comic-strip/pkg/domain"
	"github.com/shouni/go-comic-strip/pkg/renderer"

	"golang.org/x/time/rate"
)

// PanelRunner は、ストーリーの全パネルの画像を生成するためのインターフェース。
type PanelRunner interface {
	// Run はストーリーと同じ順序で画像のリストを返す。
	Run(ctx context.Context, story domain.Story, styleName string) ([]image.Image, error)
}

// SequentialPanelRunner は、パネルを1枚ずつ順番に描画する実体。
// 画像モデルはアクセラレータを占有する前提なので、並列化はしない。
type SequentialPanelRunner struct {
	renderer *renderer.PanelRenderer
	limiter  *rate.Limiter
}

// NewSequentialPanelRunner は、SequentialPanelRunnerの新しいインスタンスを生成して返す。
func NewSequentialPanelRunner(r *renderer.PanelRenderer, limiter *rate.Limiter) *SequentialPanelRunner {
	return &SequentialPanelRunner{
		renderer: r,
		limiter:  limiter,
	}
}

// Run はストーリー順に1枚ずつ画像を生成するメインロジックなのだ。
// 1枚でも失敗したら全体を失敗させるのだ。パネルが欠けたコミックに意味はないのだ。
func (pr *SequentialPanelRunner) Run(ctx context.Context, story domain.Story, styleName string) ([]image.Image, error) {
	images := make([]image.Image, 0, len(story.Panels))

	slog.Info("Phase 2: 逐次パネル描画を開始するのだ", "count", len(story.Panels), "style", styleName)

	for _, panel := range story.Panels {
		// レートリミットに従って、次の生成まで待機するのだ
		if pr.limiter != nil {
			if err := pr.limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("パネル%dの描画待機が中断されたのだ: %w", panel.Index, err)
			}
		}

		slog.Info("パネルを描画中...", "panel", panel.Index, "type", panel.Type)

		img, err := pr.renderer.Render(ctx, panel.ImagePrompt, styleName)
		if err != nil {
			slog.Error("パネル描画に失敗したのだ", "panel", panel.Index, "error", err)
			return nil, fmt.Errorf("パネル%d (%s) の描画に失敗したのだ: %w", panel.Index, panel.Type, err)
		}

		images = append(images, img)
		slog.Info("パネル描画に成功したのだ", "panel", panel.Index)
	}

	slog.Info("すべてのパネルが正常に描画されたのだ", "total", len(images))
	return images, nil
}
