package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-comic-strip/pkg/domain"
	"github.com/shouni/go-comic-strip/pkg/planner"
)

// StoryRunner は、ユーザーの題材から4パネル構成案を生成するためのインターフェース。
type StoryRunner interface {
	// Run はストーリー生成を実行し、固定順の4パネルを持つ Story を返す。
	Run(ctx context.Context, userPrompt string) (domain.Story, error)
}

// ComicStoryRunner は StoryPlanner を使った標準実装。
type ComicStoryRunner struct {
	planner *planner.StoryPlanner
}

// NewComicStoryRunner は、ComicStoryRunnerの新しいインスタンスを生成して返す。
func NewComicStoryRunner(p *planner.StoryPlanner) *ComicStoryRunner {
	return &ComicStoryRunner{planner: p}
}

// Run はストーリーを生成し、返却前に構成の不変条件を検査するのだ。
func (sr *ComicStoryRunner) Run(ctx context.Context, userPrompt string) (domain.Story, error) {
	slog.Info("Phase 1: ストーリー構成案の生成を開始するのだ...", "prompt", userPrompt)

	story, err := sr.planner.GenerateStory(ctx, userPrompt)
	if err != nil {
		return domain.Story{}, fmt.Errorf("ストーリー生成に失敗したのだ: %w", err)
	}

	// プランナーはフォールバックで必ず4パネル返す契約だが、念のため検査するのだ
	if err := story.Validate(); err != nil {
		return domain.Story{}, fmt.Errorf("生成されたストーリーが不正なのだ: %w", err)
	}

	return story, nil
}
