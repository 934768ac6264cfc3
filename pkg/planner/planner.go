package planner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-comic-strip/pkg/adapters"
	"github.com/shouni/go-comic-strip/pkg/domain"
)

// StoryPlanner はユーザープロンプトから4パネル分の構成案（Story）を生成します。
// テキスト生成サービスの応答が期待した形式でなくても、決定的なフォールバック値で
// 必ず4パネルを返します。1パネルの失敗が全体を落とすことはありません。
type StoryPlanner struct {
	completer adapters.TextCompleter
}

// NewStoryPlanner は依存関係を注入して StoryPlanner を生成します。
func NewStoryPlanner(completer adapters.TextCompleter) (*StoryPlanner, error) {
	if completer == nil {
		return nil, fmt.Errorf("completer (adapters.TextCompleter) is required")
	}
	return &StoryPlanner{completer: completer}, nil
}

// GenerateStory は固定の進行順で各パネルの指示プロンプトを構築し、
// テキスト生成サービスを1パネルずつ呼び出して Story に組み立てます。
// 返却順は常に PanelTypes の順で、並べ替えは行いません。
// エラーを返すのはコンテキストが打ち切られた場合だけです。
func (p *StoryPlanner) GenerateStory(ctx context.Context, userPrompt string) (domain.Story, error) {
	story := domain.Story{
		Prompt: userPrompt,
		Panels: make([]domain.Panel, 0, domain.PanelCount),
	}

	for i, panelType := range domain.PanelTypes() {
		index := i + 1

		if err := ctx.Err(); err != nil {
			return domain.Story{}, fmt.Errorf("ストーリー生成が中断されました: %w", err)
		}

		panel := p.planPanel(ctx, index, panelType, userPrompt)
		story.Panels = append(story.Panels, panel)
	}

	slog.Info("ストーリー構成案が完成したのだ", "panels", len(story.Panels), "prompt", userPrompt)
	return story, nil
}

// planPanel は1パネル分の生成と解析を行います。
// サービス呼び出しや解析の失敗はここで回収し、フォールバック値に置き換えます。
func (p *StoryPlanner) planPanel(ctx context.Context, index int, panelType domain.PanelType, userPrompt string) domain.Panel {
	instruction, err := buildPanelPrompt(index, panelType, userPrompt)
	if err != nil {
		slog.Warn("指示プロンプトの構築に失敗したためフォールバックするのだ", "panel", index, "error", err)
		return fallbackPanel(index, panelType, userPrompt)
	}

	reply, err := p.completer.Complete(ctx, instruction)
	if err != nil {
		slog.Warn("テキスト生成に失敗したためフォールバックするのだ", "panel", index, "type", panelType, "error", err)
		return fallbackPanel(index, panelType, userPrompt)
	}

	parsed, ok := parsePanelReply(reply)
	if !ok {
		slog.Warn("応答が期待形式でないためフォールバックするのだ", "panel", index, "type", panelType)
		return fallbackPanel(index, panelType, userPrompt)
	}

	return domain.Panel{
		Index:       index,
		Type:        panelType,
		Description: parsed.description,
		Dialogue:    parsed.dialogue,
		ImagePrompt: parsed.imagePrompt,
	}
}

// parsedPanel はモデル応答をパイプ区切りで解析した結果です。
type parsedPanel struct {
	description string
	dialogue    string
	imagePrompt string
}

// parsePanelReply は応答をパイプ文字で分割し、3区画以上あれば先頭3つを採用します。
// 区切りが足りない応答は ok=false で返し、呼び出し側がフォールバックします。
func parsePanelReply(reply string) (parsedPanel, bool) {
	segments := strings.Split(reply, "|")
	if len(segments) < 3 {
		return parsedPanel{}, false
	}

	parsed := parsedPanel{
		description: strings.TrimSpace(segments[0]),
		dialogue:    strings.TrimSpace(segments[1]),
		imagePrompt: strings.TrimSpace(segments[2]),
	}
	if parsed.description == "" || parsed.imagePrompt == "" {
		return parsedPanel{}, false
	}
	return parsed, true
}

// fallbackPanel はパネル番号・種別・ユーザープロンプトだけから導出できる
// 決定的なプレースホルダーを返します。モデル応答には一切依存しません。
func fallbackPanel(index int, panelType domain.PanelType, userPrompt string) domain.Panel {
	lower := strings.ToLower(string(panelType))
	return domain.Panel{
		Index:       index,
		Type:        panelType,
		Description: fmt.Sprintf("The %s of a story about %s.", lower, userPrompt),
		Dialogue:    fmt.Sprintf("Panel %d: %s.", index, panelType),
		ImagePrompt: fmt.Sprintf("%s scene of %s, detailed illustration", lower, userPrompt),
	}
}
