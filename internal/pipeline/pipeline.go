package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"log/slog"

	"github.com/shouni/go-comic-strip/internal/builder"
	"github.com/shouni/go-comic-strip/internal/config"
	"github.com/shouni/go-comic-strip/internal/runner"
	"github.com/shouni/go-comic-strip/pkg/composer"
	"github.com/shouni/go-comic-strip/pkg/domain"

	"github.com/shouni/go-http-kit/pkg/httpkit"
)

// Pipeline はストーリー生成、パネル描画、合成、保存を順番につなぐオーケストレーターなのだ。
// 各段は前段の出力だけを消費し、共有の可変状態は持たないのだ。
type Pipeline struct {
	storyRunner   runner.StoryRunner
	panelRunner   runner.PanelRunner
	comicComposer *composer.ComicComposer
	publishRunner runner.PublishRunner
}

// NewPipeline は各 Runner を注入して Pipeline を生成するのだ。
func NewPipeline(
	storyRunner runner.StoryRunner,
	panelRunner runner.PanelRunner,
	comicComposer *composer.ComicComposer,
	publishRunner runner.PublishRunner,
) *Pipeline {
	return &Pipeline{
		storyRunner:   storyRunner,
		panelRunner:   panelRunner,
		comicComposer: comicComposer,
		publishRunner: publishRunner,
	}
}

// GenerateComic はストーリー生成から合成までを逐次実行し、
// 完成したキャンバスと元になったストーリーの両方を返すのだ。保存は行わないのだ。
func (p *Pipeline) GenerateComic(ctx context.Context, userPrompt, styleName string) (*image.RGBA, domain.Story, error) {
	story, err := p.storyRunner.Run(ctx, userPrompt)
	if err != nil {
		return nil, domain.Story{}, err
	}

	images, err := p.panelRunner.Run(ctx, story, styleName)
	if err != nil {
		return nil, domain.Story{}, err
	}

	slog.Info("Phase 3: コミックの合成を開始するのだ...")
	canvas, err := p.comicComposer.Assemble(story, images)
	if err != nil {
		return nil, domain.Story{}, fmt.Errorf("コミックの合成に失敗したのだ: %w", err)
	}

	return canvas, story, nil
}

// Run は GenerateComic の結果を保存までつなげ、出力パスとストーリーを返すのだ。
func (p *Pipeline) Run(ctx context.Context, userPrompt, styleName string) (string, domain.Story, error) {
	canvas, story, err := p.GenerateComic(ctx, userPrompt, styleName)
	if err != nil {
		return "", domain.Story{}, err
	}

	outputPath, err := p.publishRunner.Run(ctx, canvas)
	if err != nil {
		return "", domain.Story{}, err
	}

	return outputPath, story, nil
}

// Execute は設定から実サービスを組み立ててフルパイプラインを実行するのだ。
func Execute(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	p, err := buildPipeline(appCtx)
	if err != nil {
		return err
	}

	outputPath, story, err := p.Run(ctx, cfg.Options.Prompt, cfg.Options.Style)
	if err != nil {
		return err
	}

	slog.Info("コミックが完成したのだ！", "path", outputPath, "title_prompt", story.Prompt)
	return nil
}

// ExecuteStoryOnly は画像を生成せず、構成案だけを作ってJSONで書き出すのだ。
// 画像モデルのクォータを使わずに構成を確認したいときに便利なのだ。
func ExecuteStoryOnly(ctx context.Context, cfg *config.Config, out io.Writer) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	storyRunner, err := builder.BuildStoryRunner(appCtx)
	if err != nil {
		return err
	}

	story, err := storyRunner.Run(ctx, cfg.Options.Prompt)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(story); err != nil {
		return fmt.Errorf("ストーリーの書き出しに失敗したのだ: %w", err)
	}
	return nil
}

// setupAppContext は、提供された設定と共有コンポーネントを使用して、アプリケーションコンテキストを初期化して返すのだ。
func setupAppContext(ctx context.Context, cfg *config.Config) (*builder.AppContext, error) {
	httpClient := httpkit.New(config.DefaultHTTPTimeout)

	aiClient, err := builder.InitializeAIClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create ai client: %w", err)
	}

	completer, err := builder.InitializeTextCompleter(aiClient, cfg.GeminiModel)
	if err != nil {
		return nil, err
	}

	synthesizer, err := builder.InitializeImageSynthesizer(httpClient, aiClient, cfg.GeminiImageModel)
	if err != nil {
		return nil, err
	}

	appCtx := builder.NewAppContext(cfg, completer, synthesizer)
	return &appCtx, nil
}

// buildPipeline は AppContext から全 Runner を構築して Pipeline に束ねるのだ。
func buildPipeline(appCtx *builder.AppContext) (*Pipeline, error) {
	storyRunner, err := builder.BuildStoryRunner(appCtx)
	if err != nil {
		return nil, err
	}

	panelRunner, err := builder.BuildPanelRunner(appCtx)
	if err != nil {
		return nil, err
	}

	publishRunner := builder.BuildPublishRunner(appCtx)

	return NewPipeline(storyRunner, panelRunner, composer.NewComicComposer(), publishRunner), nil
}
