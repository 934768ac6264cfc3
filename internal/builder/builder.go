package builder

import (
	"context"
	"fmt"
	"time"

	"github.com/shouni/go-comic-strip/internal/config"
	"github.com/shouni/go-comic-strip/internal/runner"
	"github.com/shouni/go-comic-strip/pkg/adapters"
	"github.com/shouni/go-comic-strip/pkg/planner"
	"github.com/shouni/go-comic-strip/pkg/renderer"

	"github.com/patrickmn/go-cache"
	imagegen "github.com/shouni/gemini-image-kit/pkg/generator"
	"github.com/shouni/go-ai-client/v2/pkg/ai/gemini"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// InitializeAIClient は gemini クライアントを初期化します。
// サンプリングを有効にするため、温度は高めの既定値を設定します。
func InitializeAIClient(ctx context.Context, apiKey string) (gemini.GenerativeModel, error) {
	clientConfig := gemini.Config{
		APIKey:      apiKey,
		Temperature: genai.Ptr(config.DefaultTemperature),
	}
	aiClient, err := gemini.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}
	return aiClient, nil
}

// InitializeTextCompleter はストーリー生成用のテキスト補完サービスを初期化します。
func InitializeTextCompleter(aiClient gemini.GenerativeModel, model string) (adapters.TextCompleter, error) {
	completer, err := adapters.NewGeminiTextCompleter(aiClient, model)
	if err != nil {
		return nil, fmt.Errorf("TextCompleterの初期化に失敗したのだ: %w", err)
	}
	return completer, nil
}

// InitializeImageSynthesizer は画像合成サービスのアダプターを初期化します。
func InitializeImageSynthesizer(httpClient httpkit.ClientInterface, aiClient gemini.GenerativeModel, model string) (adapters.ImageSynthesizer, error) {
	imgCache := cache.New(30*time.Minute, 1*time.Hour)
	cacheTTL := 1 * time.Hour

	// 画像処理コアを生成
	core, err := imagegen.NewGeminiImageCore(httpClient, imgCache, cacheTTL)
	if err != nil {
		return nil, fmt.Errorf("GeminiImageCoreの初期化に失敗したのだ: %w", err)
	}

	imgGen, err := imagegen.NewGeminiGenerator(core, aiClient, model)
	if err != nil {
		return nil, fmt.Errorf("GeminiGeneratorの初期化に失敗したのだ: %w", err)
	}

	return adapters.NewGeminiImageSynthesizer(imgGen)
}

// BuildStoryRunner はストーリー構成案の生成を担当する Runner を構築します。
func BuildStoryRunner(appCtx *AppContext) (runner.StoryRunner, error) {
	storyPlanner, err := planner.NewStoryPlanner(appCtx.Completer)
	if err != nil {
		return nil, fmt.Errorf("StoryPlannerの構築に失敗したのだ: %w", err)
	}
	return runner.NewComicStoryRunner(storyPlanner), nil
}

// BuildPanelRunner は逐次パネル描画を担当する Runner を構築します。
func BuildPanelRunner(appCtx *AppContext) (runner.PanelRunner, error) {
	panelRenderer, err := renderer.NewPanelRenderer(appCtx.Synthesizer)
	if err != nil {
		return nil, fmt.Errorf("PanelRendererの構築に失敗したのだ: %w", err)
	}

	// Burst 1 なので、最初の1枚以外は必ず間隔を待ってから生成するのだ
	limiter := rate.NewLimiter(rate.Every(config.DefaultRateInterval), 1)
	return runner.NewSequentialPanelRunner(panelRenderer, limiter), nil
}

// BuildPublishRunner は完成したキャンバスの保存を担当する Runner を構築します。
func BuildPublishRunner(appCtx *AppContext) runner.PublishRunner {
	return runner.NewLocalPublishRunner(appCtx.Options.OutputDir)
}
