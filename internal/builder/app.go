package builder

import (
	"github.com/shouni/go-comic-strip/internal/config"
	"github.com/shouni/go-comic-strip/pkg/adapters"
)

// AppContext は、アプリケーション実行に必要な共通コンテキストを保持する。
// これを各Build関数に渡すことで、依存関係の注入を簡素化します。
type AppContext struct {
	Config      *config.Config            // Configは、環境変数から読み込まれたグローバルな設定です（APIキー、モデル名など）。
	Options     config.GenerateOptions    // Optionsは、コマンドラインから渡された実行時の設定です（題材、スタイル、出力先など）。
	Completer   adapters.TextCompleter    // Completerは、ストーリー生成に使うテキスト生成サービスです。
	Synthesizer adapters.ImageSynthesizer // Synthesizerは、パネル描画に使う画像合成サービスです。
}

// NewAppContext は AppContext の新しいインスタンスを生成する
func NewAppContext(
	cfg *config.Config,
	completer adapters.TextCompleter,
	synthesizer adapters.ImageSynthesizer,
) AppContext {
	return AppContext{
		Config:      cfg,
		Options:     cfg.Options,
		Completer:   completer,
		Synthesizer: synthesizer,
	}
}
