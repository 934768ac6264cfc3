package config

import (
	"time"

	"github.com/shouni/go-utils/envutil"
)

// デフォルト値の定義なのだ
const (
	DefaultModel       = "gemini-3-flash-preview"
	DefaultImageModel  = "gemini-3-pro-image-preview"
	DefaultHTTPTimeout = 30 * time.Second
	DefaultStyle       = "comic"
	DefaultOutputDir   = "comic_output" // 完成したコミックPNGの保存先ディレクトリ

	// DefaultRateInterval は画像生成呼び出しの間隔なのだ。
	// 画像モデルはアクセラレータを占有するため、逐次かつ間隔を空けて呼ぶのだ。
	DefaultRateInterval = 10 * time.Second

	// DefaultTemperature はストーリー生成のサンプリング温度なのだ。
	// 同じプロンプトでも毎回違う物語になるのは仕様であって、バグではないのだ。
	DefaultTemperature = float32(0.9)
)

// Config はアプリケーション全体の環境設定（APIキーやモデル名）を保持する構造体なのだ。
type Config struct {
	GeminiAPIKey     string
	GeminiModel      string
	GeminiImageModel string

	Options GenerateOptions
}

// LoadConfig は環境変数から設定を読み込み、構造体を返すのだ！
func LoadConfig() *Config {
	return &Config{
		GeminiAPIKey:     envutil.GetEnv("GEMINI_API_KEY", ""),
		GeminiModel:      envutil.GetEnv("GEMINI_MODEL", DefaultModel),
		GeminiImageModel: envutil.GetEnv("IMAGE_GEMINI_MODEL", DefaultImageModel),
	}
}

// GenerateOptions は CLI フラグから渡される実行時のパラメータなのだ。
type GenerateOptions struct {
	Prompt    string // --prompt: コミックの題材
	Style     string // --style: 全パネル共通の画風キーワード
	OutputDir string // --output-dir: PNGの保存先（なければ作成するのだ）

	// AI挙動設定
	AIModel    string // --model: テキスト生成用のGeminiモデル
	ImageModel string // --image-model: 画像生成用のGeminiモデル

	// 実行制御
	HTTPTimeout time.Duration // --http-timeout
}
