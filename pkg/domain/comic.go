package domain

import "image"

// PanelType は4コマ構成における各パネルの物語上の役割を表します。
type PanelType string

const (
	PanelIntroduction PanelType = "Introduction"
	PanelStoryline    PanelType = "Storyline"
	PanelClimax       PanelType = "Climax"
	PanelResolution   PanelType = "Resolution"
)

// PanelCount は1本のコミックを構成するパネルの固定数です。
const PanelCount = 4

// PanelTypes は物語の進行順に並んだパネル種別を返します。
// この順序がそのまま生成順・配置順になるため、並べ替えてはいけません。
func PanelTypes() []PanelType {
	return []PanelType{
		PanelIntroduction,
		PanelStoryline,
		PanelClimax,
		PanelResolution,
	}
}

// Panel はコミックの1コマ分の構成、セリフ、画像生成指示を保持します。
// StoryPlanner が生成した後は読み取り専用として扱います。
type Panel struct {
	Index       int       `json:"index"` // 1始まり
	Type        PanelType `json:"type"`
	Description string    `json:"description"`
	Dialogue    string    `json:"dialogue"`
	ImagePrompt string    `json:"image_prompt"`
}

// Story は1回の生成で得られるパネルの順序付きコレクションです。
type Story struct {
	Prompt string  `json:"prompt"`
	Panels []Panel `json:"panels"`
}

// RenderedPanel はパネルとその合成済みラスタ画像の1:1の組です。
type RenderedPanel struct {
	Panel Panel
	Image image.Image
}

// PanelImageRequest は画像合成サービスへの単一パネルの生成要求です。
// GuidanceScale / Steps はバックエンドが対応する範囲で解釈されます。
type PanelImageRequest struct {
	Prompt         string
	NegativePrompt string
	GuidanceScale  float64
	Steps          int
	Width          int
	Height         int
}

// PanelImage は画像合成サービスが返すエンコード済みラスタ画像です。
type PanelImage struct {
	Data     []byte
	MimeType string
}
