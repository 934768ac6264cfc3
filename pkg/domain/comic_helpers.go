package domain

import "fmt"

// キャプション表示用の文字数上限です。超過分は TruncateForCaption で切り詰めます。
const (
	DescriptionDisplayLimit = 60
	DialogueDisplayLimit    = 40
	truncationEllipsis      = "..."
)

// TruncateForCaption は limit を超える文字列を limit-3 文字 + "..." に切り詰めます。
// 上限以内の文字列はそのまま返します。
func TruncateForCaption(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-len(truncationEllipsis)]) + truncationEllipsis
}

// Validate は Story がコミックとして成立する形かを検査します。
// パネル数が固定値と一致し、種別が既定の進行順に並んでいることを要求します。
func (s Story) Validate() error {
	if len(s.Panels) != PanelCount {
		return fmt.Errorf("ストーリーは%dパネル必要ですが%dパネルしかありません", PanelCount, len(s.Panels))
	}
	for i, want := range PanelTypes() {
		if s.Panels[i].Type != want {
			return fmt.Errorf("パネル%dの種別が不正です: want %s, got %s", i+1, want, s.Panels[i].Type)
		}
	}
	return nil
}
