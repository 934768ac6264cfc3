package composer

import (
	"log/slog"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

// キャプション描画に使うシステムフォントの探索パスです。
// 見つからなくても組み込みフォントで続行するため、実行を止めることはありません。
var systemFontPaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
	"/System/Library/Fonts/Supplemental/Arial.ttf",
}

const captionFontSize = 14

// loadCaptionFace はシステムフォントの読み込みを試み、
// 失敗した場合は組み込みの basicfont にフォールバックします。
func loadCaptionFace() font.Face {
	for _, path := range systemFontPaths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		parsed, err := opentype.Parse(data)
		if err != nil {
			slog.Warn("フォントの解析に失敗したのだ", "path", path, "error", err)
			continue
		}

		face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
			Size:    captionFontSize,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			slog.Warn("フォントフェイスの生成に失敗したのだ", "path", path, "error", err)
			continue
		}

		return face
	}

	slog.Warn("システムフォントが見つからないため組み込みフォントを使うのだ")
	return basicfont.Face7x13
}
