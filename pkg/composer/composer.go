package composer

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/shouni/go-comic-strip/pkg/domain"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// 固定レイアウトの寸法定数です。キャンバスサイズはここから純粋に導出されます。
const (
	PanelSize     = 512 // パネル画像の一辺
	Border        = 10  // 外周とパネル間の余白
	CaptionHeight = 110 // パネル下のキャプション帯の高さ
	GridColumns   = 2
	GridRows      = 2

	borderThickness = 2
)

var (
	canvasColor  = color.RGBA{255, 255, 255, 255}
	borderColor  = color.RGBA{20, 20, 20, 255}
	captionColor = color.RGBA{235, 235, 228, 255}
	labelColor   = color.RGBA{90, 90, 90, 255}
	textColor    = color.RGBA{20, 20, 20, 255}
)

// CanvasSize は2x2グリッドのキャンバス寸法を返します。
// パネル数と寸法定数だけの純粋関数で、同じ定数からは常に同じ値になります。
func CanvasSize() (width, height int) {
	width = GridColumns*PanelSize + (GridColumns+1)*Border
	height = GridRows*(PanelSize+CaptionHeight) + (GridRows+1)*Border
	return width, height
}

// ComicComposer はパネル画像とキャプションを1枚のキャンバスに合成します。
type ComicComposer struct {
	face font.Face
}

// NewComicComposer はシステムフォント（なければ組み込みフォント）で初期化します。
func NewComicComposer() *ComicComposer {
	return &ComicComposer{face: loadCaptionFace()}
}

// NewComicComposerWithFace はフォントフェイスを指定して初期化します。
// 出力を決定的にしたいテストで使用します。
func NewComicComposerWithFace(face font.Face) *ComicComposer {
	return &ComicComposer{face: face}
}

// Assemble はストーリーと同順の画像列を受け取り、合成済みキャンバスを返します。
// パネルは行優先（0=左上, 1=右上, 2=左下, 3=右下）で配置します。
// この並びは読み順そのものなので変更してはいけません。
func (c *ComicComposer) Assemble(story domain.Story, images []image.Image) (*image.RGBA, error) {
	if err := story.Validate(); err != nil {
		return nil, fmt.Errorf("合成対象のストーリーが不正です: %w", err)
	}
	if len(images) != len(story.Panels) {
		return nil, fmt.Errorf("パネル数と画像数が一致しません: panels=%d, images=%d", len(story.Panels), len(images))
	}

	width, height := CanvasSize()
	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{canvasColor}, image.Point{}, draw.Src)

	for i, panel := range story.Panels {
		if images[i] == nil {
			return nil, fmt.Errorf("パネル%dの画像がnilです", i+1)
		}
		rendered := domain.RenderedPanel{Panel: panel, Image: images[i]}
		c.drawPanel(canvas, rendered, i)
	}

	return canvas, nil
}

// drawPanel は1パネル分の画像、枠線、キャプション帯を所定のセルに描画します。
func (c *ComicComposer) drawPanel(canvas *image.RGBA, rendered domain.RenderedPanel, position int) {
	panel := rendered.Panel
	col := position % GridColumns
	row := position / GridColumns

	x0 := Border + col*(PanelSize+Border)
	y0 := Border + row*(PanelSize+CaptionHeight+Border)

	// パネル画像をセルの寸法に合わせて貼り付ける
	imageRect := image.Rect(x0, y0, x0+PanelSize, y0+PanelSize)
	xdraw.ApproxBiLinear.Scale(canvas, imageRect, rendered.Image, rendered.Image.Bounds(), xdraw.Src, nil)

	// 画像領域の枠線
	drawRectOutline(canvas, imageRect, borderThickness, borderColor)

	// キャプション帯の塗りつぶし
	captionRect := image.Rect(x0, y0+PanelSize, x0+PanelSize, y0+PanelSize+CaptionHeight)
	draw.Draw(canvas, captionRect, &image.Uniform{captionColor}, image.Point{}, draw.Src)

	// キャプション3行: ラベル、説明（切り詰め）、セリフ（引用符付きで切り詰め）
	lineHeight := c.face.Metrics().Height.Ceil() + 4
	textX := x0 + 8
	textY := y0 + PanelSize + lineHeight

	label := fmt.Sprintf("Panel %d: %s", panel.Index, panel.Type)
	c.drawText(canvas, label, textX, textY, labelColor)

	description := domain.TruncateForCaption(panel.Description, domain.DescriptionDisplayLimit)
	c.drawText(canvas, description, textX, textY+lineHeight, textColor)

	dialogue := `"` + domain.TruncateForCaption(panel.Dialogue, domain.DialogueDisplayLimit) + `"`
	c.drawText(canvas, dialogue, textX, textY+2*lineHeight, textColor)
}

// drawText は1行分のテキストを描画します。折り返しはせず、はみ出しは切り詰め前提です。
func (c *ComicComposer) drawText(dst *image.RGBA, text string, x, y int, col color.RGBA) {
	drawer := &font.Drawer{
		Dst:  dst,
		Src:  &image.Uniform{col},
		Face: c.face,
		Dot:  fixed.P(x, y),
	}
	drawer.DrawString(text)
}

// drawRectOutline は矩形の外周を指定の太さで描画します。
func drawRectOutline(dst *image.RGBA, r image.Rectangle, thickness int, col color.RGBA) {
	uniform := &image.Uniform{col}
	// 上下の辺
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+thickness), uniform, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Max.Y-thickness, r.Max.X, r.Max.Y), uniform, image.Point{}, draw.Src)
	// 左右の辺
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+thickness, r.Max.Y), uniform, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Max.X-thickness, r.Min.Y, r.Max.X, r.Max.Y), uniform, image.Point{}, draw.Src)
}
