package planner

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/shouni/go-comic-strip/pkg/domain"
)

//go:embed panel_prompt.md
var panelPromptTemplate string

// panelRoles は各パネル種別に与える物語上の役割の説明です。
// 指示プロンプトに埋め込んで、モデルに進行上の位置づけを伝えます。
var panelRoles = map[domain.PanelType]string{
	domain.PanelIntroduction: "Introduce the setting and the main character.",
	domain.PanelStoryline:    "Develop the story and build tension.",
	domain.PanelClimax:       "Show the most dramatic moment or turning point.",
	domain.PanelResolution:   "Conclude the story with a satisfying or funny ending.",
}

// templateData は panel_prompt.md に流し込む値のセットです。
type templateData struct {
	Index      int
	PanelType  domain.PanelType
	Role       string
	UserPrompt string
}

var promptTmpl = template.Must(template.New("panel_prompt").Parse(panelPromptTemplate))

// buildPanelPrompt はパネル種別とユーザープロンプトから指示プロンプトを組み立てます。
func buildPanelPrompt(index int, panelType domain.PanelType, userPrompt string) (string, error) {
	data := templateData{
		Index:      index,
		PanelType:  panelType,
		Role:       panelRoles[panelType],
		UserPrompt: strings.TrimSpace(userPrompt),
	}

	var sb strings.Builder
	if err := promptTmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("指示プロンプトの構築に失敗しました: %w", err)
	}
	return sb.String(), nil
}
