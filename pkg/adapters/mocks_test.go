package adapters

import (
	"context"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
)

// mockImageGenerator は gemini-image-kit の ImageGenerator のテスト用モックなのだ。
type mockImageGenerator struct {
	panelFunc func(ctx context.Context, req imagedom.ImageGenerationRequest) (*imagedom.ImageResponse, error)
}

func (m *mockImageGenerator) GenerateMangaPanel(ctx context.Context, req imagedom.ImageGenerationRequest) (*imagedom.ImageResponse, error) {
	if m.panelFunc != nil {
		return m.panelFunc(ctx, req)
	}
	return nil, nil
}

// GenerateMangaPage はインターフェースを満たすための空実装なのだ。
func (m *mockImageGenerator) GenerateMangaPage(ctx context.Context, req imagedom.ImagePageRequest) (*imagedom.ImageResponse, error) {
	return nil, nil
}
