package runner

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/shouni/go-comic-strip/pkg/domain"
	"github.com/shouni/go-comic-strip/pkg/renderer"

	"golang.org/x/time/rate"
)

// stubSynthesizer は ImageSynthesizer の決定的スタブなのだ。
type stubSynthesizer struct {
	prompts []string
	err     error
}

func (s *stubSynthesizer) Synthesize(ctx context.Context, req domain.PanelImageRequest) (*domain.PanelImage, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.prompts = append(s.prompts, req.Prompt)

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{200, 50, 50, 255})
		}
	}
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		return nil, err
	}
	return &domain.PanelImage{Data: buf.Bytes(), MimeType: "image/png"}, nil
}

func fourPanelStory() domain.Story {
	panels := make([]domain.Panel, 0, domain.PanelCount)
	for i, pt := range domain.PanelTypes() {
		panels = append(panels, domain.Panel{
			Index:       i + 1,
			Type:        pt,
			Description: "desc",
			Dialogue:    "line",
			ImagePrompt: "scene",
		})
	}
	return domain.Story{Prompt: "test", Panels: panels}
}

func TestSequentialPanelRunner_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("Success/OneImagePerPanelInStoryOrder", func(t *testing.T) {
		syn := &stubSynthesizer{}
		r, err := renderer.NewPanelRenderer(syn)
		if err != nil {
			t.Fatalf("renderer constructor failed: %v", err)
		}

		pr := NewSequentialPanelRunner(r, rate.NewLimiter(rate.Inf, 1))
		images, err := pr.Run(ctx, fourPanelStory(), "manga")
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}

		if len(images) != domain.PanelCount {
			t.Fatalf("want %d images, got %d", domain.PanelCount, len(images))
		}
		if len(syn.prompts) != domain.PanelCount {
			t.Fatalf("want %d synthesizer calls, got %d", domain.PanelCount, len(syn.prompts))
		}
		for i, prompt := range syn.prompts {
			if got, want := prompt[:30], "manga style, black and white, "; got != want {
				t.Errorf("call %d: prompt prefix %q, want %q", i+1, got, want)
			}
		}
	})

	t.Run("Failure/SynthesizerFailureAbortsTheRun", func(t *testing.T) {
		syn := &stubSynthesizer{err: errors.New("service down")}
		r, _ := renderer.NewPanelRenderer(syn)

		pr := NewSequentialPanelRunner(r, rate.NewLimiter(rate.Inf, 1))
		if _, err := pr.Run(ctx, fourPanelStory(), "comic"); err == nil {
			t.Error("expected error when the image service fails, got nil")
		}
	})
}

func TestLocalPublishRunner_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("Success/WritesExactlyOneTimestampedPNG", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "comic_output")
		pr := NewLocalPublishRunner(dir)
		pr.now = func() time.Time { return time.Unix(1756100000, 0) }

		canvas := image.NewRGBA(image.Rect(0, 0, 4, 4))
		path, err := pr.Run(ctx, canvas)
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}

		if filepath.Base(path) != "comic_1756100000.png" {
			t.Errorf("unexpected file name: %s", filepath.Base(path))
		}
		if matched := regexp.MustCompile(`^comic_\d+\.png$`).MatchString(filepath.Base(path)); !matched {
			t.Errorf("file name should match comic_<unix>.png: %s", path)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("output dir was not created: %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("exactly one file should be written, got %d", len(entries))
		}

		// 書き出したファイルがPNGとしてデコードできることも確認するのだ
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read output: %v", err)
		}
		if _, err := png.Decode(bytes.NewReader(data)); err != nil {
			t.Errorf("output is not a decodable PNG: %v", err)
		}
	})

	t.Run("Failure/CancelledContext", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(context.Background())
		cancel()

		pr := NewLocalPublishRunner(t.TempDir())
		if _, err := pr.Run(cancelled, image.NewRGBA(image.Rect(0, 0, 1, 1))); err == nil {
			t.Error("expected error for cancelled context, got nil")
		}
	})
}
