package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/shouni/go-comic-strip/pkg/domain"
)

// stubCompleter は TextCompleter の決定的スタブなのだ。
type stubCompleter struct {
	completeFunc func(ctx context.Context, prompt string) (string, error)
}

func (s *stubCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	if s.completeFunc != nil {
		return s.completeFunc(ctx, prompt)
	}
	return "", nil
}

func TestStoryPlanner_GenerateStory(t *testing.T) {
	ctx := context.Background()
	userPrompt := "a robot learns to paint"

	t.Run("Success/AlwaysFourPanelsInFixedOrder", func(t *testing.T) {
		completer := &stubCompleter{
			completeFunc: func(ctx context.Context, prompt string) (string, error) {
				return "A robot stares at a blank canvas | I will learn this. | robot in an art studio", nil
			},
		}

		p, err := NewStoryPlanner(completer)
		if err != nil {
			t.Fatalf("constructor failed: %v", err)
		}

		story, err := p.GenerateStory(ctx, userPrompt)
		if err != nil {
			t.Fatalf("GenerateStory failed: %v", err)
		}

		if err := story.Validate(); err != nil {
			t.Errorf("generated story should validate: %v", err)
		}
		for i, want := range domain.PanelTypes() {
			if story.Panels[i].Type != want {
				t.Errorf("panel %d: want type %s, got %s", i+1, want, story.Panels[i].Type)
			}
			if story.Panels[i].Index != i+1 {
				t.Errorf("panel %d: want index %d, got %d", i+1, i+1, story.Panels[i].Index)
			}
		}
	})

	t.Run("Success/WellFormedReplyIsParsedIntoFields", func(t *testing.T) {
		completer := &stubCompleter{
			completeFunc: func(ctx context.Context, prompt string) (string, error) {
				return "  Desc here  |  \"Let's go!\"  |  a sunny field, oil painting  ", nil
			},
		}

		p, _ := NewStoryPlanner(completer)
		story, err := p.GenerateStory(ctx, userPrompt)
		if err != nil {
			t.Fatalf("GenerateStory failed: %v", err)
		}

		first := story.Panels[0]
		if first.Description != "Desc here" {
			t.Errorf("description not trimmed: %q", first.Description)
		}
		if first.Dialogue != `"Let's go!"` {
			t.Errorf("dialogue not trimmed: %q", first.Dialogue)
		}
		if first.ImagePrompt != "a sunny field, oil painting" {
			t.Errorf("image prompt not trimmed: %q", first.ImagePrompt)
		}
	})

	t.Run("Fallback/ReplyWithoutPipesUsesDeterministicValues", func(t *testing.T) {
		completer := &stubCompleter{
			completeFunc: func(ctx context.Context, prompt string) (string, error) {
				return "the model rambled on without any delimiter", nil
			},
		}

		p, _ := NewStoryPlanner(completer)
		story, err := p.GenerateStory(ctx, userPrompt)
		if err != nil {
			t.Fatalf("GenerateStory failed: %v", err)
		}

		for i, panel := range story.Panels {
			lower := strings.ToLower(string(panel.Type))
			wantDesc := fmt.Sprintf("The %s of a story about %s.", lower, userPrompt)
			wantDialogue := fmt.Sprintf("Panel %d: %s.", i+1, panel.Type)
			wantImage := fmt.Sprintf("%s scene of %s, detailed illustration", lower, userPrompt)

			if panel.Description != wantDesc {
				t.Errorf("panel %d description: want %q, got %q", i+1, wantDesc, panel.Description)
			}
			if panel.Dialogue != wantDialogue {
				t.Errorf("panel %d dialogue: want %q, got %q", i+1, wantDialogue, panel.Dialogue)
			}
			if panel.ImagePrompt != wantImage {
				t.Errorf("panel %d image prompt: want %q, got %q", i+1, wantImage, panel.ImagePrompt)
			}
		}
	})

	t.Run("Fallback/CompleterErrorNeverAbortsTheStory", func(t *testing.T) {
		calls := 0
		completer := &stubCompleter{
			completeFunc: func(ctx context.Context, prompt string) (string, error) {
				calls++
				if calls == 2 {
					return "", errors.New("model overloaded")
				}
				return "d | l | v", nil
			},
		}

		p, _ := NewStoryPlanner(completer)
		story, err := p.GenerateStory(ctx, userPrompt)
		if err != nil {
			t.Fatalf("a single failing panel must not abort the run: %v", err)
		}
		if len(story.Panels) != domain.PanelCount {
			t.Fatalf("want %d panels, got %d", domain.PanelCount, len(story.Panels))
		}

		// 2パネル目だけフォールバックになっているはずなのだ
		if story.Panels[1].Dialogue != "Panel 2: Storyline." {
			t.Errorf("panel 2 should use fallback dialogue: %q", story.Panels[1].Dialogue)
		}
		if story.Panels[0].Dialogue != "l" {
			t.Errorf("panel 1 should use the parsed dialogue: %q", story.Panels[0].Dialogue)
		}
	})

	t.Run("Failure/CancelledContextStopsGeneration", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(context.Background())
		cancel()

		p, _ := NewStoryPlanner(&stubCompleter{})
		if _, err := p.GenerateStory(cancelled, userPrompt); err == nil {
			t.Error("expected error for cancelled context, got nil")
		}
	})
}

func TestParsePanelReply(t *testing.T) {
	t.Run("3区画以上なら先頭3つを採用するのだ", func(t *testing.T) {
		parsed, ok := parsePanelReply("a | b | c | extra | junk")
		if !ok {
			t.Fatal("expected ok for 5 segments")
		}
		if parsed.description != "a" || parsed.dialogue != "b" || parsed.imagePrompt != "c" {
			t.Errorf("unexpected fields: %+v", parsed)
		}
	})

	t.Run("パイプが1つだけなら不採用なのだ", func(t *testing.T) {
		if _, ok := parsePanelReply("only one | pipe"); ok {
			t.Error("expected not-ok for a single pipe")
		}
	})

	t.Run("空の説明や画像指示は不採用なのだ", func(t *testing.T) {
		if _, ok := parsePanelReply(" | dialogue | "); ok {
			t.Error("expected not-ok for empty description and visual")
		}
	})
}

func TestBuildPanelPrompt(t *testing.T) {
	got, err := buildPanelPrompt(3, domain.PanelClimax, "a cat becomes mayor")
	if err != nil {
		t.Fatalf("buildPanelPrompt failed: %v", err)
	}

	for _, want := range []string{
		"Climax",
		"panel 3 of 4",
		"a cat becomes mayor",
		"Description | Dialogue | Visual",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt should contain %q:\n%s", want, got)
		}
	}
}
