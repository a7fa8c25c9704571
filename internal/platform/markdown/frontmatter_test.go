package markdown_test

import (
	"strings"
	"testing"

	"stringlog/internal/platform/markdown"
)

type header struct {
	ID       string `yaml:"id"`
	Duration int    `yaml:"duration_seconds"`
}

func TestRenderAndSplitFrontmatter(t *testing.T) {
	t.Parallel()
	rendered, err := markdown.RenderFrontmatter(header{ID: "s-1", Duration: 90}, "# Session\n")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(rendered, "---\nid: s-1\nduration_seconds: 90\n---\n") {
		t.Fatalf("unexpected header order: %q", rendered)
	}
	var got header
	body, err := markdown.SplitFrontmatter(rendered, &got)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if got.ID != "s-1" || got.Duration != 90 {
		t.Fatalf("unexpected meta %+v", got)
	}
	if strings.TrimSpace(body) != "# Session" {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestSplitFrontmatterErrors(t *testing.T) {
	t.Parallel()
	var got header
	if _, err := markdown.SplitFrontmatter("---\nid: x\n", &got); err == nil {
		t.Fatalf("missing closing separator must fail")
	}
	body, err := markdown.SplitFrontmatter("plain", &got)
	if err != nil || body != "plain" {
		t.Fatalf("plain content should pass through, got %q (%v)", body, err)
	}
}
