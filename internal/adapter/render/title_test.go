package render

import (
	"strings"
	"testing"

	"github.com/vibecheck-dev/vibecheck/internal/domain"
)

func TestTitleNeverExceeds100Chars(t *testing.T) {
	longTitle := strings.Repeat("a very long finding title describing the problem in detail ", 5)
	f := domain.Finding{
		Title:     longTitle,
		Locations: []domain.Location{{Path: "src/a.ts", StartLine: 1}},
	}
	got := Title("vibeCheck", f)
	if len(got) > 100 {
		t.Fatalf("title length = %d, want <= 100: %q", len(got), got)
	}
}

func TestTitleLocationHintSingleFile(t *testing.T) {
	f := domain.Finding{
		Title:     "Unused variable",
		Locations: []domain.Location{{Path: "src/a.ts", StartLine: 42}},
	}
	got := Title("vibeCheck", f)
	want := "[vibeCheck] Unused variable in src/a.ts"
	if got != want {
		t.Errorf("Title = %q, want %q", got, want)
	}
}

func TestTitleLocationHintManyFiles(t *testing.T) {
	f := domain.Finding{
		Title: "Duplicate block",
		Locations: []domain.Location{
			{Path: "a.ts", StartLine: 1}, {Path: "b.ts", StartLine: 1},
			{Path: "c.ts", StartLine: 1}, {Path: "d.ts", StartLine: 1},
		},
	}
	got := Title("vibeCheck", f)
	want := "[vibeCheck] Duplicate block"
	if got != want {
		t.Errorf("Title with >=4 files = %q, want %q (no hint)", got, want)
	}
}
