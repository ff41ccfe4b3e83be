package ingest

import (
	"strings"
	"testing"
)

func TestSplit_ShortTextSingleChunk(t *testing.T) {
	c := NewChunker(1000, 200)

	got := c.Split("a short book")
	if len(got) != 1 || got[0] != "a short book" {
		t.Errorf("unexpected chunks: %v", got)
	}
}

func TestSplit_Empty(t *testing.T) {
	c := NewChunker(1000, 200)

	if got := c.Split("   \n  "); got != nil {
		t.Errorf("expected nil for whitespace input, got %v", got)
	}
}

func TestSplit_RespectsSizeLimit(t *testing.T) {
	c := NewChunker(100, 20)
	text := strings.Repeat("word ", 200)

	for i, chunk := range c.Split(text) {
		if n := len([]rune(chunk)); n > 100 {
			t.Errorf("chunk %d exceeds size: %d runes", i, n)
		}
	}
}

func TestSplit_PrefersParagraphBreaks(t *testing.T) {
	c := NewChunker(100, 10)
	para1 := strings.Repeat("a", 60)
	para2 := strings.Repeat("b", 60)
	text := para1 + "\n\n" + para2

	got := c.Split(text)
	if len(got) < 2 {
		t.Fatalf("expected at least 2 chunks, got %d", len(got))
	}
	if got[0] != para1 {
		t.Errorf("first chunk should end at the paragraph break, got %q", got[0])
	}
}

func TestSplit_OverlapCarriesText(t *testing.T) {
	c := NewChunker(100, 20)
	text := strings.Repeat("word ", 100)

	got := c.Split(text)
	if len(got) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(got))
	}
	// the tail of each chunk reappears at the head of the next
	for i := 1; i < len(got); i++ {
		head := string([]rune(got[i])[:5])
		if !strings.Contains(got[i-1], head) {
			t.Errorf("chunk %d does not overlap its predecessor", i)
		}
	}
}

func TestSplit_UnbrokenTextHardCuts(t *testing.T) {
	c := NewChunker(50, 10)
	text := strings.Repeat("x", 200)

	got := c.Split(text)
	if len(got) < 4 {
		t.Fatalf("expected several chunks, got %d", len(got))
	}
	for i, chunk := range got {
		if len([]rune(chunk)) > 50 {
			t.Errorf("chunk %d exceeds size", i)
		}
	}
}

func TestNewChunker_Defaults(t *testing.T) {
	c := NewChunker(0, -1)
	if c.size != DefaultChunkSize || c.overlap != DefaultChunkOverlap {
		t.Errorf("unexpected defaults: size=%d overlap=%d", c.size, c.overlap)
	}

	// overlap too large for the window falls back to a safe fraction
	c = NewChunker(100, 90)
	if c.overlap >= c.size/2 {
		t.Errorf("overlap not clamped: %d", c.overlap)
	}
}
