package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(12, 4)

	if s.Width() != 12 || s.Height() != 4 {
		t.Fatalf("size = %dx%d, want 12x4", s.Width(), s.Height())
	}
	if want := strings.Repeat(" ", 12); s.Row(3) != want {
		t.Errorf("Row(3) = %q, want blanks", s.Row(3))
	}
}

func TestScreenClipping(t *testing.T) {
	s := NewScreen(4, 2)

	for _, p := range []Point{{-1, 0}, {4, 0}, {0, -1}, {0, 2}} {
		s.Set(p.X, p.Y, 'X')
		if got := s.Get(p.X, p.Y); got != ' ' {
			t.Errorf("Get(%d,%d) = %q outside the screen, want blank", p.X, p.Y, got)
		}
	}
	if strings.ContainsRune(s.String(), 'X') {
		t.Error("writes outside the screen leaked into it")
	}

	s.DrawText(2, 1, "balls")
	if s.Row(1) != "  ba" {
		t.Errorf("Row(1) = %q, want text cut at the edge", s.Row(1))
	}
	s.Highlight(NewRect(-3, -3, 10, 10))
}

func TestScreenText(t *testing.T) {
	tests := []struct {
		name string
		draw func(s *Screen)
		row  int
		want string
	}{
		{"left aligned", func(s *Screen) { s.DrawText(1, 0, "Lines") }, 0, " Lines    "},
		{"centered", func(s *Screen) { s.DrawTextCentered(1, "Free") }, 1, "   Free   "},
		{"multibyte", func(s *Screen) { s.DrawText(0, 2, "●·●") }, 2, "●·●       "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScreen(10, 3)
			tt.draw(s)
			if got := s.Row(tt.row); got != tt.want {
				t.Errorf("Row(%d) = %q, want %q", tt.row, got, tt.want)
			}
		})
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawBox(NewRect(0, 0, 6, 4))

	want := "┌────┐\n│    │\n│    │\n└────┘"
	if s.String() != want {
		t.Errorf("DrawBox:\n%s\nwant:\n%s", s.String(), want)
	}
}

func TestScreenResizeKeepsContent(t *testing.T) {
	s := NewScreen(10, 6)
	s.DrawText(0, 0, "Moves: 3")
	s.DrawText(0, 5, "gone")

	s.Resize(5, 2)
	if s.Row(0) != "Moves" || s.Height() != 2 {
		t.Errorf("after shrinking: %q, height %d", s.Row(0), s.Height())
	}

	s.Resize(12, 3)
	if got := s.Row(0); got != "Moves       " {
		t.Errorf("after growing: %q", got)
	}
	if strings.Contains(s.String(), "gone") {
		t.Error("rows cut by the shrink should not come back")
	}
}

func TestScreenColorAndHighlight(t *testing.T) {
	s := NewScreen(6, 3)
	s.SetColor(1, 1, '●', ColorBlue)
	s.Highlight(NewRect(0, 1, 3, 1))

	cell := s.GetCell(1, 1)
	if cell.Rune != '●' || cell.Color != ColorBlue || !cell.Highlight {
		t.Errorf("GetCell(1, 1) = %+v, want a highlighted blue ball", cell)
	}
	if s.GetCell(4, 1).Highlight {
		t.Error("cell outside the highlight should stay plain")
	}

	s.Clear()
	if c := s.GetCell(1, 1); c != (Cell{Rune: ' '}) {
		t.Errorf("Clear left %+v", c)
	}
}
