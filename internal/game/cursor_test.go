package game

import (
	"testing"

	"github.com/robalobadob/crossword/internal/grid"
)

func TestNavigation_ArrowMoves(t *testing.T) {
	h := newHarness(t, solSi(), immediate())
	h.Start()

	if h.MoveArrow(ArrowUp) {
		t.Fatal("moving past the top edge must be rejected")
	}
	if !h.MoveArrow(ArrowDown) {
		t.Fatal("move down refused")
	}
	if p, _ := h.Cursor(); p != (grid.Pos{Row: 1, Col: 0}) || h.ActiveClue() != "c2" {
		t.Fatalf("expected (1,0) on c2, got %v %q", p, h.ActiveClue())
	}
	if h.MoveArrow(ArrowRight) {
		t.Fatal("moving onto a black cell must be rejected")
	}
	if p, _ := h.Cursor(); p != (grid.Pos{Row: 1, Col: 0}) {
		t.Fatalf("cursor moved onto black: %v", p)
	}
}

func TestNavigation_SelectCellUsesBuildOrder(t *testing.T) {
	clues := solSi()
	clues[0], clues[1] = clues[1], clues[0] // down word first
	h := newHarness(t, clues, immediate())
	h.Start()

	h.SelectCell(0, 0)
	if h.ActiveClue() != "c2" {
		t.Fatalf("expected first clue of the cell (c2), got %q", h.ActiveClue())
	}
	if h.SelectCell(1, 1) || h.SelectCell(20, 0) {
		t.Fatal("black or out of range cells must be ignored")
	}
	if h.SelectClue("nope") {
		t.Fatal("unknown clue must be ignored")
	}

	if !h.SelectClue("c1") || h.ActiveClue() != "c1" {
		t.Fatal("selecting a clue must make it active")
	}
	h.MoveArrow(ArrowRight)
	h.MoveArrow(ArrowLeft)
	if h.ActiveClue() != "c1" {
		t.Fatalf("arrow moves must keep an active clue crossing the cell, got %q", h.ActiveClue())
	}
	h.typeWord(t, "SO")
	if p, _ := h.Cursor(); p != (grid.Pos{Row: 0, Col: 2}) {
		t.Fatalf("typing must advance across, got %v", p)
	}
}

func TestNavigation_AdvanceStaysInsideWord(t *testing.T) {
	clues := []grid.Clue{
		{ID: "a", Number: 1, Direction: grid.Across, Answer: "PAN", Row: 0, Col: 0},
		{ID: "b", Number: 2, Direction: grid.Across, Answer: "RIO", Row: 0, Col: 3},
	}
	h := newHarness(t, clues, immediate())
	h.Start()

	h.typeWord(t, "PAN")
	if p, _ := h.Cursor(); p != (grid.Pos{Row: 0, Col: 2}) {
		t.Fatalf("cursor spilled into the next word: %v", p)
	}
	if h.ActiveClue() != "a" {
		t.Fatalf("active clue changed: %q", h.ActiveClue())
	}
}

func TestNavigation_SingleLetterWord(t *testing.T) {
	clues := []grid.Clue{{ID: "y", Number: 1, Direction: grid.Down, Answer: "Y", Row: 2, Col: 2}}
	h := newHarness(t, clues, DefaultOptions())
	h.Start()

	h.TypeLetter('y')
	if p, _ := h.Cursor(); p != (grid.Pos{Row: 2, Col: 2}) {
		t.Fatalf("advance must be a no-op on a one-letter word, got %v", p)
	}
	h.Backspace()
	if p, _ := h.Cursor(); p != (grid.Pos{Row: 2, Col: 2}) {
		t.Fatalf("retreat must be a no-op on a one-letter word, got %v", p)
	}
}

func TestInput_BackspaceRetreats(t *testing.T) {
	h := newHarness(t, solSi(), immediate())
	h.Start()
	h.typeWord(t, "SO")

	h.Backspace()
	if p, _ := h.Cursor(); p != (grid.Pos{Row: 0, Col: 1}) {
		t.Fatalf("expected cursor on (0,1), got %v", p)
	}
	if cell, _ := h.Cell(0, 2); cell.Entry != 0 {
		t.Fatalf("expected (0,2) cleared, got %q", cell.Entry)
	}
	if cell, _ := h.Cell(0, 1); cell.Entry != 'O' {
		t.Fatalf("expected (0,1) untouched, got %q", cell.Entry)
	}
}

func TestInput_LettersOnly(t *testing.T) {
	h := newHarness(t, []grid.Clue{{ID: "n", Number: 1, Direction: grid.Across, Answer: "ÑANDÚ", Row: 0, Col: 0}}, immediate())
	h.Start()

	for _, r := range []rune{'1', ' ', '-', 'λ'} {
		if h.TypeLetter(r) {
			t.Fatalf("%q must be refused", r)
		}
	}
	h.typeWord(t, "ñandú")
	if h.State() != StateEnded {
		t.Fatalf("expected accented answer to complete, got %s", h.State())
	}
}

func TestInput_HandleKey(t *testing.T) {
	h := newHarness(t, solSi(), immediate())
	h.Start()

	for _, k := range []string{"s", "o", "Backspace", "ArrowLeft", "ArrowDown"} {
		if !h.HandleKey(k) {
			t.Fatalf("key %q refused", k)
		}
	}
	if h.HandleKey("Enter") || h.HandleKey("") {
		t.Fatal("unknown keys must be ignored")
	}
	if p, _ := h.Cursor(); p != (grid.Pos{Row: 1, Col: 0}) {
		t.Fatalf("unexpected cursor %v", p)
	}
	if cell, _ := h.Cell(0, 0); cell.Entry != 'S' {
		t.Fatalf("unexpected entry %q", cell.Entry)
	}
}
