package game

import (
	"testing"
	"time"

	"github.com/robalobadob/crossword/internal/grid"
)

type chanNarrator chan string

func (c chanNarrator) Speak(text string) { c <- text }

func expectSpeech(t *testing.T, c chanNarrator, want string) {
	t.Helper()
	select {
	case got := <-c:
		if got != want {
			t.Fatalf("expected %q, got %q", want, got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no narration, expected %q", want)
	}
}

func expectSilence(t *testing.T, c chanNarrator) {
	t.Helper()
	select {
	case got := <-c:
		t.Fatalf("unexpected narration %q", got)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestNarration_OnePhrasePerTransition(t *testing.T) {
	speech := make(chanNarrator, 8)
	opts := immediate()
	opts.TimeLimit = 1
	opts.Narrator = speech
	h := newHarness(t, solSi(), opts)

	h.Start()
	expectSpeech(t, speech, phraseStart)
	expectSilence(t, speech)

	h.Tick()
	expectSpeech(t, speech, phraseTimeout)
	expectSilence(t, speech)
}

func TestNarration_SolvedPhrase(t *testing.T) {
	speech := make(chanNarrator, 8)
	opts := immediate()
	opts.Narrator = speech
	h := newHarness(t, solSi(), opts)
	h.Start()
	expectSpeech(t, speech, phraseStart)

	h.typeWord(t, "SOL")
	h.SelectClue("c2")
	h.typeWord(t, "SI")
	expectSpeech(t, speech, phraseSolved)
}

func TestNarration_ClueAndHint(t *testing.T) {
	speech := make(chanNarrator, 8)
	opts := immediate()
	opts.Narrator = speech
	h := newHarness(t, solSi(), opts)
	h.Start()
	expectSpeech(t, speech, phraseStart)

	h.SelectCell(1, 0)
	expectSpeech(t, speech, "1 vertical: Afirmación")

	if !h.ReadClue("c1") {
		t.Fatal("read clue refused")
	}
	expectSpeech(t, speech, "1 horizontal: Astro rey")

	h.UseHint()
	expectSpeech(t, speech, "Pista usada: la letra en posición 1 es S")
}

func TestNarration_English(t *testing.T) {
	speech := make(chanNarrator, 8)
	opts := immediate()
	opts.Language = "en"
	opts.Narrator = speech
	h := newHarness(t, solSi(), opts)
	h.Start()
	expectSpeech(t, speech, "Crossword started. Click a cell and use the clues to fill in the words.")

	h.SelectCell(1, 0)
	expectSpeech(t, speech, "1 down: Afirmación")
	h.UseHint()
	expectSpeech(t, speech, "Hint used: letter 1 is S")

	h.SelectClue("c1")
	h.typeWord(t, "SOL")
	h.SelectClue("c2")
	h.typeWord(t, "SI")
	expectSpeech(t, speech, "Crossword complete!")
	if got := h.Snapshot().Language; got != "en" {
		t.Fatalf("language = %q", got)
	}
}

func TestNarration_Disabled(t *testing.T) {
	speech := make(chanNarrator, 8)
	opts := immediate()
	opts.EnableAudio = false
	opts.Narrator = speech
	h := newHarness(t, solSi(), opts)

	h.Start()
	h.SelectCell(1, 0)
	h.UseHint()
	expectSilence(t, speech)
}

func TestNarration_FailureDoesNotAffectState(t *testing.T) {
	opts := immediate()
	opts.TimeLimit = 1
	opts.Narrator = NarratorFunc(func(string) { panic("speech engine down") })
	h := newHarness(t, solSi(), opts)

	if !h.Start() {
		t.Fatal("start refused")
	}
	h.Tick()
	if h.State() != StateEnded {
		t.Fatalf("expected ended, got %s", h.State())
	}
	if n, _ := h.rec.count(); n != 1 {
		t.Fatalf("expected one result, got %d", n)
	}
}

func TestNarration_KeepsOrder(t *testing.T) {
	clues := []grid.Clue{{ID: "y", Number: 1, Direction: grid.Down, Text: "Conjunción", Answer: "Y", Row: 0, Col: 0}}
	for i := 0; i < 50; i++ {
		speech := make(chanNarrator, 8)
		opts := immediate()
		// A slow first line would let later lines overtake it if they were not queued.
		first := true
		opts.Narrator = NarratorFunc(func(text string) {
			if first {
				first = false
				time.Sleep(5 * time.Millisecond)
			}
			speech <- text
		})
		h := newHarness(t, clues, opts)

		h.Start()
		if !h.UseHint() {
			t.Fatal("hint refused")
		}
		if h.State() != StateEnded {
			t.Fatalf("expected ended, got %s", h.State())
		}
		expectSpeech(t, speech, phraseStart)
		expectSpeech(t, speech, "Pista usada: la letra en posición 1 es Y")
		expectSpeech(t, speech, phraseSolved)
		expectSilence(t, speech)
	}
}

func TestNarration_WorkerSurvivesPanic(t *testing.T) {
	speech := make(chanNarrator, 8)
	opts := immediate()
	opts.Narrator = NarratorFunc(func(text string) {
		if text == phraseStart {
			panic("speech engine hiccup")
		}
		speech <- text
	})
	h := newHarness(t, solSi(), opts)
	h.Start()

	h.SelectCell(1, 0)
	expectSpeech(t, speech, "1 vertical: Afirmación")
}

func TestNarration_StopsAfterExit(t *testing.T) {
	speech := make(chanNarrator, 8)
	opts := immediate()
	opts.Narrator = speech
	h := newHarness(t, solSi(), opts)
	h.Start()
	expectSpeech(t, speech, phraseStart)

	h.Exit()
	if h.ReadClue("c1") {
		t.Fatal("read clue accepted after exit")
	}
	h.speakLocked("late line")
	expectSilence(t, speech)
}

func (h *harness) speakLocked(text string) {
	h.do(func() { h.speak(text) })
}
