package game

import (
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/crossword/internal/grid"
	"github.com/robalobadob/crossword/internal/locale"
)

const (
	phraseStart   = "Crucigrama iniciado. Haz clic en una celda y usa las pistas para completar las palabras."
	phraseSolved  = "¡Crucigrama completado!"
	phraseTimeout = "Tiempo agotado"
)

func clueLine(tr locale.Translator, c grid.Clue) string {
	return tr.Get("%d %s: %s", c.Number, tr.Get(c.Direction.Label()), c.Text)
}

func hintLine(tr locale.Translator, index int, letter rune) string {
	return tr.Get("Pista usada: la letra en posición %d es %c", index+1, letter)
}

// narrationBuffer bounds the lines waiting for the narrator; extra lines are dropped.
const narrationBuffer = 16

// speak queues text for the session's narration worker without waiting for
// it. Lines reach the narrator in the order they were spoken. A failing
// narrator never reaches the caller.
func (s *Session) speak(text string) {
	if !s.opts.EnableAudio || s.opts.Narrator == nil || s.voiceClosed {
		return
	}
	if s.voice == nil {
		s.voice = make(chan string, narrationBuffer)
		go narrate(s.ID, s.opts.Narrator, s.voice)
	}
	select {
	case s.voice <- text:
	default:
		log.Debug().Str("session", s.ID).Str("text", text).Msg("narration dropped")
	}
}

// closeVoice lets the worker finish the queued lines and stop.
func (s *Session) closeVoice() {
	if s.voiceClosed {
		return
	}
	s.voiceClosed = true
	if s.voice != nil {
		close(s.voice)
	}
}

func narrate(id string, n Narrator, lines <-chan string) {
	for text := range lines {
		say(id, n, text)
	}
}

func say(id string, n Narrator, text string) {
	defer func() {
		if r := recover(); r != nil {
			log.Debug().Str("session", id).Interface("panic", r).Msg("narrator failed")
		}
	}()
	n.Speak(text)
}

// ReadClue narrates a clue ("3 horizontal: ..."). It does not change the selection.
func (s *Session) ReadClue(id string) bool {
	var ok bool
	s.do(func() {
		if !s.live || s.state() == StateEnded {
			return
		}
		c, found := s.grid.Clue(id)
		if !found {
			return
		}
		s.speak(clueLine(s.tr, c))
		ok = true
	})
	return ok
}
