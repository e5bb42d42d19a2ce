package game

import (
	"github.com/robalobadob/crossword/internal/grid"
)

// CellView is the client view of one cell. Solutions are only filled in once
// the session has ended.
type CellView struct {
	Black    bool     `json:"black"`
	Number   int      `json:"number,omitempty"`
	Entry    string   `json:"entry,omitempty"`
	Solution string   `json:"solution,omitempty"`
	Clues    []string `json:"clues,omitempty"`
	Solved   bool     `json:"solved,omitempty"` // first clue of the cell is complete
}

// ClueView is the client view of a clue; the answer is replaced by its length.
type ClueView struct {
	ID        string         `json:"id"`
	Number    int            `json:"number"`
	Direction grid.Direction `json:"direction"`
	Text      string         `json:"clue"`
	Row       int            `json:"startRow"`
	Col       int            `json:"startCol"`
	Length    int            `json:"length"`
	AudioURL  string         `json:"audioUrl,omitempty"`
	Complete  bool           `json:"complete"`
}

// Progress counts solved clues.
type Progress struct {
	Done  int `json:"done"`
	Total int `json:"total"`
}

// Snapshot is a consistent, read-only copy of the session state.
type Snapshot struct {
	ID           string       `json:"id"`
	PuzzleID     string       `json:"puzzleId,omitempty"`
	State        State        `json:"state"`
	Live         bool         `json:"live"`
	Size         int          `json:"size"`
	Revision     uint64       `json:"revision"`
	Cells        [][]CellView `json:"cells"`
	Clues        []ClueView   `json:"clues"`
	Cursor       *grid.Pos    `json:"cursor,omitempty"`
	ActiveClue   string       `json:"activeClue,omitempty"`
	Elapsed      int          `json:"elapsed"`
	Remaining    int          `json:"remaining"`
	Clock        string       `json:"clock"`
	Language     string       `json:"language"`
	HintsEnabled bool         `json:"hintsEnabled"`
	HintsUsed    int          `json:"hintsUsed"`
	HintsLeft    int          `json:"hintsLeft"`
	Completed    []string     `json:"completed"`
	Progress     Progress     `json:"progress"`
	Result       *Result      `json:"result,omitempty"`
}

// Snapshot copies the session state for rendering.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state()
	reveal := st == StateEnded
	remaining := max(0, s.opts.TimeLimit-s.elapsed)

	snap := Snapshot{
		ID:           s.ID,
		PuzzleID:     s.PuzzleID,
		State:        st,
		Live:         s.live,
		Size:         s.grid.Size,
		Revision:     s.grid.Revision,
		ActiveClue:   s.active,
		Elapsed:      s.elapsed,
		Remaining:    remaining,
		Clock:        FormatClock(remaining),
		Language:     s.tr.Lang(),
		HintsEnabled: s.opts.EnableHints,
		HintsUsed:    s.hintsUsed,
		HintsLeft:    s.hintsLeft(),
		Completed:    s.completedIDs(),
	}
	if s.cursor != nil {
		c := *s.cursor
		snap.Cursor = &c
	}
	if s.result != nil {
		r := *s.result
		snap.Result = &r
	}

	snap.Cells = make([][]CellView, s.grid.Size)
	for r, row := range s.grid.Cells {
		snap.Cells[r] = make([]CellView, len(row))
		for c, cell := range row {
			v := CellView{Black: cell.Black, Number: cell.Number}
			if !cell.Black {
				v.Clues = append([]string(nil), cell.Clues...)
				v.Solved = len(cell.Clues) > 0 && s.completed.Has(cell.Clues[0])
				if cell.Entry != 0 {
					v.Entry = string(cell.Entry)
				}
				if reveal {
					v.Solution = string(cell.Solution)
				}
			}
			snap.Cells[r][c] = v
		}
	}

	for _, c := range s.grid.Clues() {
		snap.Clues = append(snap.Clues, ClueView{
			ID:        c.ID,
			Number:    c.Number,
			Direction: c.Direction,
			Text:      c.Text,
			Row:       c.Row,
			Col:       c.Col,
			Length:    len([]rune(c.Answer)),
			AudioURL:  c.AudioURL,
			Complete:  s.completed.Has(c.ID),
		})
	}
	snap.Progress = Progress{Done: len(snap.Completed), Total: len(snap.Clues)}
	return snap
}

// Progress reports how many placed clues are solved.
func (s *Session) Progress() Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Progress{Done: s.completed.Size(), Total: len(s.grid.Clues())}
}
