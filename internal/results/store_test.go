package results

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/robalobadob/crossword/internal/db"
	"github.com/robalobadob/crossword/internal/game"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	conn, err := db.Open(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewStore(conn)
}

func TestStore_InsertOncePerSession(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	rec := FromResult("s1", "animales", "ana", game.Result{Score: 900, Accuracy: 90, TimeSpentSeconds: 60, Completed: true, CluesTotal: 4, CluesCompleted: 4})
	if ok, err := st.Insert(ctx, rec); err != nil || !ok {
		t.Fatalf("insert: %v %v", ok, err)
	}
	rec.Score = 10
	if ok, err := st.Insert(ctx, rec); err != nil || ok {
		t.Fatalf("duplicate insert must be ignored, got %v %v", ok, err)
	}

	got, err := st.ByPlayer(ctx, "ana", 0)
	if err != nil {
		t.Fatalf("by player: %v", err)
	}
	if len(got) != 1 || got[0].Score != 900 || !got[0].Completed || got[0].CluesTotal != 4 {
		t.Fatalf("unexpected records: %+v", got)
	}
	if got[0].CreatedAt.IsZero() {
		t.Fatal("created_at not parsed")
	}
}

func TestStore_LeaderboardOrder(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	for _, r := range []Record{
		{SessionID: "a", PuzzleID: "p", PlayerID: "ana", Score: 800, TimeSpent: 50},
		{SessionID: "b", PuzzleID: "p", PlayerID: "luis", Score: 1000, TimeSpent: 90},
		{SessionID: "c", PuzzleID: "p", PlayerID: "eva", Score: 1000, TimeSpent: 30},
		{SessionID: "d", PuzzleID: "other", PlayerID: "eva", Score: 1000, TimeSpent: 10},
	} {
		if _, err := st.Insert(ctx, r); err != nil {
			t.Fatalf("insert %s: %v", r.SessionID, err)
		}
	}

	top, err := st.Leaderboard(ctx, "p", 2)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(top) != 2 || top[0].SessionID != "c" || top[1].SessionID != "b" {
		t.Fatalf("unexpected leaderboard: %+v", top)
	}
}

func TestStore_OneDailyResultPerPlayerAndDay(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	first := Record{SessionID: "a", PuzzleID: "p", PlayerID: "eva", Score: 700, DailyDate: "2026-03-01"}
	second := Record{SessionID: "b", PuzzleID: "p", PlayerID: "eva", Score: 1000, DailyDate: "2026-03-01"}
	nextDay := Record{SessionID: "c", PuzzleID: "q", PlayerID: "eva", Score: 500, DailyDate: "2026-03-02"}
	free := Record{SessionID: "d", PuzzleID: "p", PlayerID: "eva", Score: 900}
	freeAgain := Record{SessionID: "e", PuzzleID: "p", PlayerID: "eva", Score: 950}

	for _, tc := range []struct {
		rec  Record
		want bool
	}{{first, true}, {second, false}, {nextDay, true}, {free, true}, {freeAgain, true}} {
		ok, err := st.Insert(ctx, tc.rec)
		if err != nil {
			t.Fatalf("insert %s: %v", tc.rec.SessionID, err)
		}
		if ok != tc.want {
			t.Fatalf("insert %s stored=%v, want %v", tc.rec.SessionID, ok, tc.want)
		}
	}

	mine, err := st.ByPlayer(ctx, "eva", 0)
	if err != nil {
		t.Fatalf("by player: %v", err)
	}
	if len(mine) != 4 {
		t.Fatalf("expected 4 records, got %+v", mine)
	}
	if played, err := st.PlayedDaily(ctx, "eva", "2026-03-01"); err != nil || !played {
		t.Fatalf("expected a daily result: %v %v", played, err)
	}
	if played, _ := st.PlayedDaily(ctx, "eva", "2026-03-03"); played {
		t.Fatal("no daily result on 2026-03-03")
	}
	if played, _ := st.PlayedDaily(ctx, "ana", "2026-03-01"); played {
		t.Fatal("ana never played a daily")
	}
}
