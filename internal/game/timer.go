package game

import (
	"context"
	"fmt"
	"time"
)

type ticker interface {
	Chan() <-chan time.Time
	Stop()
}

type stopper interface {
	Stop() bool
}

type realTicker struct{ t *time.Ticker }

func newRealTicker(d time.Duration) ticker { return realTicker{time.NewTicker(d)} }

func (r realTicker) Chan() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()                  { r.t.Stop() }

func realAfterFunc(d time.Duration, f func()) stopper { return time.AfterFunc(d, f) }

// startClock launches the one-second ticker. It is owned by the session and
// cancelled by stopTimers.
func (s *Session) startClock() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancelClock = cancel
	t := s.newTicker(time.Second)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.Chan():
				s.Tick()
			}
		}
	}()
}

// Tick advances the clock by one second and ends the session when the time
// limit is reached. It is a no-op outside the playing state.
func (s *Session) Tick() {
	s.do(func() {
		if !s.playing() {
			return
		}
		s.elapsed++
		if s.elapsed >= s.opts.TimeLimit {
			s.fire(evTimeout)
		}
	})
}

// Remaining returns the seconds left on the clock.
func (s *Session) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return max(0, s.opts.TimeLimit-s.elapsed)
}

// FormatClock renders seconds as m:ss.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
