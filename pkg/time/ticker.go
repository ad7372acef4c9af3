package ltime

import "time"

type Ticker interface {
	Channel() <-chan time.Time
	Close()
}

type WallTicker struct {
	ticker *time.Ticker
}

func (w *WallTicker) Channel() <-chan time.Time {
	return w.ticker.C
}

func (w *WallTicker) Close() {
	w.ticker.Stop()
}

func NewWallTicker(duration time.Duration) *WallTicker {
	return &WallTicker{time.NewTicker(duration)}
}

var _ Ticker = &WallTicker{}

// TestingTicker fires only when the test calls Tick.
type TestingTicker struct {
	c chan time.Time
}

func NewTestingTicker() *TestingTicker {
	return &TestingTicker{
		c: make(chan time.Time, 1),
	}
}

func (t *TestingTicker) Tick() {
	t.c <- time.Now()
}

func (t *TestingTicker) Channel() <-chan time.Time {
	return t.c
}

func (t *TestingTicker) Close() {}

var _ Ticker = &TestingTicker{}
