package ltime

import "time"

// Watch tells the current time. Components that expire state based on
// elapsed time take a Watch so tests can drive the clock directly.
type Watch interface {
	Now() time.Time
}

type WallWatch struct{}

func (WallWatch) Now() time.Time {
	return time.Now()
}

func NewWallWatch() WallWatch { return WallWatch{} }

type TestingWatch struct {
	Current time.Time
}

func (f *TestingWatch) Now() time.Time {
	return f.Current
}

func (f *TestingWatch) Advance(d time.Duration) {
	f.Current = f.Current.Add(d)
}

var _ Watch = &TestingWatch{}
