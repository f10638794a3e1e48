package batch

import (
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	failIfNoPanic := func(f func()) {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("validate did not panic")
			}
		}()

		f()
	}

	opts := Opts{MaxSize: 1, MaxLinger: 10 * time.Millisecond}
	failIfNoPanic(opts.validate)

	opts = Opts{MaxSize: 3}
	failIfNoPanic(opts.validate)

	Opts{MaxSize: 2, MaxLinger: time.Millisecond}.validate()
}
