package taskqueue

import "testing"

func TestConfig(t *testing.T) {
	failIfNoPanic := func(f func()) {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("validate did not panic")
			}
		}()

		f()
	}

	opts := Opts{MaxWorkers: 0, MaxQueueDepth: 10}
	failIfNoPanic(opts.validate)

	opts = Opts{MaxWorkers: 3, MaxQueueDepth: -1}
	failIfNoPanic(opts.validate)

	// valid options must not panic
	Opts{MaxWorkers: 1, MaxQueueDepth: 0}.validate()
}
