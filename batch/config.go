package batch

import "time"

type Opts struct {
	// MaxSize is the number of tasks that causes a batch to run immediately.
	MaxSize int
	// MaxLinger is how long the first task of a batch waits for the batch to fill before it runs anyway.
	MaxLinger time.Duration
}

func (o Opts) validate() {
	if o.MaxSize <= 1 {
		panic("maximum batch size must be greater than 1")
	}

	if o.MaxLinger <= 0 {
		panic("batch linger must be greater than 0")
	}
}
