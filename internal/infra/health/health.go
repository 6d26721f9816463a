// Package health runs dependency probes for the HTTP and gRPC health endpoints.
package health

import (
	"context"
	"sync"
	"time"
)

const defaultTimeout = 2 * time.Second

type Probe struct {
	Name  string
	Check func(ctx context.Context) error
}

type Checker struct {
	probes  []Probe
	timeout time.Duration
}

func NewChecker(timeout time.Duration, probes ...Probe) *Checker {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Checker{probes: probes, timeout: timeout}
}

// Run executes all probes concurrently and returns the failures by name.
func (c *Checker) Run(ctx context.Context) map[string]error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		failures = map[string]error{}
	)
	for _, p := range c.probes {
		wg.Add(1)
		go func(p Probe) {
			defer wg.Done()
			if err := p.Check(ctx); err != nil {
				mu.Lock()
				failures[p.Name] = err
				mu.Unlock()
			}
		}(p)
	}
	wg.Wait()
	return failures
}

func (c *Checker) Healthy(ctx context.Context) bool {
	return len(c.Run(ctx)) == 0
}
