package testutils

import (
	"sync"
	"sync/atomic"
	"testing"
)

// Assertion is a node in a test group: either the group head or a runnable
// case. Cases run in registration order; a case failing (returning false or
// panicking with an assertion failure) fails the surrounding testing.T.
type Assertion struct {
	head        *Assertion
	next        *Assertion
	id          string
	description string
	run         func() bool
	assert      bool
	numRuns     int
	parallel    bool
}

func NewGroup(id string, description string) *Assertion {
	group := &Assertion{
		id:          id,
		description: description,
	}
	group.head = group
	return group
}

func NewCase(id string, description string, run func() bool) *Assertion {
	c := &Assertion{
		id:          id,
		description: description,
		run:         run,
		assert:      true,
	}
	c.head = c
	return c
}

func (a *Assertion) Cases(cases ...*Assertion) *Assertion {
	current := a
	for _, c := range cases {
		if c == nil {
			continue
		}
		current.next = c
		c.head = a.head
		current = c
	}
	return current
}

// WithMultiple makes the case run numRuns times, optionally in parallel; the
// case fails when any run fails.
func (a *Assertion) WithMultiple(numRuns int, parallel bool) *Assertion {
	if numRuns < 1 {
		numRuns = 1
	}
	a.numRuns = numRuns
	a.parallel = parallel
	return a
}

func (a *Assertion) Do(t *testing.T) {
	current := a.head
	for current != nil {
		if current.assert && current.run != nil {
			runCase(t, current)
		} else if current.id != "" {
			t.Logf("group %s[%s]", current.id, current.description)
		}
		current = current.next
	}
}

func runCase(t *testing.T, node *Assertion) {
	if node.numRuns > 1 {
		var failures int32
		if node.parallel {
			var wg sync.WaitGroup
			for i := 0; i < node.numRuns; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					if !runOnce(t, node) {
						atomic.AddInt32(&failures, 1)
					}
				}()
			}
			wg.Wait()
		} else {
			for i := 0; i < node.numRuns; i++ {
				if !runOnce(t, node) {
					failures++
				}
			}
		}
		if failures > 0 {
			t.Errorf("case %s(%s) failed %d/%d runs", node.id, node.description, failures, node.numRuns)
		}
		return
	}
	if runOnce(t, node) {
		t.Logf("case %s passed", node.id)
	} else {
		t.Errorf("case %s(%s) failed", node.id, node.description)
	}
}

// runOnce reports whether the case passed, converting assertion panics into
// failures.
func runOnce(t *testing.T, node *Assertion) (passed bool) {
	defer func() {
		if recovered := recover(); recovered != nil {
			t.Logf("case %s panicked: %v", node.id, recovered)
			passed = false
		}
	}()
	return node.run()
}
