// Copyright (c) 2024-2026 Canon Registry Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package background - goroutine supervision
//
// start a set of background processes and stop them together
package background

// the shutdown and completed channels for one background process
type shutdown struct {
	shutdown chan struct{}
	finished chan struct{}
}

// T - handle for the set of started processes
type T struct {
	s []shutdown
}

// Process - interface for a single background process
type Process interface {
	Run(args interface{}, shutdown <-chan struct{})
}

// Processes - list of processes to start
type Processes []Process

// Start - run a set of background processes
func Start(processes Processes, args interface{}) *T {

	register := new(T)
	register.s = make([]shutdown, len(processes))

	for i, p := range processes {
		stop := make(chan struct{})
		done := make(chan struct{})
		register.s[i].shutdown = stop
		register.s[i].finished = done
		go func(p Process) {
			// pass the shutdown to the Run loop for selecting
			p.Run(args, stop)
			close(done)
		}(p)
	}
	return register
}

// Stop - stop all background processes and wait for them to finish
func (t *T) Stop() {

	if nil == t {
		return
	}

	for _, item := range t.s {
		close(item.shutdown)
	}

	for _, item := range t.s {
		<-item.finished
	}
}
