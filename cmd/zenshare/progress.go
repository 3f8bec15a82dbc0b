package main

import (
	"io"
	"time"

	"github.com/briandowns/spinner"

	"github.com/zenmark/zenshare"
)

var stateMessages = map[zenshare.State]string{
	zenshare.StateEncrypting: "Encrypting note...",
	zenshare.StateUploading:  "Uploading...",
}

// progress shows a spinner while a share link is created. It is a no-op
// when disabled so verbose log lines are not interleaved with it.
type progress struct {
	s       *spinner.Spinner
	enabled bool
}

func newProgress(w io.Writer, enabled bool) *progress {
	p := &progress{enabled: enabled}
	if !enabled {
		return p
	}
	p.s = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	// Ignore color errors, the spinner works without.
	_ = p.s.Color("cyan")
	return p
}

// Hook returns the state hook driving the spinner.
func (p *progress) Hook() zenshare.StateHook {
	return func(state zenshare.State) {
		if !p.enabled {
			return
		}
		if msg, ok := stateMessages[state]; ok {
			p.s.Lock()
			p.s.Suffix = " " + msg
			p.s.Unlock()
			if !p.s.Active() {
				p.s.Start()
			}
			return
		}
		if state.Terminal() {
			p.s.Stop()
		}
	}
}

// Stop halts the spinner if it is still running.
func (p *progress) Stop() {
	if p.enabled && p.s.Active() {
		p.s.Stop()
	}
}
