package ir

import "strings"

// State is the set of conditions an encoder reports after a call.
type State uint8

const (
	// StateComplete means all content has been emitted.
	StateComplete State = 1 << iota
	// StateBufferFull means the destination ran out of room before the
	// content was exhausted. The caller must call again to continue.
	StateBufferFull
)

func (s State) Complete() bool   { return s&StateComplete != 0 }
func (s State) BufferFull() bool { return s&StateBufferFull != 0 }

func (s State) String() string {
	if s == 0 {
		return "none"
	}
	var parts []string
	if s.Complete() {
		parts = append(parts, "complete")
	}
	if s.BufferFull() {
		parts = append(parts, "buffer-full")
	}
	return strings.Join(parts, "|")
}
