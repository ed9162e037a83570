// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package memory keeps the append-only transcript of one generation step.
// A Buffer belongs to a single step for a single pipeline run and is not
// safe for concurrent use.
package memory

import "strings"

// Turn is one entry in a transcript. Seq is the zero-based append position.
type Turn struct {
	Seq  int    `json:"seq" yaml:"seq"`
	Key  string `json:"key" yaml:"key"`
	Text string `json:"text" yaml:"text"`
}

// String renders the turn as "key: text".
func (t Turn) String() string {
	return t.Key + ": " + t.Text
}

// Buffer is an ordered log of turns. Turns are never removed or reordered.
type Buffer struct {
	topic string
	turns []Turn
}

// New returns an empty buffer labelled with topic. The label is informational
// and does not appear in Render output.
func New(topic string) *Buffer {
	return &Buffer{topic: topic}
}

// Topic returns the label the buffer was created with.
func (b *Buffer) Topic() string { return b.topic }

// Append adds one turn at the end of the log.
func (b *Buffer) Append(key, text string) {
	b.turns = append(b.turns, Turn{Seq: len(b.turns), Key: key, Text: text})
}

// Len returns the number of turns.
func (b *Buffer) Len() int { return len(b.turns) }

// Turns returns a copy of the log.
func (b *Buffer) Turns() []Turn {
	return append([]Turn(nil), b.turns...)
}

// Render joins every turn as "key: text" lines in append order, without a
// trailing newline. An empty buffer renders as "".
func (b *Buffer) Render() string {
	lines := make([]string, len(b.turns))
	for i, t := range b.turns {
		lines[i] = t.String()
	}
	return strings.Join(lines, "\n")
}
