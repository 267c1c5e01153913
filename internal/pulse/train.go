// internal/pulse/train.go
package pulse

import (
	"time"

	"github.com/tamzrod/toyotomi-remote/internal/protocol"
)

// Timing constants.
// These values define the waveform and MUST NOT be configurable.

// CarrierFrequency is the IR carrier in Hz.
const CarrierFrequency = 38_000

const (
	// CarrierPeriod is one carrier cycle: a high half followed by a low half.
	CarrierPeriod = 26 * time.Microsecond
	halfPeriod    = CarrierPeriod / 2

	// Unit is the protocol time unit, 21 carrier cycles (546 us).
	Unit = 21 * CarrierPeriod

	headerMark   = 8 * Unit
	headerSpace  = 8 * Unit
	bitMark      = Unit
	zeroSpace    = Unit
	oneSpace     = 3 * Unit
	trailerMark  = Unit
	trailerSpace = 10 * Unit
)

// Train is a pulse train: alternating mark and space durations, starting
// with a mark. A well formed train has an even length.
type Train []time.Duration

// Duration is the time it takes to emit t.
func (t Train) Duration() time.Duration {
	var total time.Duration
	for _, d := range t {
		total += d
	}
	return total
}

// Marks returns the number of marks in t.
func (t Train) Marks() int { return (len(t) + 1) / 2 }

// BuildTrain returns the train for one frame, or two back-to-back frames
// when repeat is set. Each frame is header, payload and trailer; the
// trailer space doubles as the gap between repeated frames.
func BuildTrain(bits []protocol.Bit, repeat bool) Train {
	frames := 1
	if repeat {
		frames = 2
	}
	t := make(Train, 0, frames*(2*len(bits)+4))
	for i := 0; i < frames; i++ {
		t = append(t, headerMark, headerSpace)
		t = appendPayload(t, bits)
	}
	return t
}

// BuildTrainNoHeader returns payload and trailer only, for a frame that
// must follow a previous transmission without the header pause.
func BuildTrainNoHeader(bits []protocol.Bit) Train {
	return appendPayload(make(Train, 0, 2*len(bits)+2), bits)
}

func appendPayload(t Train, bits []protocol.Bit) Train {
	for _, b := range bits {
		if b == protocol.Zero {
			t = append(t, bitMark, zeroSpace)
		} else {
			t = append(t, bitMark, oneSpace)
		}
	}
	return append(t, trailerMark, trailerSpace)
}
