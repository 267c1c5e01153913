// internal/pulse/dump.go
package pulse

import (
	"bufio"
	"fmt"
	"io"
	"sync"
	"time"
)

const dumpResolution = 10 * time.Microsecond

// WriteDump writes t as an IRsignal array of ON/OFF pairs in tens of
// microseconds, the format generic IR blaster sketches replay. The final
// space is written as 0.
//
// Values are the durations the drivers actually emit, truncated: one Unit
// is 546 us and prints as 54, a header half as 436. Hand-written sketches
// for this remote often round the unit to 530 us (53, 424, 159); those
// figures are not reproduced here.
func WriteDump(w io.Writer, t Train) error {
	bw := bufio.NewWriter(w)

	fmt.Fprint(bw, "int IRsignal[] = {\n")
	fmt.Fprint(bw, "// ON, OFF (in 10's of microseconds)\n")

	for i := 0; i < len(t); i += 2 {
		on := int64(t[i] / dumpResolution)
		var off int64
		if i+1 < len(t) {
			off = int64(t[i+1] / dumpResolution)
		}

		if i+2 >= len(t) {
			fmt.Fprintf(bw, "\t%d, 0};\n", on)
			break
		}
		fmt.Fprintf(bw, "\t%d, %d,\n", on, off)
	}
	if len(t) == 0 {
		fmt.Fprint(bw, "\t0, 0};\n")
	}

	return bw.Flush()
}

// DumpDriver writes every train it is asked to drive as an IRsignal array
// instead of emitting it. It lets the whole stack run without hardware.
type DumpDriver struct {
	mu sync.Mutex
	w  io.Writer
}

// NewDumpDriver returns a DumpDriver writing to w.
func NewDumpDriver(w io.Writer) *DumpDriver {
	return &DumpDriver{w: w}
}

func (d *DumpDriver) Drive(t Train) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return WriteDump(d.w, t)
}
