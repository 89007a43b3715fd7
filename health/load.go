// Package health tracks the resources the server process consumes, so
// load can be reported to an operator over the log channel.
package health

import (
	"fmt"
	"math"
	"os"
	"sync/atomic"
	"time"

	sigar "github.com/cloudfoundry/gosigar"
)

// Load samples the CPU% and resident memory of this process once per
// second.
type Load struct {
	currentCPULoad    uint32
	currentMemoryLoad uint32
	started           time.Time
	done              chan struct{}
	pid               int
	pm                *sigar.ProcMem
	pc                *sigar.ProcCpu
}

// StartLoadMonitoring begins the load monitoring.  The monitor is
// stopped by invoking load.Close().
func StartLoadMonitoring() *Load {
	l := &Load{
		started: time.Now(),
		done:    make(chan struct{}),
		pid:     os.Getpid(),
		pm:      &sigar.ProcMem{},
		pc:      &sigar.ProcCpu{},
	}

	go func() {
		t := time.NewTicker(1 * time.Second)
		defer t.Stop()

		for {
			select {
			case <-l.done:
				return
			case <-t.C:
				l.update()
			}
		}
	}()

	return l
}

// Close ends the load monitoring.
func (l *Load) Close() error {
	close(l.done)
	return nil
}

// CPU reports the instantaneous CPU load.
func (l *Load) CPU() float32 {
	return math.Float32frombits(atomic.LoadUint32(&l.currentCPULoad))
}

// Memory reports the instantaneous resident memory in megabytes.
func (l *Load) Memory() uint32 {
	return atomic.LoadUint32(&l.currentMemoryLoad)
}

// Uptime reports how long monitoring has been running.
func (l *Load) Uptime() time.Duration {
	return time.Since(l.started)
}

// String summarizes the current load for a log line.
func (l *Load) String() string {
	return fmt.Sprintf("cpu %.1f%%, rss %dMB, up %s", l.CPU(), l.Memory(), l.Uptime().Round(time.Second))
}

func (l *Load) update() {
	l.pc.Get(l.pid)
	l.pm.Get(l.pid)

	cpu := math.Float32bits(float32(l.pc.Percent))

	// Shift 20 to the right to divide by 1024*1024.
	res := uint32((l.pm.Resident >> 20) & math.MaxUint32)

	atomic.StoreUint32(&l.currentCPULoad, cpu)
	atomic.StoreUint32(&l.currentMemoryLoad, res)
}
