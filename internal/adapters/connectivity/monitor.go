package connectivity

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/renato0307/spotter/internal/logging"
	"github.com/renato0307/spotter/internal/metrics"
	"github.com/renato0307/spotter/internal/ports"
)

// Pinger is anything that can check whether the remote store answers
type Pinger interface {
	Ping(ctx context.Context) error
}

// Monitor pings the remote store periodically and exposes the online signal.
// The live coaching flow never branches on it; it only feeds the banner.
type Monitor struct {
	interval time.Duration
	online   atomic.Bool
	pinger   Pinger
	stopCh   chan struct{}
	stopOnce sync.Once
	timeout  time.Duration
}

// Verify interface compliance at compile time
var _ ports.Connectivity = (*Monitor)(nil)

// NewMonitor creates a monitor. It reports online until the first failed ping.
func NewMonitor(pinger Pinger, interval time.Duration) *Monitor {
	m := &Monitor{
		interval: interval,
		pinger:   pinger,
		stopCh:   make(chan struct{}),
		timeout:  5 * time.Second,
	}
	m.online.Store(true)
	metrics.RemoteOnline.Set(1)
	return m
}

// Online implements ports.Connectivity.Online
func (m *Monitor) Online() bool {
	return m.online.Load()
}

// Start begins monitoring in the background.
// A non-positive interval disables periodic checks after the first one.
func (m *Monitor) Start() {
	go m.monitorLoop()
}

// Stop halts the monitoring
func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}

func (m *Monitor) monitorLoop() {
	m.Check()
	if m.interval <= 0 {
		logging.Logger.Debug("Periodic connectivity checks disabled", "interval", m.interval)
		return
	}

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stopCh:
			return
		case <-ticker.C:
			m.Check()
		}
	}
}

// Check pings once and updates the online signal
func (m *Monitor) Check() bool {
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	err := m.pinger.Ping(ctx)
	online := err == nil
	was := m.online.Swap(online)

	if online {
		metrics.RemoteOnline.Set(1)
	} else {
		metrics.RemoteOnline.Set(0)
	}

	if was != online {
		if online {
			logging.Logger.Info("Remote session store reachable again")
		} else {
			logging.Logger.Warn("Remote session store unreachable", "error", err)
		}
	}
	return online
}
