package monitor

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Prober checks whether the remote task API answers.
type Prober interface {
	Ping(ctx context.Context) (int, error)
}

// JournalSizer reports the activity journal size.
type JournalSizer interface {
	Size() (int, error)
}

type Monitor struct {
	api     Prober
	journal JournalSizer

	status   Status
	mu       sync.RWMutex
	interval time.Duration
	timeout  time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	logger   *zap.Logger
}

func New(api Prober, journal JournalSizer, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		api:      api,
		journal:  journal,
		interval: interval,
		timeout:  5 * time.Second,
		stopCh:   make(chan struct{}),
		logger:   logger,
	}
}

func (m *Monitor) Start() {
	go m.loop()
}

func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}

// IsOnline reports whether the last probe reached the task API.
func (m *Monitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.TaskAPI
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Refresh runs one probe round synchronously.
func (m *Monitor) Refresh() {
	apiOK, apiStatus := m.checkAPI()
	journalOK, journalSize := m.checkJournal()
	status := Status{
		TaskAPI:       apiOK,
		TaskAPIStatus: apiStatus,
		Journal:       journalOK,
		JournalSize:   journalSize,
		LastCheck:     time.Now(),
	}

	m.mu.Lock()
	prev := m.status
	m.status = status
	m.mu.Unlock()

	if !prev.LastCheck.IsZero() && prev.TaskAPI != status.TaskAPI {
		m.logger.Info("task api reachability changed",
			zap.Bool("online", status.TaskAPI),
			zap.Int("status", status.TaskAPIStatus))
	}
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Refresh()
	for {
		select {
		case <-ticker.C:
			m.Refresh()
		case <-m.stopCh:
			return
		}
	}
}

func (m *Monitor) checkAPI() (bool, int) {
	if m.api == nil {
		return false, 0
	}
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()
	status, err := m.api.Ping(ctx)
	if err != nil {
		m.logger.Debug("task api probe failed", zap.Error(err))
		return false, status
	}
	return true, status
}

func (m *Monitor) checkJournal() (bool, int) {
	if m.journal == nil {
		return false, 0
	}
	size, err := m.journal.Size()
	if err != nil {
		m.logger.Warn("journal size check failed", zap.Error(err))
		return false, size
	}
	return true, size
}
