package tracker

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/focuslog/focuslog/internal/config"
	"github.com/focuslog/focuslog/internal/models"
	"github.com/focuslog/focuslog/internal/session"
	"github.com/focuslog/focuslog/pkg/idle"
	"github.com/focuslog/focuslog/pkg/window"
)

// Sink receives closed usage records. Append failures are logged and
// tracking continues; a record may be lost but the loop never halts.
type Sink interface {
	Append(*models.UsageRecord) error
}

// ErrorSink records recoverable tracking errors. Optional.
type ErrorSink interface {
	CreateErrorLog(*models.ErrorLog) error
}

// Service runs the polling loop. It owns the open-session value; only
// the loop goroutine touches it, so the session machine needs no locks.
// The idle flag is the one concurrently-written input and is read
// atomically once per tick.
type Service struct {
	config    *config.Config
	sinks     []Sink
	errorSink ErrorSink
	detector  window.Detector
	idleFlag  *idle.Flag

	open      *session.Open
	stopChan  chan struct{}
	stopOnce  sync.Once
	flushOnce sync.Once
	running   bool
}

func NewService(cfg *config.Config, detector window.Detector, idleFlag *idle.Flag, sinks ...Sink) *Service {
	return &Service{
		config:   cfg,
		sinks:    sinks,
		detector: detector,
		idleFlag: idleFlag,
		stopChan: make(chan struct{}),
	}
}

// SetErrorSink directs recoverable tracking errors to a durable log.
func (s *Service) SetErrorSink(sink ErrorSink) {
	s.errorSink = sink
}

// Start runs the poll loop until the context is cancelled or Stop is
// called. The final open session is flushed exactly once on the way out,
// whichever path triggers the stop.
func (s *Service) Start(ctx context.Context) error {
	if s.running {
		return fmt.Errorf("tracker is already running")
	}

	s.running = true
	log.Printf("Starting tracker with %v poll interval", s.config.Tracker.PollInterval)

	ticker := time.NewTicker(s.config.Tracker.PollInterval)
	defer ticker.Stop()
	defer s.flushFinal()

	s.tick(time.Now())

	for {
		select {
		case <-ctx.Done():
			log.Println("Tracker stopped by context")
			s.running = false
			return ctx.Err()

		case <-s.stopChan:
			log.Println("Tracker stopped")
			s.running = false
			return nil

		case now := <-ticker.C:
			s.tick(now)
		}
	}
}

// Stop signals the loop to exit. Safe to call more than once and from
// any goroutine.
func (s *Service) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
}

func (s *Service) IsRunning() bool {
	return s.running
}

// tick evaluates one polling cycle: sample the window, read the idle
// flag, advance the session machine, emit any closed record.
func (s *Service) tick(now time.Time) {
	snap := s.poll(now)
	isIdle := s.idleFlag.IsIdle()

	open, record := session.Advance(s.open, snap, isIdle, now)
	s.open = open

	if record != nil {
		log.Printf("Closed session: %s (%s, %ds)", record.Application, record.Title, record.Duration)
		s.emit(record)
	}
}

// poll samples the focused window. A failed query is an unresolvable
// snapshot for this tick, not a fatal error.
func (s *Service) poll(now time.Time) *window.Snapshot {
	snap, err := s.detector.GetFocusedWindow()
	if err != nil {
		s.storeError(fmt.Errorf("failed to get focused window: %w", err))
		return nil
	}
	if snap != nil {
		snap.Time = now
	}
	return snap
}

func (s *Service) emit(record *models.UsageRecord) {
	for _, sink := range s.sinks {
		if err := sink.Append(record); err != nil {
			s.storeError(fmt.Errorf("failed to append record: %w", err))
		}
	}
}

// flushFinal closes the last open session. Guarded so the record is
// emitted exactly once even if a stop signal lands mid-tick.
func (s *Service) flushFinal() {
	s.flushOnce.Do(func() {
		record := session.Flush(s.open, time.Now())
		s.open = nil
		if record == nil {
			return
		}
		log.Printf("Flushing final session: %s (%s, %ds)", record.Application, record.Title, record.Duration)
		s.emit(record)
	})
}

func (s *Service) storeError(err error) {
	if s.errorSink == nil {
		log.Printf("Tracking error: %v", err)
		return
	}

	errorLog := &models.ErrorLog{
		Timestamp: time.Now(),
		ErrorMsg:  err.Error(),
	}

	if dbErr := s.errorSink.CreateErrorLog(errorLog); dbErr != nil {
		log.Printf("Failed to store error in database: %v (original error: %v)", dbErr, err)
	} else {
		log.Printf("Error logged to database: %v", err)
	}
}

// GetCurrentWindow returns the live window and idle state, for status output.
func (s *Service) GetCurrentWindow() (*window.Snapshot, *window.IdleInfo, error) {
	snap, err := s.detector.GetFocusedWindow()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get focused window: %w", err)
	}

	idleInfo, err := s.detector.GetIdleInfo()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get idle info: %w", err)
	}

	return snap, idleInfo, nil
}
