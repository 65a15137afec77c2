// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Radia Labs

package sweep

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/radialab/sweepbench/pkg/dtrc"
	"github.com/radialab/sweepbench/pkg/logger"
	"github.com/radialab/sweepbench/pkg/timeutil"
)

// Analyzer is the spectrum-analyzer capability the sequencer drives. All
// methods may fail independently; ResetTrace, HoldMaxTrace, and PeakSearch
// are treated as best-effort while marker reads are step-fatal.
type Analyzer interface {
	SetCenterFrequency(hz float64) error
	SetSpan(hz float64) error
	SetResolutionBandwidth(hz float64) error
	ResetTrace() error
	HoldMaxTrace() error
	PeakSearch() error
	MarkerFrequency() (float64, error)
	MarkerPower() (float64, error)
}

// Sender transmits one control packet to the board. The destination is fixed
// at session setup; no reply is awaited on this path.
type Sender interface {
	Send(packet []byte) (int, error)
	Close() error
}

// Result is one successful spot measurement. A spot only produces a Result
// when both marker reads succeed.
type Result struct {
	Spot        string  `json:"spot"`
	FrequencyHz float64 `json:"freq_hz"`
	PowerDBm    float64 `json:"power_dbm"`
}

// Setup is the one-time analyzer configuration applied before the loop.
type Setup struct {
	CenterHz       float64
	SpanHz         float64
	ResolutionBWHz float64
}

// DefaultSetup returns the standard analyzer configuration: 3.1 GHz center,
// 600 MHz span, 100 kHz RBW.
func DefaultSetup() Setup {
	return Setup{
		CenterHz:       3.1e9,
		SpanHz:         600e6,
		ResolutionBWHz: 100e3,
	}
}

// Dwells are the settle intervals between protocol phases. Real time must
// pass after arming a max-hold trace for the hardware to accumulate it.
type Dwells struct {
	TraceClear time.Duration // after trace reset, before the progress event
	PostSend   time.Duration // after a successful transmission
	MaxHold    time.Duration // after arming max-hold
	PeakSearch time.Duration // after peak search, before the marker reads
}

// DefaultDwells returns the settle intervals used against real hardware.
func DefaultDwells() Dwells {
	return Dwells{
		TraceClear: 100 * time.Millisecond,
		PostSend:   2 * time.Second,
		MaxHold:    3 * time.Second,
		PeakSearch: 150 * time.Millisecond,
	}
}

// Config collects the per-run parameters. Board and Channel are pass-through
// labels for reporting; they have no effect on the protocol.
type Config struct {
	Board   int
	Channel int

	// Hex field values ("00 01" or "0001"); empty decodes to zeros.
	PulseWidth string
	PRT        string

	// Injection offsets; nil selects the dtrc defaults.
	PulseOffsets []int
	PRTOffsets   []int

	// Template overrides the packet image; nil selects dtrc.DefaultTemplate.
	Template *dtrc.Template

	Axis   *Axis
	Setup  *Setup
	Dwells *Dwells

	Clock  timeutil.Clock
	Logger logger.Logger
}

// Sequencer runs one sweep at a time: single-threaded, synchronous,
// blocking. Concurrent runs against the same analyzer are undefined and
// must be prevented by the caller.
type Sequencer struct {
	analyzer Analyzer
	sender   Sender
	cfg      Config

	axis   Axis
	setup  Setup
	dwells Dwells
	clock  timeutil.Clock
	log    logger.Logger

	mu   sync.Mutex
	sink Sink
}

// New creates a sequencer over the given capabilities. Missing optional
// configuration falls back to defaults; missing capabilities are reported
// by Run, not here, so a sequencer can be constructed before instruments
// are attached.
func New(analyzer Analyzer, sender Sender, cfg Config) *Sequencer {
	s := &Sequencer{
		analyzer: analyzer,
		sender:   sender,
		cfg:      cfg,
		axis:     DefaultAxis(),
		setup:    DefaultSetup(),
		dwells:   DefaultDwells(),
		clock:    timeutil.RealClock{},
		log:      logger.Nop(),
	}
	if cfg.Axis != nil {
		s.axis = *cfg.Axis
	}
	if cfg.Setup != nil {
		s.setup = *cfg.Setup
	}
	if cfg.Dwells != nil {
		s.dwells = *cfg.Dwells
	}
	if cfg.Clock != nil {
		s.clock = cfg.Clock
	}
	if cfg.Logger != nil {
		s.log = cfg.Logger
	}
	return s
}

// SetSink registers (or clears, with nil) the progress sink. Only one sink
// is active at a time; the last registration wins.
func (s *Sequencer) SetSink(sink Sink) {
	s.mu.Lock()
	s.sink = sink
	s.mu.Unlock()
}

// emit pushes a progress event to the registered sink. Anything the sink
// does, including panicking, is discarded: the sink must never change the
// outcome of a run.
func (s *Sequencer) emit(e Event) {
	s.mu.Lock()
	sink := s.sink
	s.mu.Unlock()
	if sink == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.log.Debug("progress sink panicked", "cause", r)
		}
	}()
	sink.Notify(e)
}

// isolated executes a best-effort analyzer call, discarding any error. Used
// only for trace reset, max-hold arming, and peak search; every other
// capability call propagates into the per-spot isolation logic.
func (s *Sequencer) isolated(op string, call func() error) {
	if err := call(); err != nil {
		s.log.Debug("best-effort analyzer call failed", "op", op, "error", err)
	}
}

// buildPlan validates the run configuration and returns the packet builder.
func (s *Sequencer) buildPlan() (*dtrc.Builder, error) {
	if s.analyzer == nil {
		return nil, &ConfigError{Message: "analyzer must be attached before running a sweep"}
	}
	if s.sender == nil {
		return nil, &ConfigError{Message: "transport session must be attached before running a sweep"}
	}

	pulseOffsets := s.cfg.PulseOffsets
	if pulseOffsets == nil {
		pulseOffsets = dtrc.DefaultPulseWidthOffsets
	}
	prtOffsets := s.cfg.PRTOffsets
	if prtOffsets == nil {
		prtOffsets = dtrc.DefaultPRTOffsets
	}

	if len(pulseOffsets) != dtrc.PulseWidthLength {
		return nil, &ConfigError{Message: fmt.Sprintf(
			"pulse_width offsets must list %d positions, got %d", dtrc.PulseWidthLength, len(pulseOffsets))}
	}
	if len(prtOffsets) != dtrc.PRTLength {
		return nil, &ConfigError{Message: fmt.Sprintf(
			"prt offsets must list %d positions, got %d", dtrc.PRTLength, len(prtOffsets))}
	}

	pulseBytes, err := dtrc.DecodeField(s.cfg.PulseWidth, dtrc.PulseWidthLength)
	if err != nil {
		return nil, err
	}
	prtBytes, err := dtrc.DecodeField(s.cfg.PRT, dtrc.PRTLength)
	if err != nil {
		return nil, err
	}

	template := dtrc.DefaultTemplate()
	if s.cfg.Template != nil {
		template = *s.cfg.Template
	}

	builder := dtrc.NewBuilder(template)
	builder.AddField(dtrc.Field{Name: dtrc.FieldPulseWidth, Bytes: pulseBytes, Offsets: pulseOffsets})
	builder.AddField(dtrc.Field{Name: dtrc.FieldPRT, Bytes: prtBytes, Offsets: prtOffsets})

	// Surface out-of-range offsets before any instrument interaction.
	if _, err := builder.Build(s.axis.Start); err != nil {
		return nil, err
	}

	return builder, nil
}

// Run executes the sweep and returns the accumulated results.
//
// Fatal errors (missing capability, bad hex, bad offsets, analyzer setup
// failure) abort before the loop and return with no results and no
// completion event. Per-spot transport and measurement failures are
// isolated: they emit an error event and the run continues with the next
// spot. The transport session is released exactly once regardless of how
// the run ends. Cancellation is checked at the top of each spot iteration.
func (s *Sequencer) Run(ctx context.Context) ([]Result, error) {
	builder, err := s.buildPlan()
	if err != nil {
		return nil, err
	}

	defer func() {
		if cerr := s.sender.Close(); cerr != nil {
			s.log.Debug("transport session close failed", "error", cerr)
		}
	}()

	s.emit(Event{
		Status:  StatusRunning,
		Current: 0,
		Total:   DeclaredTotal,
		Board:   s.cfg.Board,
		Channel: s.cfg.Channel,
		Message: "Starting automation sequence...",
	})

	if err := s.analyzer.SetCenterFrequency(s.setup.CenterHz); err != nil {
		return nil, fmt.Errorf("analyzer setup: center frequency: %w", err)
	}
	if err := s.analyzer.SetSpan(s.setup.SpanHz); err != nil {
		return nil, fmt.Errorf("analyzer setup: span: %w", err)
	}
	if err := s.analyzer.SetResolutionBandwidth(s.setup.ResolutionBWHz); err != nil {
		return nil, fmt.Errorf("analyzer setup: resolution bandwidth: %w", err)
	}

	var results []Result
	for _, spot := range s.axis.Values() {
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}

		packet, err := builder.Build(spot)
		if err != nil {
			// Offsets were validated up front; a failure here means the
			// configuration changed mid-run, which is fatal.
			return results, err
		}

		s.isolated("trace reset", s.analyzer.ResetTrace)
		s.clock.Sleep(s.dwells.TraceClear)

		s.emit(Event{
			Status:  StatusRunning,
			Current: int(spot) + 1,
			Total:   DeclaredTotal,
			Board:   s.cfg.Board,
			Channel: s.cfg.Channel,
			Hex:     fmt.Sprintf("0x%02X", spot),
			Message: fmt.Sprintf("Sending spot 0x%02X", spot),
		})

		if _, err := s.sender.Send(packet); err != nil {
			s.emitSpotError(spot, &TransportError{Spot: spot, Err: err})
			continue
		}
		s.log.Debug("packet sent",
			"spot", fmt.Sprintf("0x%02X", spot),
			"payload", dtrc.EncodeField(packet),
			"length", len(packet))

		s.clock.Sleep(s.dwells.PostSend)
		s.isolated("max-hold", s.analyzer.HoldMaxTrace)
		s.clock.Sleep(s.dwells.MaxHold)

		s.isolated("peak search", s.analyzer.PeakSearch)
		s.clock.Sleep(s.dwells.PeakSearch)

		freq, err := s.analyzer.MarkerFrequency()
		if err != nil {
			s.emitSpotError(spot, &MeasurementError{Spot: spot, Err: err})
			continue
		}
		power, err := s.analyzer.MarkerPower()
		if err != nil {
			s.emitSpotError(spot, &MeasurementError{Spot: spot, Err: err})
			continue
		}

		results = append(results, Result{
			Spot:        fmt.Sprintf("%02X", spot),
			FrequencyHz: freq,
			PowerDBm:    power,
		})
	}

	s.emit(Event{
		Status:  StatusCompleted,
		Current: len(results),
		Total:   DeclaredTotal,
		Board:   s.cfg.Board,
		Channel: s.cfg.Channel,
		Message: fmt.Sprintf("Automation completed: %d/%d measurements successful", len(results), DeclaredTotal),
	})

	return results, nil
}

// emitSpotError reports an isolated per-spot failure on the progress stream.
func (s *Sequencer) emitSpotError(spot byte, cause error) {
	s.emit(Event{
		Status:  StatusError,
		Current: int(spot) + 1,
		Total:   DeclaredTotal,
		Board:   s.cfg.Board,
		Channel: s.cfg.Channel,
		Hex:     fmt.Sprintf("0x%02X", spot),
		Message: cause.Error(),
	})
}
