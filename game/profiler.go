package game

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	// ErrProfilerDisabled is returned when no profile directory is configured
	ErrProfilerDisabled = errors.New("profiler disabled")

	// ErrProfilerBusy is returned while a capture is running or cooling down
	ErrProfilerBusy = errors.New("profiler busy")
)

// Profiler captures a CPU profile and an execution trace when the frame
// rate drops
type Profiler struct {
	mu              sync.Mutex
	wg              sync.WaitGroup
	log             zerolog.Logger
	isProfiling     bool
	lastCaptureTime time.Time
	captureCooldown time.Duration
	captureDuration time.Duration
	profilesDir     string
}

// NewProfiler creates a profiler writing into dir. An empty dir disables it.
func NewProfiler(dir string, log zerolog.Logger) *Profiler {
	return &Profiler{
		log:             log,
		captureCooldown: 10 * time.Second, // Don't capture more than once every 10 seconds
		captureDuration: 5 * time.Second,
		profilesDir:     dir,
	}
}

// Enabled reports whether captures are written anywhere
func (p *Profiler) Enabled() bool {
	return p.profilesDir != ""
}

// CaptureProfile starts a background capture labelled with reason
func (p *Profiler) CaptureProfile(reason string) error {
	if !p.Enabled() {
		return ErrProfilerDisabled
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isProfiling || time.Since(p.lastCaptureTime) < p.captureCooldown {
		return ErrProfilerBusy
	}
	if err := os.MkdirAll(p.profilesDir, 0755); err != nil {
		return fmt.Errorf("failed to create profile dir: %w", err)
	}

	p.isProfiling = true
	p.lastCaptureTime = time.Now()
	baseName := fmt.Sprintf("fps-drop-%s-%s", time.Now().Format("20060102-150405"), reason)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer func() {
			p.mu.Lock()
			p.isProfiling = false
			p.mu.Unlock()
		}()

		var inner sync.WaitGroup
		inner.Add(2)
		go func() {
			defer inner.Done()
			if err := p.record(baseName+".cpu.prof", pprof.StartCPUProfile, pprof.StopCPUProfile); err != nil {
				p.log.Error().Err(err).Msg("cpu profile failed")
			}
		}()
		go func() {
			defer inner.Done()
			if err := p.record(baseName+".trace", trace.Start, trace.Stop); err != nil {
				p.log.Error().Err(err).Msg("trace failed")
			}
		}()
		inner.Wait()

		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		p.log.Info().
			Str("profile", filepath.Join(p.profilesDir, baseName+".cpu.prof")).
			Uint64("heapAllocKB", m.HeapAlloc/1024).
			Uint32("numGC", m.NumGC).
			Msg("profile captured")
	}()

	return nil
}

// Wait blocks until the running capture, if any, is written
func (p *Profiler) Wait() {
	p.wg.Wait()
}

// IsProfiling returns whether a profile capture is currently in progress
func (p *Profiler) IsProfiling() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isProfiling
}

// record runs one capture of captureDuration into name inside the
// profile dir
func (p *Profiler) record(name string, start func(io.Writer) error, stop func()) error {
	file, err := os.Create(filepath.Join(p.profilesDir, name))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer file.Close()

	if err := start(file); err != nil {
		return fmt.Errorf("failed to start %s: %w", name, err)
	}
	time.Sleep(p.captureDuration)
	stop()
	return nil
}
