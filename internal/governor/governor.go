// Package governor implements the power HAL for the interactive cpufreq
// governor: one-time tuning at startup, a lowered frequency ceiling while
// the screen is off, and boostpulse writes on interaction hints.
package governor

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"powerhald/internal/sysfs"
)

// Hint is a transient performance hint from the host power daemon.
type Hint string

const (
	HintInteraction Hint = "interaction"
	HintCPUBoost    Hint = "cpu_boost"
	HintVsync       Hint = "vsync"
)

// maxFreqBytes bounds a single scaling_max_freq read. Frequencies are
// kHz strings of at most 7 digits plus a trailing newline.
const maxFreqBytes = 10

var sysfsWriteFn = sysfs.Write
var sysfsReadFn = sysfs.Read

type Config struct {
	// InteractiveDir holds the interactive governor tunables
	// (timer_rate, hispeed_freq, boostpulse, ...).
	InteractiveDir string
	// CPU0Dir is the cpufreq policy directory for cpu0. CPU 0 and 1
	// share a policy on this platform, so one ceiling covers both.
	CPU0Dir string

	// ScreenOffMaxFreq is the ceiling applied while the screen is off.
	ScreenOffMaxFreq string
	// BootMaxFreq seeds the remembered ceiling until the first
	// screen-off transition observes the real one.
	BootMaxFreq string

	// Interactive governor tunables written once by Init.
	TimerRate         string
	MinSampleTime     string
	HispeedFreq       string
	TargetLoads       string
	GoHispeedLoad     string
	AboveHispeedDelay string
}

// Module is the stateful HAL handle the host holds for the process
// lifetime.
//
// Init is called once at startup before concurrent traffic begins;
// SetInteractive and PowerHint may then be called freely from multiple
// goroutines. All in-memory state mutation is serialized on one mutex
// (a deliberate strengthening over the original HAL, which locked only
// the boostpulse open); the boostpulse write itself happens outside it.
type Module struct {
	cfg Config

	inited bool

	mu          sync.Mutex
	boost       *os.File
	boostWarned bool
	interactive bool
	// savedMaxFreq is the ceiling to restore on screen-on. Raw bytes
	// as read from sysfs (trailing newline and all); the kernel takes
	// them back verbatim.
	savedMaxFreq []byte
}

func New(cfg Config) *Module {
	if cfg.InteractiveDir == "" {
		cfg.InteractiveDir = "/sys/devices/system/cpu/cpufreq/interactive"
	}
	if cfg.CPU0Dir == "" {
		cfg.CPU0Dir = "/sys/devices/system/cpu/cpu0/cpufreq"
	}
	if cfg.ScreenOffMaxFreq == "" {
		cfg.ScreenOffMaxFreq = "600000"
	}
	if cfg.BootMaxFreq == "" {
		cfg.BootMaxFreq = "1200000"
	}
	if cfg.TimerRate == "" {
		cfg.TimerRate = "20000"
	}
	if cfg.MinSampleTime == "" {
		cfg.MinSampleTime = "60000"
	}
	if cfg.HispeedFreq == "" {
		cfg.HispeedFreq = "800000"
	}
	if cfg.TargetLoads == "" {
		cfg.TargetLoads = "70 800000:80 1200000:99"
	}
	if cfg.GoHispeedLoad == "" {
		cfg.GoHispeedLoad = "99"
	}
	if cfg.AboveHispeedDelay == "" {
		cfg.AboveHispeedDelay = "80000"
	}

	return &Module{
		cfg:          cfg,
		interactive:  true,
		savedMaxFreq: []byte(cfg.BootMaxFreq),
	}
}

// Init applies the one-time interactive governor tuning and marks the
// module ready. Each write is best effort: a rejected tunable is logged
// and the remaining writes still happen, and the module becomes ready
// even if the kernel did not accept every value.
func (m *Module) Init() {
	for _, t := range []struct{ name, value string }{
		{"timer_rate", m.cfg.TimerRate},
		{"min_sample_time", m.cfg.MinSampleTime},
		{"hispeed_freq", m.cfg.HispeedFreq},
		{"target_loads", m.cfg.TargetLoads},
		{"go_hispeed_load", m.cfg.GoHispeedLoad},
		{"above_hispeed_delay", m.cfg.AboveHispeedDelay},
	} {
		p := filepath.Join(m.cfg.InteractiveDir, t.name)
		if err := sysfsWriteFn(p, t.value); err != nil {
			log.Printf("governor: %v", err)
		}
	}

	log.Printf("governor: initialized")
	m.inited = true
}

func (m *Module) maxFreqPath() string {
	return filepath.Join(m.cfg.CPU0Dir, "scaling_max_freq")
}

func (m *Module) boostpulsePath() string {
	return filepath.Join(m.cfg.InteractiveDir, "boostpulse")
}

// SetInteractive lowers the frequency ceiling when the screen turns off
// and restores the remembered ceiling when it turns back on.
//
// Off events can repeat without an intervening on (idle dimmer racing a
// power button press), in which case the ceiling read back is already
// the screen-off value. The saved ceiling is only replaced when the
// observed one differs from it, so a duplicate off never clobbers the
// real ceiling with the clamp.
func (m *Module) SetInteractive(on bool) {
	if !m.inited {
		return
	}
	path := m.maxFreqPath()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.interactive = on

	if on {
		if err := sysfsWriteFn(path, string(m.savedMaxFreq)); err != nil {
			log.Printf("governor: %v", err)
		}
		return
	}

	cur, err := sysfsReadFn(path, maxFreqBytes)
	if err == nil && !bytes.HasPrefix(cur, []byte(m.cfg.ScreenOffMaxFreq)) {
		m.savedMaxFreq = cur
	}
	if err := sysfsWriteFn(path, m.cfg.ScreenOffMaxFreq); err != nil {
		log.Printf("governor: %v", err)
	}
}

// PowerHint handles a transient performance hint.
//
// Interaction and CPU-boost hints pulse the governor for the requested
// duration (data, default 1). Vsync is recognized but has no effect on
// this platform. Anything else is ignored.
func (m *Module) PowerHint(hint Hint, data *int) {
	if !m.inited {
		return
	}

	switch hint {
	case HintInteraction, HintCPUBoost:
		duration := 1
		if data != nil {
			duration = *data
		}
		f := m.openBoostpulse()
		if f == nil {
			return
		}
		if _, err := f.WriteString(strconv.Itoa(duration)); err != nil {
			log.Printf("governor: %v", err)
		}
	case HintVsync:
	}
}

// openBoostpulse lazily opens the boostpulse attribute, returning nil
// while it is unavailable. The open is retried on every hint until it
// succeeds, but a missing attribute (kernel without the interactive
// governor) is only logged once per process.
func (m *Module) openBoostpulse() *os.File {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.boost == nil {
		f, err := os.OpenFile(m.boostpulsePath(), os.O_WRONLY, 0)
		if err != nil {
			if !m.boostWarned {
				log.Printf("governor: %v", err)
				m.boostWarned = true
			}
			return nil
		}
		m.boost = f
	}
	return m.boost
}

// Close releases the boostpulse handle. The kernel reclaims it at
// process exit anyway, but a clean shutdown path may as well use it.
func (m *Module) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.boost == nil {
		return nil
	}
	err := m.boost.Close()
	m.boost = nil
	return err
}
