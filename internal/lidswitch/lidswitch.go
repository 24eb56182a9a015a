// Package lidswitch drives interactive transitions from a lid-switch
// GPIO line, for builds where no host power daemon pushes screen state.
package lidswitch

import "time"

// Interactor receives screen on/off transitions. Implementations must
// tolerate duplicate and out-of-order on/off traffic.
type Interactor interface {
	SetInteractive(on bool)
}

type Config struct {
	// Line is the GPIO line name (e.g. "LID" or "GPIO17").
	Line string
	// ActiveLow marks switches that pull the line low when the lid is open.
	ActiveLow bool
	// Debounce is applied in the kernel before edge events are delivered.
	Debounce time.Duration
}

// inputLine is the platform GPIO handle behind the watcher.
type inputLine interface {
	Value() (int, error)
	Close() error
}

var openLineFn = openLine

type Service struct {
	line inputLine
}

// Start requests the configured line with edge events and applies the
// current lid state, so a boot with the lid closed starts clamped.
func Start(cfg Config, target Interactor) (*Service, error) {
	line, err := openLineFn(cfg, func(level int) {
		target.SetInteractive(interactiveForLevel(level, cfg.ActiveLow))
	})
	if err != nil {
		return nil, err
	}
	if v, verr := line.Value(); verr == nil {
		target.SetInteractive(interactiveForLevel(v, cfg.ActiveLow))
	}
	return &Service{line: line}, nil
}

func (s *Service) Close() error {
	if s == nil || s.line == nil {
		return nil
	}
	err := s.line.Close()
	s.line = nil
	return err
}

// interactiveForLevel maps a line level to screen state. An open lid
// reads high unless the switch is wired active-low.
func interactiveForLevel(level int, activeLow bool) bool {
	open := level != 0
	if activeLow {
		open = !open
	}
	return open
}
