//go:build linux

package lidswitch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/warthog618/go-gpiocdev"
)

// openLine requests the named line as a debounced input with both-edge
// events via the Linux GPIO character device.
func openLine(cfg Config, onLevel func(level int)) (inputLine, error) {
	if cfg.Line == "" {
		return nil, fmt.Errorf("lidswitch: line name required")
	}

	var chipCandidates []string
	entries, _ := os.ReadDir("/dev")
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, "gpiochip") {
			chipCandidates = append(chipCandidates, filepath.Join("/dev", name))
		}
	}

	handler := func(evt gpiocdev.LineEvent) {
		level := 0
		if evt.Type == gpiocdev.LineEventRisingEdge {
			level = 1
		}
		onLevel(level)
	}

	for _, chipPath := range chipCandidates {
		chip, err := gpiocdev.NewChip(chipPath)
		if err != nil {
			continue
		}
		offset, err := chip.FindLine(cfg.Line)
		if err != nil {
			_ = chip.Close()
			continue
		}
		opts := []gpiocdev.LineReqOption{
			gpiocdev.AsInput,
			gpiocdev.WithBothEdges,
			gpiocdev.WithEventHandler(handler),
			gpiocdev.WithConsumer("powerhald"),
		}
		if cfg.Debounce > 0 {
			opts = append(opts, gpiocdev.WithDebounce(cfg.Debounce))
		}
		line, err := chip.RequestLine(offset, opts...)
		if err != nil {
			_ = chip.Close()
			continue
		}
		return &gpiodLine{chip: chip, line: line}, nil
	}

	return nil, fmt.Errorf("lidswitch: gpio line %q not found (or busy)", cfg.Line)
}

type gpiodLine struct {
	chip *gpiocdev.Chip
	line *gpiocdev.Line
}

func (g *gpiodLine) Value() (int, error) {
	if g == nil || g.line == nil {
		return 0, fmt.Errorf("lidswitch: line not initialized")
	}
	return g.line.Value()
}

func (g *gpiodLine) Close() error {
	if g == nil || g.line == nil {
		return nil
	}
	err := g.line.Close()
	g.line = nil
	if g.chip != nil {
		_ = g.chip.Close()
		g.chip = nil
	}
	return err
}
