package governor

import "bytes"

// Info identifies the module to the host loader, mirroring the hardware
// module registration fields a power HAL declares.
type Info struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Author     string `json:"author"`
	APIVersion string `json:"api_version"`
}

func (m *Module) Info() Info {
	return Info{
		ID:         "power",
		Name:       "Interactive Governor Power HAL",
		Author:     "powerhald",
		APIVersion: "0.2",
	}
}

type Snapshot struct {
	Inited      bool `json:"inited"`
	Interactive bool `json:"interactive"`

	SavedMaxFreq     string `json:"saved_max_freq"`
	ScreenOffMaxFreq string `json:"screen_off_max_freq"`

	BoostpulseOpen   bool `json:"boostpulse_open"`
	BoostpulseWarned bool `json:"boostpulse_warned"`
}

func (m *Module) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		Inited:           m.inited,
		Interactive:      m.interactive,
		SavedMaxFreq:     string(bytes.TrimRight(m.savedMaxFreq, "\n")),
		ScreenOffMaxFreq: m.cfg.ScreenOffMaxFreq,
		BoostpulseOpen:   m.boost != nil,
		BoostpulseWarned: m.boostWarned,
	}
}
