package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"powerhald/internal/config"
	"powerhald/internal/governor"
	"powerhald/internal/lidswitch"
	"powerhald/internal/web"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "/etc/powerhald.yaml", "Path to YAML config")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	mod := governor.New(governor.Config{
		InteractiveDir:    cfg.Governor.InteractiveDir,
		CPU0Dir:           cfg.Governor.CPU0Dir,
		ScreenOffMaxFreq:  cfg.Governor.ScreenOffMaxFreq,
		BootMaxFreq:       cfg.Governor.BootMaxFreq,
		TimerRate:         cfg.Governor.TimerRate,
		MinSampleTime:     cfg.Governor.MinSampleTime,
		HispeedFreq:       cfg.Governor.HispeedFreq,
		TargetLoads:       cfg.Governor.TargetLoads,
		GoHispeedLoad:     cfg.Governor.GoHispeedLoad,
		AboveHispeedDelay: cfg.Governor.AboveHispeedDelay,
	})
	defer mod.Close()

	log.Printf("powerhald starting")
	mod.Init()

	if cfg.LidSwitch.Enable {
		lid, err := lidswitch.Start(lidswitch.Config{
			Line:      cfg.LidSwitch.Line,
			ActiveLow: cfg.LidSwitch.ActiveLow,
			Debounce:  cfg.LidSwitch.Debounce,
		}, mod)
		if err != nil {
			// The HTTP contract still works without the switch.
			log.Printf("lidswitch init failed: %v", err)
		} else {
			defer lid.Close()
			log.Printf("lidswitch watching line=%s active_low=%v debounce=%s",
				cfg.LidSwitch.Line, cfg.LidSwitch.ActiveLow, cfg.LidSwitch.Debounce)
		}
	}

	log.Printf("listening on %s", cfg.Listen)
	if err := web.Serve(ctx, cfg.Listen, mod); err != nil && ctx.Err() == nil {
		log.Fatalf("http server stopped: %v", err)
	}
	log.Printf("powerhald stopping")
}
