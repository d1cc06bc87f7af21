package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"DrawBoard/internal/config"
	"DrawBoard/internal/display"
	"DrawBoard/internal/export"
	"DrawBoard/internal/frame"
	"DrawBoard/internal/input"
	"DrawBoard/internal/net"
	"DrawBoard/internal/term"
	"DrawBoard/internal/ui"
)

// Process exit codes.
const (
	exitOK = iota
	exitConfig
	exitAllocation
	exitInput
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to a TOML config file")
	frontend := flag.String("frontend", "", "fyne, term or headless (overrides the config)")
	pdfPath := flag.String("export", "", "write the drawing to this PDF on exit")
	remote := flag.Bool("remote", false, "take input from a network gamepad")
	flag.Parse()

	cfg := config.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = config.LoadConfig(*configPath); err != nil {
			log.Printf("Failed to load config: %v", err)
			return exitConfig
		}
	}
	if *frontend != "" {
		cfg.Frontend = *frontend
	}
	if *pdfPath != "" {
		cfg.Export.PDF = *pdfPath
	}
	if *remote {
		cfg.Remote.Enabled = true
	}
	if err := cfg.Validate(); err != nil {
		log.Printf("Invalid config: %v", err)
		return exitConfig
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	tvW, tvH := cfg.TVSize()
	padW, padH := cfg.PadSize()
	tv := display.NewFramebuffer(config.TVName, tvW, tvH)
	pad := display.NewFramebuffer(config.PadName, padW, padH)

	var keys *input.KeyPad
	if cfg.Frontend == config.FrontendTerminal {
		keys = input.NewKeyPad(term.HoldTimeout)
	} else {
		keys = input.NewKeyPad(0)
	}

	var src input.Source = keys
	var srv *net.Server
	if cfg.Remote.Enabled {
		remotePad := net.NewPad()
		remotePad.OnHome(cancel)
		var err error
		if srv, err = net.Serve(cfg.Remote.Addr, remotePad); err != nil {
			log.Printf("Failed to start the gamepad server: %v", err)
			return exitConfig
		}
		defer srv.Close()
		src = remotePad
	}

	driver := frame.New(cfg.Frame(), src, tv, pad)
	if srv != nil && cfg.Remote.Advertise {
		if err := srv.Advertise(driver.Session().ID); err != nil {
			log.Printf("[PAD] mDNS advertising disabled: %v", err)
		}
	}

	err := startAndRun(ctx, cancel, cfg, driver, keys, tv, pad)
	return finish(cfg, driver, err)
}

// startAndRun prepares the frontend first so nothing is allocated for a
// frontend that cannot come up.
func startAndRun(ctx context.Context, cancel context.CancelFunc, cfg *config.Config, driver *frame.Driver,
	keys *input.KeyPad, tv, pad *display.Framebuffer) error {
	var loop func() error
	switch cfg.Frontend {
	case config.FrontendFyne:
		app := ui.NewApp(tv, pad, driver.Palette(), keys, cfg.Display.Scale, cancel)
		driver.OnFrame = app.OnFrame
		loop = func() error { return app.Run(ctx, driver.Run) }

	case config.FrontendTerminal:
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("terminal: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("terminal: %w", err)
		}
		defer screen.Fini()
		screen.HideCursor()
		screen.Clear()

		d := term.New(screen, cfg.Frame().Background, driver.Palette(), tv, pad)
		driver.OnFrame = d.OnFrame
		loop = func() error {
			go term.PollEvents(screen, keys, cancel)
			return driver.Run(ctx)
		}

	default:
		loop = func() error {
			log.Printf("Running headless, connect a gamepad to draw.")
			return driver.Run(ctx)
		}
	}

	if err := driver.Start(display.NewAllocator(cfg.Display.BufferBudget)); err != nil {
		return err
	}
	return loop()
}

// finish saves the drawing of a run that got going and maps err to the
// process exit code.
func finish(cfg *config.Config, driver *frame.Driver, err error) int {
	if cfg.Export.PDF != "" && driver.Started() {
		saveDrawing(cfg, driver)
	}
	return exitCode(err)
}

func saveDrawing(cfg *config.Config, driver *frame.Driver) {
	s := driver.Session()
	meta := export.Metadata{Session: s.ID, Started: s.Started, Frames: s.Ticks()}
	if err := export.PDF(cfg.Export.PDF, cfg.Bounds(), cfg.Frame().Background, driver.History(), meta); err != nil {
		log.Printf("Failed to export %s: %v", cfg.Export.PDF, err)
		return
	}
	log.Printf("Drawing saved to %s", cfg.Export.PDF)
}

func exitCode(err error) int {
	switch {
	case err == nil:
		log.Println("Quitting.")
		return exitOK
	case errors.Is(err, frame.ErrAllocation):
		log.Printf("Quitting: %v", err)
		return exitAllocation
	case errors.Is(err, frame.ErrInputFatal):
		log.Printf("Quitting: %v", err)
		return exitInput
	default:
		log.Printf("Quitting: %v", err)
		return exitConfig
	}
}
