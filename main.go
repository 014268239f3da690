package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/faiface/beep"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/iburimskiy/keys-countdown/internal/ambient"
	"github.com/iburimskiy/keys-countdown/internal/config"
	"github.com/iburimskiy/keys-countdown/internal/countdown"
	"github.com/iburimskiy/keys-countdown/internal/display"
	"github.com/iburimskiy/keys-countdown/internal/game"
	"github.com/iburimskiy/keys-countdown/internal/logging"
	"github.com/iburimskiy/keys-countdown/internal/notify"
	"github.com/iburimskiy/keys-countdown/internal/tui"
	"github.com/iburimskiy/keys-countdown/internal/view"
)

func main() {
	cfgPath := flag.String("config", filepath.Join(config.Dir(), config.CfgFile), "path to config file")
	useTUI := flag.Bool("tui", false, "run in the terminal instead of a window")
	renderWAV := flag.String("render-wav", "", "write one ocean sound loop to a WAV file and exit")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	var writers []io.Writer
	if !*useTUI {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr})
	}
	if err := logging.Init(config.LogDir(), config.LogFile, *debug, writers...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
		os.Exit(1)
	}

	if err := run(*cfgPath, *useTUI, *renderWAV); err != nil {
		log.Error().Err(err).Msg("exiting")
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfgPath string, useTUI bool, renderWAV string) error {
	fs := afero.NewOsFs()
	cfg, err := config.Load(fs, cfgPath)
	if err != nil {
		return err
	}
	target, err := cfg.TargetTime()
	if err != nil {
		return err
	}
	sampleRate := beep.SampleRate(cfg.Audio.SampleRate)

	if renderWAV != "" {
		if err := ambient.WriteWAV(fs, renderWAV, sampleRate, nil); err != nil {
			return err
		}
		log.Info().Str("path", renderWAV).Msg("wrote ocean sound loop")
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	timer := countdown.NewTimer(target, nil)
	if cfg.Notify.OnArrival {
		arrival := notify.NewArrival(cfg.Page, notify.Desktop)
		timer.OnArrive(func() { go func() { _ = arrival.Show() }() })
	}

	session := ambient.NewSession(ambient.NewContextFactory(cfg.Audio.Backend, sampleRate))
	defer func() {
		if err := session.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close audio")
		}
	}()

	log.Info().
		Time("target", target).
		Str("backend", cfg.Audio.Backend).
		Bool("tui", useTUI).
		Msg("starting countdown")

	if useTUI {
		return runTUI(ctx, cfg, timer, session)
	}
	return runWindow(ctx, cfg, timer, session)
}

func runWindow(ctx context.Context, cfg config.Config, timer *countdown.Timer, session *ambient.Session) error {
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Page.Title + " - click for ocean sounds, F: fullscreen, Esc/Q: quit")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if cfg.Window.Fullscreen {
		ebiten.SetFullscreen(true)
	}

	v := view.New(timer, session, display.NewController(game.Screen{}))
	v.Mount(ctx)
	defer v.Unmount()

	g := game.New(ctx, v, session, cfg.Page)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("window closed with error: %w", err)
	}
	return nil
}

func runTUI(ctx context.Context, cfg config.Config, timer *countdown.Timer, session *ambient.Session) error {
	screen := tui.NewScreen()
	v := view.New(timer, session, display.NewController(screen))
	v.Mount(ctx)
	defer v.Unmount()

	p := tea.NewProgram(tui.New(v, screen, cfg.Page), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("terminal ui: %w", err)
	}
	return nil
}
