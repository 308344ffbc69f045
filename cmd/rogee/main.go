package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rogee/internal/agent"
	"rogee/internal/config"
	"rogee/internal/domain"
	"rogee/internal/engine"
	"rogee/internal/network"
	"rogee/internal/server"
	"rogee/internal/terminal"
	"rogee/internal/version"
	"rogee/pkg/logger"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "rogee:", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Флаги поверх конфига
	var (
		seed        int64
		cfgPath     string
		listen      string
		autoplay    bool
		maxTicks    int
		showVersion bool
	)
	// 0 означает "не задан": берется seed из конфига, а если и там 0, то
	// от часов. Поэтому сам seed 0 воспроизвести нельзя.
	flag.Int64Var(&seed, "seed", 0, "World seed, non-zero (0 keeps the config value; a zero config seed is taken from the clock)")
	flag.StringVar(&cfgPath, "config", "", "Path to a .yaml or .toml config (default $ROGEE_CONFIG)")
	flag.StringVar(&listen, "listen", "", "Spectator server address, e.g. :8080 (empty disables)")
	flag.BoolVar(&autoplay, "autoplay", false, "Run headless with the built-in bot")
	flag.IntVar(&maxTicks, "ticks", 5000, "Tick limit for -autoplay")
	flag.BoolVar(&showVersion, "version", false, "Print build information and exit")
	flag.Parse()

	if showVersion {
		fmt.Println(version.String())
		return nil
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	if listen != "" {
		cfg.Server.Listen = listen
	}

	// 2. Логи в файл: терминал принадлежит рендеру
	closer, err := logger.Setup(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	})
	if err != nil {
		return err
	}
	defer closer.Close()
	logger.Log.Info(version.String())

	g, err := engine.NewGame(cfg)
	if err != nil {
		return err
	}
	logger.Log.WithFields(logrus.Fields{
		"run_id": g.RunID.String(),
		"seed":   g.Seed,
	}).Info("Starting rogee")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Зрители
	hub := network.NewBroadcaster()
	g.SetPublisher(hub)
	if cfg.Server.Listen != "" {
		srv := server.New(hub, g.Metrics.Registry, cfg.Server.Listen)
		go func() {
			if err := srv.Run(); err != nil {
				logger.Log.WithError(err).Error("Spectator server stopped")
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Log.WithError(err).Warn("Spectator server shutdown")
			}
		}()
	}

	if autoplay {
		res, err := agent.Play(ctx, g, agent.NewBot(g.Seed), maxTicks)
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		fmt.Printf("seed %d: %d turns, %d ticks, %d dead, final state %s\n", g.Seed, res.Turns, res.Ticks, res.Reaped, res.Final)
		return nil
	}

	return runTerminal(ctx, g, cfg.FrameInterval())
}

// runTerminal - кадровый цикл: один тик и одна отрисовка на кадр.
func runTerminal(ctx context.Context, g *engine.Game, frame time.Duration) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	renderer := terminal.NewRenderer(screen)
	intents := make(chan engine.Intent, 16)
	quit := make(chan struct{})
	go pollInput(screen, intents, quit)

	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-quit:
			return nil
		case <-ticker.C:
		}

		// Ввод забираем только когда игра его ждет
		in := engine.NoIntent
		if g.State() == domain.StateWaiting {
			select {
			case in = <-intents:
			default:
			}
		}

		if err := g.Tick(ctx, in); err != nil && !errors.Is(err, engine.ErrGameOver) {
			return err
		}
		renderer.Draw(g)
	}
}

// pollInput переводит события tcell в Intent. Quit закрывает quit.
func pollInput(screen tcell.Screen, intents chan<- engine.Intent, quit chan<- struct{}) {
	for {
		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			// Screen finalized
			return
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			in := terminal.KeyToIntent(ev)
			switch in.Action {
			case domain.ActionQuit:
				close(quit)
				return
			case domain.ActionNone:
			default:
				select {
				case intents <- in:
				default:
					// Буфер полон: лишние нажатия теряются
				}
			}
		}
	}
}
