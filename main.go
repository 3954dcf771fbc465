package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"PolyBoard/internal/config"
	"PolyBoard/internal/net"
	"PolyBoard/internal/ui"
)

const discoverTimeout = 3 * time.Second

var (
	configPath = flag.String("config", "", "Path to a TOML config file")
	serve      = flag.Bool("serve", false, "Run the websocket remote shell instead of the desktop window")
	discover   = flag.Bool("discover", false, "List boards advertised on the local network and exit")
	port       = flag.Int("port", -1, "Override the remote shell port")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags]\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *port >= 0 {
		cfg.Server.Port = *port
	}

	level, _ := cfg.LogLevel()
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	switch {
	case *discover:
		runDiscover(log)
	case *serve:
		runServer(cfg, log)
	default:
		ui.RunApp(cfg, log)
	}
}

func runServer(cfg config.Config, log *slog.Logger) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := net.NewServer(cfg, log.With("shell", "remote")).ListenAndServe(ctx); err != nil {
		log.Error("remote shell failed", "err", err)
		os.Exit(1)
	}
}

func runDiscover(log *slog.Logger) {
	n := 0
	err := net.Browse(discoverTimeout, func(addr string) {
		n++
		fmt.Println(addr)
	})
	if err != nil {
		log.Error("discovery failed", "err", err)
		os.Exit(1)
	}
	if n == 0 {
		log.Info("no boards found", "waited", discoverTimeout)
	}
}
