package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/tseward/overmind/agent"
	"github.com/tseward/overmind/engine"
	"github.com/tseward/overmind/ipc"
)

const banner = `
 ██████╗ ██╗   ██╗███████╗██████╗ ███╗   ███╗██╗███╗   ██╗██████╗
██╔═══██╗██║   ██║██╔════╝██╔══██╗████╗ ████║██║████╗  ██║██╔══██╗
██║   ██║██║   ██║█████╗  ██████╔╝██╔████╔██║██║██╔██╗ ██║██║  ██║
██║   ██║╚██╗ ██╔╝██╔══╝  ██╔══██╗██║╚██╔╝██║██║██║╚██╗██║██║  ██║
╚██████╔╝ ╚████╔╝ ███████╗██║  ██║██║ ╚═╝ ██║██║██║ ╚████║██████╔╝
 ╚═════╝   ╚═══╝  ╚══════╝╚═╝  ╚═╝╚═╝     ╚═╝╚═╝╚═╝  ╚═══╝╚═════╝

Faction Intelligence for Turn-Based Strategy`

func main() {
	socketPath := flag.String("socket", "/tmp/overmind.sock", "unix socket to listen on")
	tuningPath := flag.String("tuning", "", "optional YAML tuning override file")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	fmt.Println(banner)

	slog.Info("starting overmind")

	tuning := engine.DefaultTuning()
	if *tuningPath != "" {
		var err error
		tuning, err = engine.LoadTuning(*tuningPath)
		if err != nil {
			slog.Error("failed to load tuning", "path", *tuningPath, "error", err)
			os.Exit(1)
		}
		slog.Info("tuning overrides loaded", "path", *tuningPath)
	}

	// Unix sockets leave behind a file on unclean shutdown; remove it so we can rebind.
	if err := os.RemoveAll(*socketPath); err != nil {
		slog.Error("failed to clean up socket", "path", *socketPath, "error", err)
		os.Exit(1)
	}

	listener, err := net.Listen("unix", *socketPath)
	if err != nil {
		slog.Error("failed to listen on socket", "path", *socketPath, "error", err)
		os.Exit(1)
	}
	defer listener.Close()
	defer os.Remove(*socketPath)

	slog.Info("listening on domain socket", "path", *socketPath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				select {
				case <-ctx.Done():
					return
				default:
					slog.Error("failed to accept connection", "error", err)
					continue
				}
			}
			slog.Info("new connection accepted")
			go handleConn(conn, tuning)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
}

func handleConn(conn net.Conn, tuning engine.Tuning) {
	c := ipc.NewConnection(conn, nil)
	a := agent.New(c, tuning)
	c.RegisterHandler(ipc.TypeHello, a.HandleHello)
	c.RegisterHandler(ipc.TypeDecideTurn, a.HandleDecideTurn)
	c.RegisterHandler(ipc.TypePlanStrategy, a.HandlePlanStrategy)
	c.RegisterHandler(ipc.TypeResolveAttack, a.HandleResolveAttack)
	c.ReadLoop()
}
