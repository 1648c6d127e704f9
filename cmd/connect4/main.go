package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/iamasit07/4-in-a-row/client/internal/config"
	"github.com/iamasit07/4-in-a-row/client/internal/service/game"
	"github.com/iamasit07/4-in-a-row/client/internal/transport/websocket"
	"github.com/iamasit07/4-in-a-row/client/internal/ui"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.LoadConfig()

	var pageURL, joinKey, watchKey, logFile string
	flagSet := pflag.NewFlagSet("connect4", pflag.ContinueOnError)
	flagSet.StringVar(&pageURL, "page", cfg.PageURL, "page URL the game is played from; its host selects the server and its ?join= / ?watch= query selects the role")
	flagSet.StringVar(&joinKey, "join", "", "join the game with this key as the second player")
	flagSet.StringVar(&watchKey, "watch", "", "watch the game with this key")
	flagSet.StringVar(&logFile, "log-file", cfg.LogFile, "append log output to this file")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}

	// The TUI owns the terminal, so logs only go to a file.
	log.SetOutput(io.Discard)
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	session, err := game.ParseSession(pageURL)
	if err != nil {
		return err
	}
	if flagSet.Changed("join") {
		session = session.WithJoin(joinKey)
	}
	if flagSet.Changed("watch") {
		session = session.WithWatch(watchKey)
	}

	// Unknown deployments stop here, before any connection is attempted.
	endpoint, err := cfg.Endpoints.Resolve(session.Host())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := websocket.Dial(ctx, endpoint, websocket.Options{
		HandshakeTimeout: cfg.HandshakeTimeout,
		WriteTimeout:     cfg.WriteTimeout,
		PingInterval:     cfg.PingInterval,
	})
	if err != nil {
		return err
	}
	defer client.CloseNormal()

	if err := client.Open(session.InitEvent()); err != nil {
		return err
	}
	log.Printf("[MAIN] Session started as %s from %s on %s", session.Role(), session.PageURL(), endpoint)

	program := tea.NewProgram(ui.NewModel(session, client, client), tea.WithAltScreen(), tea.WithContext(ctx))

	go func() {
		err := client.Listen(ctx, func(data []byte) {
			program.Send(ui.InboundMsg{Data: data})
		})
		program.Send(ui.ConnClosedMsg{Err: err})
	}()

	final, err := program.Run()
	if err != nil && ctx.Err() == nil {
		return err
	}
	if model, ok := final.(ui.Model); ok && model.Err() != nil {
		return model.Err()
	}
	return nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `connect4: play Connect Four against a remote opponent.

The page URL decides which server to talk to and which role to take:
no query starts a new game, ?join=KEY joins one as the second player and
?watch=KEY spectates.

Usage:
  connect4 [flags]

Examples:
  # Start a game against the local development server
  connect4

  # Join a friend's game
  connect4 --page "http://localhost:8000/?join=abc123"

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
