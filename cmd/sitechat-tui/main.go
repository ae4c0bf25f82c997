// ABOUTME: Terminal client for sitechat, driving the session core against a gateway
// ABOUTME: Readline-style loop with conversation commands and persisted session state

package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/sitechat/sitechat/internal/client"
	"github.com/sitechat/sitechat/internal/session"
	"github.com/sitechat/sitechat/internal/store"
)

func main() {
	configPath := flag.String("config", defaultConfigPath(), "Path to the TOML config file")
	server := flag.String("server", "", "Gateway URL (overrides config)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, *configPath, *server); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\nGoodbye!")
}

func run(ctx context.Context, configPath, serverOverride string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if serverOverride != "" {
		cfg.ServerURL = serverOverride
	}

	// Keep slog noise out of the transcript
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	st, err := store.NewSQLiteStore(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("opening session store: %w", err)
	}
	defer st.Close()

	state := store.Bootstrap(ctx, st, cfg.Greeting, logger)
	chatClient := client.New(cfg.ServerURL, logger)
	ctrl := session.NewController(state, st, chatClient, logger,
		session.WithWindowLimit(cfg.HistoryLimit),
	)

	fmt.Printf("sitechat connected to %s\n", cfg.ServerURL)
	fmt.Println("Type a message and press Enter. /help for commands. Ctrl+C to quit.")

	snap := ctrl.Snapshot()
	printConversation(activeConversation(snap))

	return loop(ctx, ctrl)
}

func loop(ctx context.Context, ctrl *session.Controller) error {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")

		inputCh := make(chan string, 1)
		errCh := make(chan error, 1)
		go func() {
			if scanner.Scan() {
				inputCh <- scanner.Text()
			} else {
				errCh <- scanner.Err()
			}
		}()

		var input string
		select {
		case <-ctx.Done():
			return nil
		case err := <-errCh:
			return err
		case input = <-inputCh:
		}

		if strings.HasPrefix(strings.TrimSpace(input), "/") {
			if quit := command(ctx, ctrl, strings.TrimSpace(input)); quit {
				return nil
			}
			continue
		}

		send(ctx, ctrl, input)
	}
}

// send runs one message through the controller and prints the result.
// Remote failures come back as ordinary assistant messages, so the only
// errors here are validation no-ops.
func send(ctx context.Context, ctrl *session.Controller, input string) {
	dimText.Println("Assistant is typing...")
	if err := ctrl.Send(ctx, input); err != nil {
		switch err {
		case session.ErrEmptyMessage:
			// nothing to do
		case session.ErrSendInFlight:
			dimText.Println("Still waiting on the previous message.")
		default:
			fmt.Fprintf(os.Stderr, "send failed: %v\n", err)
		}
		return
	}

	snap := ctrl.Snapshot()
	conv := activeConversation(snap)
	// Print the user message and the reply just appended
	if n := len(conv.Messages); n >= 2 {
		printMessage(conv.Messages[n-2])
		printMessage(conv.Messages[n-1])
	}
}

func command(ctx context.Context, ctrl *session.Controller, input string) (quit bool) {
	parts := strings.Fields(input)
	switch parts[0] {
	case "/help":
		fmt.Println("Commands:")
		fmt.Println("  /new          Start a new conversation")
		fmt.Println("  /list         List conversations")
		fmt.Println("  /switch N     Switch to conversation N")
		fmt.Println("  /delete N     Delete conversation N")
		fmt.Println("  /quit         Exit")
	case "/new":
		conv := ctrl.NewConversation(ctx)
		printConversation(conv)
	case "/list":
		printList(ctrl.Snapshot())
	case "/switch":
		if conv, ok := pick(ctrl.Snapshot(), parts); ok {
			if err := ctrl.SwitchTo(ctx, conv.ID); err != nil {
				fmt.Fprintf(os.Stderr, "switch failed: %v\n", err)
				break
			}
			printConversation(activeConversation(ctrl.Snapshot()))
		}
	case "/delete":
		if conv, ok := pick(ctrl.Snapshot(), parts); ok {
			ctrl.DeleteConversation(ctx, conv.ID)
			printList(ctrl.Snapshot())
		}
	case "/quit", "/exit":
		return true
	default:
		fmt.Printf("Unknown command %s, try /help\n", parts[0])
	}
	return false
}

// pick resolves a 1-based list index argument to a conversation.
func pick(snap session.Snapshot, parts []string) (session.Conversation, bool) {
	if len(parts) < 2 {
		fmt.Println("Usage: " + parts[0] + " N")
		return session.Conversation{}, false
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil || n < 1 || n > len(snap.Conversations) {
		fmt.Printf("No conversation %s, try /list\n", parts[1])
		return session.Conversation{}, false
	}
	return snap.Conversations[n-1], true
}

func activeConversation(snap session.Snapshot) session.Conversation {
	for _, conv := range snap.Conversations {
		if conv.ID == snap.ActiveID {
			return conv
		}
	}
	return snap.Conversations[0]
}
