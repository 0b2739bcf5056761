package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	endpoint := streamEndpoint(os.Getenv("MCP_URL"))

	apiKey := os.Getenv("GOOGLE_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		log.Fatal("GOOGLE_API_KEY or GEMINI_API_KEY environment variable must be set")
	}

	model := os.Getenv("GOOGLE_MODEL")
	if model == "" {
		model = "gemini-2.5-flash"
	}

	sheetsID := os.Getenv("GOOGLE_SHEETS_ID")

	agent, err := NewAgent(ctx, endpoint, apiKey, model, sheetsID)
	if err != nil {
		log.Fatalf("failed to start assistant: %v", err)
	}
	defer func() { _ = agent.Close() }()

	fmt.Printf("Connected to %s (session %s), model %s\n", endpoint, agent.SessionID(), model)
	for _, t := range agent.Tools() {
		fmt.Printf("  - %s\n", t.Name)
	}

	if len(os.Args) > 1 {
		answer, err := agent.Ask(ctx, strings.Join(os.Args[1:], " "))
		if err != nil {
			log.Fatalf("error: %v", err)
		}
		fmt.Println(answer)
		return
	}

	fmt.Println("\nAsk for jobs, e.g. \"golang jobs in Austin, TX\". Type 'quit' to exit.")

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	for {
		fmt.Print("\n> ")

		select {
		case <-ctx.Done():
			fmt.Println()
			return
		case line, ok := <-lines:
			if !ok {
				return
			}

			line = strings.TrimSpace(line)
			switch strings.ToLower(line) {
			case "":
				continue
			case "q", "quit", "exit":
				return
			}

			answer, err := agent.Ask(ctx, line)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return
				}
				fmt.Printf("error: %v\n", err)
				continue
			}
			fmt.Println(answer)
		}
	}
}

// streamEndpoint normalizes a server URL to its MCP stream path
func streamEndpoint(raw string) string {
	if raw == "" {
		raw = "http://localhost:8080"
	}
	if strings.HasSuffix(raw, "/mcp/stream") {
		return raw
	}
	return strings.TrimSuffix(raw, "/") + "/mcp/stream"
}
