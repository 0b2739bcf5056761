package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	endpoint := flag.String("endpoint", "http://localhost:8080/mcp/stream", "MCP stream endpoint")
	query := flag.String("query", "software engineer", "job_search query")
	location := flag.String("location", "Austin, TX", "job_search location")
	flag.Parse()

	ctx := context.Background()

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "jobs-client-test-client",
		Version: "0.1.0",
	}, nil)

	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{
		Endpoint: *endpoint,
	}, nil)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer func() { _ = session.Close() }()

	log.Printf("Connected to server (session ID: %s)\n", session.ID())

	testListTools(ctx, session)
	testJobProviders(ctx, session)
	testJobSearch(ctx, session, *query, *location)

	fmt.Println("\nAll tests completed")
}

func testListTools(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: tools/list")

	res, err := session.ListTools(ctx, nil)
	if err != nil {
		log.Printf("tools/list failed: %v", err)
		return
	}

	for _, t := range res.Tools {
		fmt.Printf("- %s: %s\n", t.Name, t.Description)
	}
}

func testJobProviders(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: job_providers")

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "job_providers",
		Arguments: map[string]any{},
	})
	if err != nil {
		log.Printf("job_providers failed: %v", err)
		return
	}

	printResult(result)
	fmt.Println("job_providers passed")
}

func testJobSearch(ctx context.Context, session *mcp.ClientSession, query, location string) {
	fmt.Println("\nTEST: job_search")

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name: "job_search",
		Arguments: map[string]any{
			"query":    query,
			"location": location,
			"limit":    5,
		},
	})
	if err != nil {
		log.Printf("job_search failed: %v", err)
		return
	}

	printResult(result)
	fmt.Println("job_search passed")
}

func printResult(res *mcp.CallToolResult) {
	if res.IsError {
		fmt.Println("(tool reported an error)")
	}
	for _, c := range res.Content {
		if txt, ok := c.(*mcp.TextContent); ok {
			fmt.Println(txt.Text)
		}
	}
}
