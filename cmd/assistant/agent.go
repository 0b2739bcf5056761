package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/api/option"
)

const maxSteps = 10

const systemPromptTemplate = `You are a job search assistant backed by a multi-provider job search server.

AVAILABLE TOOLS:
- job_providers: List the configured job boards and the listing fields each one maps
- job_search: Search every configured job board (Indeed, Adzuna) and store the normalized postings
- persist_keywords: Tag stored postings (by job id) with skills and keywords you extracted from them
- sheets_export: Write rows or stored jobs (by job_ids) to Google Sheets%s

TOOL USAGE:
- For "find jobs", "search for", "show me jobs": call job_search with a short keyword query.
  Put the place in "location" (e.g. "Austin, TX"), skills in "skills", and set "remote" only when asked.
- The job_search response reports every provider under "sources". When a provider has an error
  (for example a missing publisher key), tell the user which provider failed and why.
- For "which job boards", "what sources": call job_providers.
- When asked to tag or remember skills for postings, extract short keywords from the job_search results
  and call persist_keywords with one record per job id.
- To save results, call sheets_export with the job ids returned by job_search.

RULES:
1. Never invent postings, ids or counts. Only use tool responses.
2. Answer questions about your capabilities directly without calling tools.
3. If a tool fails, explain the error in plain language and suggest a next step.`

// Agent relays a Gemini conversation to MCP tools
type Agent struct {
	session  *mcp.ClientSession
	gemini   *genai.Client
	model    *genai.GenerativeModel
	tools    []*mcp.Tool
	sheetsID string
}

// NewAgent connects to the MCP server and configures the Gemini model with its tools
func NewAgent(ctx context.Context, endpoint, apiKey, model, sheetsID string) (*Agent, error) {
	client := mcp.NewClient(&mcp.Implementation{
		Name:    "jobs-client-assistant",
		Version: "0.1.0",
	}, nil)

	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{Endpoint: endpoint}, nil)
	if err != nil {
		return nil, fmt.Errorf("connect to MCP server at %s: %w", endpoint, err)
	}

	toolsResp, err := session.ListTools(ctx, &mcp.ListToolsParams{})
	if err != nil {
		_ = session.Close()
		return nil, fmt.Errorf("list tools: %w", err)
	}

	gemini, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		_ = session.Close()
		return nil, fmt.Errorf("initialize Gemini: %w", err)
	}

	m := gemini.GenerativeModel(model)
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt(sheetsID))},
	}
	m.Tools = geminiTools(toolsResp.Tools)

	return &Agent{
		session:  session,
		gemini:   gemini,
		model:    m,
		tools:    toolsResp.Tools,
		sheetsID: sheetsID,
	}, nil
}

// Tools returns the tools advertised by the server
func (a *Agent) Tools() []*mcp.Tool {
	return a.tools
}

// SessionID returns the MCP session identifier
func (a *Agent) SessionID() string {
	return a.session.ID()
}

func (a *Agent) Close() error {
	return errors.Join(a.gemini.Close(), a.session.Close())
}

// Ask runs one user request to completion, calling tools as the model asks,
// and returns the model's final text
func (a *Agent) Ask(ctx context.Context, query string) (string, error) {
	chat := a.model.StartChat()
	parts := []genai.Part{genai.Text(query)}

	for step := 1; step <= maxSteps; step++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		resp, err := chat.SendMessage(ctx, parts...)
		if err != nil {
			return "", fmt.Errorf("gemini: %w", err)
		}

		calls, text := splitResponse(resp)
		if len(calls) == 0 {
			if text != "" {
				return text, nil
			}
			if len(resp.Candidates) == 0 {
				return "", fmt.Errorf("gemini: empty response")
			}
			parts = []genai.Part{genai.Text("Continue.")}
			continue
		}

		parts = make([]genai.Part, 0, len(calls))
		for _, fc := range calls {
			fmt.Printf("[tool] %s\n", fc.Name)
			parts = append(parts, genai.FunctionResponse{
				Name:     fc.Name,
				Response: a.callTool(ctx, fc.Name, fc.Args),
			})
		}
	}

	return "", fmt.Errorf("no answer after %d steps", maxSteps)
}

func (a *Agent) callTool(ctx context.Context, name string, args map[string]any) map[string]any {
	if args == nil {
		args = map[string]any{}
	}

	toolCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	res, err := a.session.CallTool(toolCtx, &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		return map[string]any{"error": err.Error()}
	}
	return toolResponse(res)
}

func splitResponse(resp *genai.GenerateContentResponse) ([]genai.FunctionCall, string) {
	var (
		calls []genai.FunctionCall
		text  strings.Builder
	)
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, part := range c.Content.Parts {
			switch p := part.(type) {
			case genai.FunctionCall:
				calls = append(calls, p)
			case genai.Text:
				text.WriteString(string(p))
			}
		}
	}
	return calls, text.String()
}

// toolResponse flattens an MCP tool result into a Gemini function response
func toolResponse(res *mcp.CallToolResult) map[string]any {
	var texts []string
	for _, c := range res.Content {
		if t, ok := c.(*mcp.TextContent); ok {
			texts = append(texts, t.Text)
		}
	}

	out := map[string]any{"result": "ok"}
	if len(texts) > 0 {
		out["result"] = strings.Join(texts, "\n")
	}
	if res.StructuredContent != nil {
		out["data"] = res.StructuredContent
	}
	if res.IsError {
		out["error"] = out["result"]
	}
	return out
}

func systemPrompt(sheetsID string) string {
	if sheetsID == "" {
		return fmt.Sprintf(systemPromptTemplate, "")
	}
	return fmt.Sprintf(systemPromptTemplate, fmt.Sprintf(
		"\n\nFor sheets_export ALWAYS use spreadsheet %[1]s, e.g. {\"job_ids\": [\"id1\"], \"sheet\": {\"spreadsheet_id\": %[1]q, \"tab\": \"Jobs\"}}. Do not ask the user for it.",
		sheetsID,
	))
}

func geminiTools(tools []*mcp.Tool) []*genai.Tool {
	out := make([]*genai.Tool, 0, len(tools))
	for _, t := range tools {
		out = append(out, &genai.Tool{
			FunctionDeclarations: []*genai.FunctionDeclaration{{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  convertSchema(t.InputSchema),
			}},
		})
	}
	return out
}

// convertSchema maps a decoded JSON schema onto the Gemini schema subset
func convertSchema(schema any) *genai.Schema {
	m, ok := schema.(map[string]any)
	if !ok {
		return &genai.Schema{Type: genai.TypeObject}
	}

	out := &genai.Schema{Type: schemaType(m["type"])}

	if desc, ok := m["description"].(string); ok {
		out.Description = desc
	}

	if required, ok := m["required"].([]any); ok {
		for _, r := range required {
			if s, ok := r.(string); ok {
				out.Required = append(out.Required, s)
			}
		}
	}

	if props, ok := m["properties"].(map[string]any); ok {
		out.Properties = make(map[string]*genai.Schema, len(props))
		for name, p := range props {
			out.Properties[name] = convertSchema(p)
		}
	}

	if items, ok := m["items"]; ok {
		out.Items = convertSchema(items)
	}

	return out
}

// schemaType accepts "type" as a string or as a list such as ["null", "array"]
func schemaType(v any) genai.Type {
	switch t := v.(type) {
	case string:
		switch t {
		case "string":
			return genai.TypeString
		case "integer":
			return genai.TypeInteger
		case "number":
			return genai.TypeNumber
		case "boolean":
			return genai.TypeBoolean
		case "array":
			return genai.TypeArray
		}
	case []any:
		for _, e := range t {
			if s, ok := e.(string); ok && s != "null" {
				return schemaType(s)
			}
		}
	}
	return genai.TypeObject
}
