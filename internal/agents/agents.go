// Package agents implements the five pipeline stage agents: research,
// outline, per-section draft, SEO, and voice/tone. Each agent builds one
// provider request from typed input, decodes the response into its typed
// output, and reports failure as an error value; nothing panics across an
// agent boundary, and an unparseable response is a failure, not a crash.
package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dusk-indust/draftsmith/internal/provider"
)

// generate calls the provider and decodes its response as a JSON payload
// into out. Provider failure and parse failure are reported identically,
// prefixed with the agent name.
func generate(ctx context.Context, p provider.Provider, name string, req provider.Request, out any) error {
	raw, err := p.Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("%s agent: provider call: %w", name, err)
	}
	if err := decodePayload(raw, out); err != nil {
		return fmt.Errorf("%s agent: parse response: %w", name, err)
	}
	return nil
}

// decodePayload unmarshals a model response as JSON. Models frequently wrap
// payloads in markdown code fences despite instructions; fences are stripped
// before decoding.
func decodePayload(raw string, out any) error {
	body := strings.TrimSpace(raw)
	if strings.HasPrefix(body, "```") {
		if idx := strings.Index(body, "\n"); idx >= 0 {
			body = body[idx+1:]
		}
		body = strings.TrimSuffix(strings.TrimSpace(body), "```")
		body = strings.TrimSpace(body)
	}
	if body == "" {
		return fmt.Errorf("empty response")
	}
	if err := json.Unmarshal([]byte(body), out); err != nil {
		return fmt.Errorf("invalid JSON payload: %w", err)
	}
	return nil
}

// bulletList renders items as a markdown bullet list for prompt embedding.
// Returns fallback when items is empty.
func bulletList(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	var b strings.Builder
	for _, it := range items {
		fmt.Fprintf(&b, "- %s\n", it)
	}
	return b.String()
}
