// Package extractor implements the semantic fallback for notification text
// that no deterministic rule recognizes.
package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/carson-networks/spendwatch/internal/parser"
)

// DefaultModelName is the Gemini model used for field extraction.
const DefaultModelName = "gemini-2.0-flash"

const extractionPrompt = "You are a payment notification parser.\n\n" +
	"Task:\n" +
	"- Extract the transaction facts from the notification text below.\n" +
	"- Output STRICT JSON only (no comments, no extra text).\n" +
	"- Output a single JSON object.\n\n" +
	"The object must have these fields:\n" +
	"- \"amount\": number (the transaction amount, always positive)\n" +
	"- \"counterparty\": string (who the money went to or came from)\n" +
	"- \"direction\": string, \"income\" or \"expense\"\n" +
	"- \"method\": string, one of \"card\", \"upi\", \"bank\", \"unknown\"\n" +
	"- \"category\": string (a short spending category, or \"Uncategorized\")\n\n" +
	"Return ONLY valid raw JSON.\n" +
	"Do NOT wrap the response in code fences.\n" +
	"Output must begin with \"{\" and end with \"}\".\n\n" +
	"Notification:\n"

// Gemini calls the Gemini API to recover structured fields from free text.
// The client is injected at construction; there is no package-level state.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates the extractor. Credentials come from the environment the
// same way the genai SDK resolves them everywhere else.
func NewGemini(ctx context.Context) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("extractor: create genai client: %w", err)
	}
	return &Gemini{client: client, model: DefaultModelName}, nil
}

// Extract sends the raw message to the model and parses the JSON reply.
func (g *Gemini) Extract(ctx context.Context, rawMessage string) (*parser.Fields, error) {
	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: extractionPrompt + rawMessage},
			},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("extractor: generate content: %w", err)
	}

	rawText := resp.Text()
	if rawText == "" {
		return nil, fmt.Errorf("extractor: empty response from model")
	}

	clean := cleanModelJSON(rawText)

	var fields parser.Fields
	if err := json.Unmarshal([]byte(clean), &fields); err != nil {
		return nil, fmt.Errorf("extractor: unmarshal JSON: %w\nraw response: %s", err, rawText)
	}
	return &fields, nil
}

// cleanModelJSON strips Markdown fences and surrounding junk when the model
// ignores the formatting instructions.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}

	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	s = strings.TrimSpace(s)

	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}

	return s
}
