package agent

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultModelName = "gemini-2.5-flash"

// CustomerProfile is injected into the prompt so the assistant never has to
// ask the customer for contact details.
type CustomerProfile struct {
	Name  string
	Phone string
}

// Responder produces the next seller turn for a conversation. The history is
// the flat prefixed-line format the chat endpoint receives, newest last, with
// the current customer message already appended.
type Responder interface {
	Reply(ctx context.Context, history []string, customer CustomerProfile, allowedLocations []string) (string, error)
}

// Gemini is the production Responder backed by the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini builds a Gemini-backed responder.
func NewGemini(ctx context.Context, apiKey string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is empty")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Gemini{client: client, model: defaultModelName}, nil
}

// Close releases the underlying API client.
func (g *Gemini) Close() {
	if g.client != nil {
		if err := g.client.Close(); err != nil {
			log.Printf("Error closing GenAI client: %v", err)
		}
	}
}

// Reply assembles the full selling prompt and asks the model for the next
// seller line. The whole conversation travels as one text blob because the
// history arrives pre-flattened from the wire.
func (g *Gemini) Reply(ctx context.Context, history []string, customer CustomerProfile, allowedLocations []string) (string, error) {
	prompt := BuildPrompt(history, customer, allowedLocations)

	model := g.client.GenerativeModel(g.model)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		} else {
			log.Printf("Gemini response part was not text: %T", part)
		}
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("gemini returned a non-text response")
	}

	return strings.TrimSpace(text.String()), nil
}

// BuildPrompt renders the system prompt with the caller's allowed locations,
// the customer profile block, and the flattened conversation, ending with the
// seller cue the model completes.
func BuildPrompt(history []string, customer CustomerProfile, allowedLocations []string) string {
	allowed := "لا توجد مواقع مقيدة"
	if len(allowedLocations) > 0 {
		allowed = strings.Join(allowedLocations, ", ")
	}

	var b strings.Builder
	b.WriteString(strings.ReplaceAll(systemPrompt, locationsPlaceholder, allowed))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("الاسم: %s\nالجوال: %s\n", customer.Name, customer.Phone))
	b.WriteString(strings.Join(history, "\n"))
	b.WriteString("\nالبائع:")
	return b.String()
}
