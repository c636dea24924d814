package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	vertexgenai "cloud.google.com/go/vertexai/genai"
)

// generateTimeout bounds a single model call so a stalled upstream cannot
// hold an interview turn open indefinitely.
const generateTimeout = 90 * time.Second

type VertexGemini struct {
	client       *vertexgenai.Client
	defaultModel string
}

func NewVertexGemini(ctx context.Context, projectID, location, defaultModel string) (*VertexGemini, error) {
	c, err := vertexgenai.NewClient(ctx, projectID, location)
	if err != nil {
		return nil, err
	}

	if defaultModel == "" {
		defaultModel = "gemini-1.5-flash"
	}
	return &VertexGemini{client: c, defaultModel: defaultModel}, nil
}

func (v *VertexGemini) Close() error { return v.client.Close() }

func (v *VertexGemini) Generate(ctx context.Context, role RoleConfig, history []ChatMessage) (string, error) {
	if len(history) == 0 {
		return "", errors.New("llm: empty history")
	}

	name := role.Model
	if name == "" {
		name = v.defaultModel
	}

	m := v.client.GenerativeModel(name)
	if role.SystemPrompt != "" {
		m.SystemInstruction = &vertexgenai.Content{
			Parts: []vertexgenai.Part{vertexgenai.Text(role.SystemPrompt)},
		}
	}
	m.SetTemperature(role.Temperature)
	if role.MaxTokens > 0 {
		m.SetMaxOutputTokens(role.MaxTokens)
	}

	ctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	cs := m.StartChat()
	for _, msg := range history[:len(history)-1] {
		cs.History = append(cs.History, &vertexgenai.Content{
			Role:  geminiRole(msg.Role),
			Parts: []vertexgenai.Part{vertexgenai.Text(msg.Content)},
		})
	}

	resp, err := cs.SendMessage(ctx, vertexgenai.Text(history[len(history)-1].Content))
	if err != nil {
		return "", err
	}
	return collectText(resp), nil
}

func geminiRole(role string) string {
	if role == RoleAssistant {
		return "model"
	}
	return "user"
}

func collectText(resp *vertexgenai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(vertexgenai.Text); ok {
				sb.WriteString(string(t))
			}
		}
	}
	return sb.String()
}
