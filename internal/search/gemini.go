package search

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

type geminiBackend struct {
	client *genai.Client
	model  string
}

func newGeminiBackend(ctx context.Context, apiKey, model, baseURL string) (*geminiBackend, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	cc := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &geminiBackend{client: client, model: model}, nil
}

func (g *geminiBackend) name() string {
	return "gemini"
}

func (g *geminiBackend) ask(ctx context.Context, system, user string) (answer, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(user), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"responseText": {Type: genai.TypeString},
				"businessIds":  {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			},
			Required: []string{"responseText", "businessIds"},
		},
	})
	if err != nil {
		return answer{}, err
	}
	text := resp.Text()
	if text == "" {
		return answer{}, errors.New("gemini returned an empty answer")
	}
	return decodeAnswer(text)
}
