// Package gemini generates short video comments through the Gemini REST API,
// falling back to a fixed list of pre-written comments so that comment
// generation can never block or fail the automation.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	modelName      = "gemini-pro"

	// maxCommentLen is the YouTube comment length cap applied to output.
	maxCommentLen = 280
	// maxDescriptionLen truncates the video description in the prompt.
	maxDescriptionLen = 500
)

// fallbackComments are used whenever generation fails or returns nothing.
var fallbackComments = []string{
	"Great content! Thanks for sharing! 👍",
	"Really helpful video, keep up the good work! 🔥",
	"Love this! Can't wait to try it out myself! ✨",
	"Amazing work as always! Very inspiring! 💪",
	"This is exactly what I needed to see today! 🙌",
	"Fantastic video! Really well explained! 👏",
	"Such valuable content! Thank you for this! ❤️",
	"Really enjoyed watching this! Great job! 🌟",
}

type Generator struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewGenerator(apiKey string) *Generator {
	return &Generator{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// NewGeneratorWithBase is used by tests to point at a stub server.
func NewGeneratorWithBase(apiKey, baseURL string, client *http.Client) *Generator {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Generator{apiKey: apiKey, baseURL: baseURL, httpClient: client}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate produces a comment for the given video. It never returns an error
// to callers: any failure yields a random fallback comment instead.
func (g *Generator) Generate(ctx context.Context, title, description, operatorPrompt string) string {
	text, err := g.generate(ctx, buildPrompt(title, description, operatorPrompt))
	if err != nil || text == "" {
		if err != nil {
			log.Printf("gemini: generation failed, using fallback: %v", err)
		}
		return fallbackComments[rand.Intn(len(fallbackComments))]
	}
	return truncate(strings.TrimSpace(text), maxCommentLen)
}

// TestConnection issues a trivial prompt to verify reachability. Used only
// for status reporting, never to gate automation.
func (g *Generator) TestConnection(ctx context.Context) bool {
	text, err := g.generate(ctx, "Say 'Hello' in one word")
	return err == nil && strings.TrimSpace(text) != ""
}

func (g *Generator) generate(ctx context.Context, prompt string) (string, error) {
	reqBody, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", g.baseURL, modelName, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Printf("gemini: failed to close response body: %v", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini API returned status %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini response contained no candidates")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}

func buildPrompt(title, description, operatorPrompt string) string {
	if description == "" {
		description = "No description available"
	}
	description = truncate(description, maxDescriptionLen)

	var b strings.Builder
	fmt.Fprintf(&b, "Video Title: %q\n", title)
	fmt.Fprintf(&b, "Video Description: %q\n\n", description)
	b.WriteString(operatorPrompt)
	b.WriteString("\n\nGenerate a single, short comment (1-2 sentences max) that:\n")
	b.WriteString("- Is encouraging and positive\n")
	b.WriteString("- Shows genuine interest in the content\n")
	b.WriteString("- Uses casual, natural language\n")
	b.WriteString("- Avoids obviously AI-generated phrases\n")
	b.WriteString("- Is relevant to the video topic\n")
	b.WriteString("- Includes appropriate emojis if suitable\n\n")
	b.WriteString("Return only the comment text, nothing else.")
	return b.String()
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
