package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/savelxev/biteplan-backend/internal/domain"
	"google.golang.org/api/option"
)

type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewClient(apiKey string) (*Client, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-1.5-pro")
	// numbers, not prose: keep sampling tight
	model.SetTemperature(0.2)

	return &Client{
		client: client,
		model:  model,
	}, nil
}

func (c *Client) Close() {
	c.client.Close()
}

const proposalInstruction = `
Task: propose daily nutrition goals for this user and goal weight.
Output: a strict JSON object with exactly these keys:
{"dailyCalorieGoal": number, "proteinGoal": number, "carbsGoal": number, "fatGoal": number, "fiberGoal": number, "reasoning": string}
All goals are per day; protein/carbs/fat/fiber in grams. "reasoning" is 1-2
sentences explaining the calorie choice. No markdown, no extra keys.`

// ProposeTargets asks Gemini for new nutrition goals given the caller-built
// profile context. Transport errors return as-is; a response that cannot be
// decoded wraps domain.ErrInvalidProposal.
func (c *Client) ProposeTargets(ctx context.Context, goalContext string) (*domain.TargetProposal, error) {
	if c == nil || c.model == nil {
		return nil, errors.New("gemini client not configured")
	}
	prompt := goalContext + proposalInstruction

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, errors.New("no content generated")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	responseText := strings.TrimSpace(sb.String())
	// Models occasionally wrap the object in a code fence despite the
	// instruction
	responseText = strings.TrimPrefix(responseText, "```json")
	responseText = strings.TrimPrefix(responseText, "```")
	responseText = strings.TrimSuffix(responseText, "```")
	responseText = strings.TrimSpace(responseText)

	var proposal domain.TargetProposal
	if err := json.Unmarshal([]byte(responseText), &proposal); err != nil {
		return nil, fmt.Errorf("%w: decoding engine response: %v", domain.ErrInvalidProposal, err)
	}

	return &proposal, nil
}
