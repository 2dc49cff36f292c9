package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

type AIService struct {
	client *openai.Client
}

// ParsedInterview holds the interview fields extracted from pasted text.
type ParsedInterview struct {
	CompanyName   string `json:"companyName"`
	JobTitle      string `json:"jobTitle"`
	Stage         string `json:"stage"`
	Date          string `json:"date"`
	Interviewer   string `json:"interviewer"`
	InterviewLink string `json:"interviewLink"`
	LocationType  string `json:"locationType"`
	Notes         string `json:"notes"`
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// ParsePosting extracts interview creation fields from a pasted job posting
// or scheduling email using OpenAI GPT.
func (s *AIService) ParsePosting(ctx context.Context, text string) (*ParsedInterview, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	currentTime := time.Now().Format("2006-01-02 15:04:05")
	prompt := fmt.Sprintf(`You extract job-interview details from pasted text (job postings, scheduling emails, recruiter messages).

Current time: %s

Text:
%s

Return a single JSON object with exactly these keys:
{
  "companyName": "the hiring company, empty string if unknown",
  "jobTitle": "the role title, empty string if unknown",
  "stage": "one of: Applied, Phone Screen, Technical Interview, Technical Test, Onsite Interview, Final Round, Offer — pick the closest, default Applied",
  "date": "interview or deadline datetime in ISO8601 (e.g. 2025-10-28T14:00:00Z), empty string if none given; resolve relative dates like 'next Tuesday' against the current time",
  "interviewer": "interviewer name, empty string if unknown",
  "interviewLink": "meeting URL if present, else empty string",
  "locationType": "phone if a phone call, link if a meeting URL is given, else empty string",
  "notes": "one short sentence of anything else useful, else empty string"
}

Rules:
- Return JSON only, no explanation text
- Never invent values; use empty strings for anything the text does not state`, currentTime, text)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)

	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var parsed ParsedInterview
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w", err)
	}

	return &parsed, nil
}
