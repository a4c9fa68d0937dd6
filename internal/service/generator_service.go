package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"studypulse/internal/config"
	"studypulse/internal/model"
	"studypulse/internal/platform/logger"
)

// Generator produces AI content: Q&A answers with confidence signals,
// practice items, session summaries and nudge copy.
type Generator interface {
	AnswerQuestion(ctx context.Context, subject, question string) (*model.DraftAnswer, error)
	GenerateItems(ctx context.Context, subject string, difficulty, count int) ([]*model.PracticeItem, error)
	SummarizeSession(ctx context.Context, session *model.Session, notes string) (string, error)
	NudgeMessage(ctx context.Context, student *model.Student, kind model.NudgeKind) (string, error)
}

// GeneratorService talks to an OpenAI-compatible API, with a
// deterministic mock fallback when no key is configured or a call
// fails. The mock keeps local development working offline.
type GeneratorService struct {
	cfg    *config.AIConfig
	client *openai.Client
	log    *logger.Logger
}

// NewGeneratorService creates a new generator service
func NewGeneratorService(cfg *config.AIConfig, log *logger.Logger) *GeneratorService {
	var client *openai.Client
	if cfg.IsEnabled() {
		clientCfg := openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			clientCfg.BaseURL = cfg.BaseURL
		}
		client = openai.NewClientWithConfig(clientCfg)
	}
	return &GeneratorService{
		cfg:    cfg,
		client: client,
		log:    log,
	}
}

// AnswerQuestion answers a student question and self-reports the four
// confidence sub-signals alongside the answer text.
func (s *GeneratorService) AnswerQuestion(ctx context.Context, subject, question string) (*model.DraftAnswer, error) {
	if !s.cfg.IsEnabled() {
		return s.mockAnswer(subject, question), nil
	}

	prompt := fmt.Sprintf(`You are a tutoring assistant for the subject %q.
Answer the student's question and assess your own answer.
Respond with JSON only:
{"answer": "...", "selfAssessment": 0.0-1.0, "contextRelevance": 0.0-1.0, "queryClarity": 0.0-1.0, "answerCompleteness": 0.0-1.0}

selfAssessment: how confident you are the answer is correct.
contextRelevance: how well the question fits the subject.
queryClarity: how unambiguous the question was.
answerCompleteness: how fully the answer addresses the question.

Question: %s`, subject, question)

	raw, err := s.complete(ctx, s.cfg.Models.Answer, prompt)
	if err != nil {
		s.log.Warn("answer generation failed, using mock", "error", err)
		return s.mockAnswer(subject, question), nil
	}

	var draft model.DraftAnswer
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		s.log.Warn("answer response unparseable, using mock", "error", err)
		return s.mockAnswer(subject, question), nil
	}

	clampSignals(&draft)
	return &draft, nil
}

// GenerateItems produces practice items for a subject at a difficulty
func (s *GeneratorService) GenerateItems(ctx context.Context, subject string, difficulty, count int) ([]*model.PracticeItem, error) {
	if !s.cfg.IsEnabled() {
		return s.mockItems(subject, difficulty, count), nil
	}

	prompt := fmt.Sprintf(`Generate %d practice questions for the subject %q at difficulty %d on a 1-10 scale.
Respond with JSON only:
{"items": [{"prompt": "...", "answer": "...", "hints": ["...", "..."], "optimalTimeSec": 60}]}`,
		count, subject, difficulty)

	raw, err := s.complete(ctx, s.cfg.Models.Practice, prompt)
	if err != nil {
		s.log.Warn("item generation failed, using mock", "error", err)
		return s.mockItems(subject, difficulty, count), nil
	}

	var parsed struct {
		Items []struct {
			Prompt         string   `json:"prompt"`
			Answer         string   `json:"answer"`
			Hints          []string `json:"hints"`
			OptimalTimeSec float64  `json:"optimalTimeSec"`
		} `json:"items"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil || len(parsed.Items) == 0 {
		return s.mockItems(subject, difficulty, count), nil
	}

	items := make([]*model.PracticeItem, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		optimal := it.OptimalTimeSec
		if optimal <= 0 {
			optimal = 60
		}
		items = append(items, &model.PracticeItem{
			Subject:        subject,
			Difficulty:     difficulty,
			Prompt:         it.Prompt,
			Answer:         it.Answer,
			Hints:          it.Hints,
			OptimalTimeSec: optimal,
			AIGenerated:    true,
		})
	}
	return items, nil
}

// SummarizeSession turns a tutor's raw notes into a short session summary
func (s *GeneratorService) SummarizeSession(ctx context.Context, session *model.Session, notes string) (string, error) {
	if !s.cfg.IsEnabled() {
		return s.mockSummary(session, notes), nil
	}

	prompt := fmt.Sprintf(`Summarize this tutoring session in 2-3 sentences for the student's record.
Subject: %s
Tutor notes: %s`, session.Subject, notes)

	raw, err := s.complete(ctx, s.cfg.Models.Summary, prompt)
	if err != nil {
		s.log.Warn("summary generation failed, using mock", "error", err)
		return s.mockSummary(session, notes), nil
	}
	return strings.TrimSpace(raw), nil
}

// NudgeMessage writes a short nudge for a student
func (s *GeneratorService) NudgeMessage(ctx context.Context, student *model.Student, kind model.NudgeKind) (string, error) {
	if !s.cfg.IsEnabled() {
		return s.mockNudge(student, kind), nil
	}

	prompt := fmt.Sprintf(`Write one short, friendly sentence nudging a student named %s back to practice. Reason: %s. No emoji.`,
		student.Name, kind)

	raw, err := s.complete(ctx, s.cfg.Models.Nudge, prompt)
	if err != nil {
		return s.mockNudge(student, kind), nil
	}
	return strings.TrimSpace(raw), nil
}

func (s *GeneratorService) complete(ctx context.Context, modelName, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(s.cfg.TimeoutMS)*time.Millisecond)
	defer cancel()

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: modelName,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}
	content := resp.Choices[0].Message.Content
	// Models sometimes wrap JSON in a code fence despite instructions.
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content), nil
}

func clampSignals(d *model.DraftAnswer) {
	for _, v := range []*float64{&d.SelfAssessment, &d.ContextRelevance, &d.QueryClarity, &d.AnswerCompleteness} {
		if math.IsNaN(*v) || *v < 0 {
			*v = 0
		}
		if *v > 1 {
			*v = 1
		}
	}
}

// Mock fallbacks. Deterministic so the request flow is testable
// without an API key.

func (s *GeneratorService) mockAnswer(subject, question string) *model.DraftAnswer {
	words := len(strings.Fields(question))
	clarity := 0.5
	if strings.Contains(question, "?") {
		clarity += 0.2
	}
	if words >= 5 {
		clarity += 0.2
	}
	if clarity > 1 {
		clarity = 1
	}
	return &model.DraftAnswer{
		Answer:             fmt.Sprintf("Here is a brief explanation for your %s question: %s", subject, question),
		SelfAssessment:     0.6,
		ContextRelevance:   0.7,
		QueryClarity:       clarity,
		AnswerCompleteness: 0.6,
	}
}

func (s *GeneratorService) mockItems(subject string, difficulty, count int) []*model.PracticeItem {
	items := make([]*model.PracticeItem, 0, count)
	for i := 0; i < count; i++ {
		items = append(items, &model.PracticeItem{
			Subject:        subject,
			Difficulty:     difficulty,
			Prompt:         fmt.Sprintf("Practice question %d for %s (difficulty %d)", i+1, subject, difficulty),
			Answer:         "See worked solution",
			Hints:          []string{"Break the problem into steps", "Check the definitions involved"},
			OptimalTimeSec: float64(30 + difficulty*15),
			AIGenerated:    true,
		})
	}
	return items
}

func (s *GeneratorService) mockSummary(session *model.Session, notes string) string {
	if notes == "" {
		return fmt.Sprintf("Covered %s fundamentals; no tutor notes recorded.", session.Subject)
	}
	if len(notes) > 200 {
		notes = notes[:200] + "..."
	}
	return fmt.Sprintf("Session on %s. Key points: %s", session.Subject, notes)
}

func (s *GeneratorService) mockNudge(student *model.Student, kind model.NudgeKind) string {
	switch kind {
	case model.NudgeStreak:
		return fmt.Sprintf("Nice streak, %s - keep it going with a quick practice round today.", student.Name)
	case model.NudgeEscalation:
		return fmt.Sprintf("%s, your tutor looked at your recent question - check the follow-up notes.", student.Name)
	default:
		return fmt.Sprintf("Hey %s, it has been a while - a short practice session will keep your rating moving.", student.Name)
	}
}
