package service

import (
	"context"
	"fmt"
	"strings"

	"studypulse/internal/confidence"
	"studypulse/internal/model"
	"studypulse/internal/platform/logger"
	"studypulse/internal/repository"
)

// The disclaimer shown on medium and low confidence answers.
const answerDisclaimer = "This answer was generated automatically and may be incomplete. Please verify with your tutor."

// QAService answers student questions, scores each answer's
// trustworthiness and raises tutor escalations on low confidence.
type QAService struct {
	interactionRepo repository.InteractionRepo
	studentRepo     repository.StudentRepo
	generator       Generator
	thresholds      confidence.Thresholds
	broadcaster     Broadcaster
	log             *logger.Logger
}

// NewQAService creates a new QA service
func NewQAService(
	interactionRepo repository.InteractionRepo,
	studentRepo repository.StudentRepo,
	generator Generator,
	thresholds confidence.Thresholds,
	log *logger.Logger,
) *QAService {
	return &QAService{
		interactionRepo: interactionRepo,
		studentRepo:     studentRepo,
		generator:       generator,
		thresholds:      thresholds,
		log:             log,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *QAService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Ask answers a question, bands the answer's confidence and persists
// the interaction. Low confidence answers raise an escalation to the
// tutors in addition to the disclaimer.
func (s *QAService) Ask(ctx context.Context, studentID string, req *model.AskRequest) (*model.AskResponse, error) {
	if strings.TrimSpace(req.Question) == "" {
		return nil, fmt.Errorf("question is required: %w", ErrBadRequest)
	}

	draft, err := s.generator.AnswerQuestion(ctx, req.Subject, req.Question)
	if err != nil {
		return nil, fmt.Errorf("failed to draft answer: %w", err)
	}

	result, err := confidence.Score(confidence.Signals{
		SelfAssessment:     draft.SelfAssessment,
		ContextRelevance:   draft.ContextRelevance,
		QueryClarity:       draft.QueryClarity,
		AnswerCompleteness: draft.AnswerCompleteness,
	}, s.thresholds)
	if err != nil {
		return nil, err
	}

	decision := confidence.Decide(result.Label)

	answer := draft.Answer
	if decision.DisclaimerRequired {
		answer = answer + "\n\n" + answerDisclaimer
	}

	interaction := &model.Interaction{
		StudentID:           studentID,
		Subject:             req.Subject,
		Question:            req.Question,
		Answer:              answer,
		ConfidenceScore:     result.Score,
		ConfidenceLabel:     string(result.Label),
		EscalationRequired:  result.EscalationRequired,
		DisclaimerRequired:  decision.DisclaimerRequired,
		EscalationSuggested: decision.EscalationSuggested,
	}
	id, err := s.interactionRepo.Create(ctx, interaction)
	if err != nil {
		return nil, fmt.Errorf("failed to record interaction: %w", err)
	}

	if err := s.studentRepo.TouchActivity(ctx, studentID); err != nil {
		s.log.Warn("activity touch failed", "studentId", studentID, "error", err)
	}

	if result.EscalationRequired && s.broadcaster != nil {
		s.broadcaster.BroadcastToTutors("escalation_raised", map[string]interface{}{
			"interactionId": id,
			"studentId":     studentID,
			"subject":       req.Subject,
			"question":      req.Question,
			"confidence":    result.Score,
		})
	}

	return &model.AskResponse{
		InteractionID:       id,
		Answer:              answer,
		ConfidenceScore:     result.Score,
		ConfidenceLabel:     string(result.Label),
		EscalationRequired:  result.EscalationRequired,
		DisclaimerRequired:  decision.DisclaimerRequired,
		EscalationSuggested: decision.EscalationSuggested,
	}, nil
}

// History returns a student's recent Q&A interactions
func (s *QAService) History(ctx context.Context, studentID string, limit int) ([]*model.Interaction, error) {
	return s.interactionRepo.GetByStudent(ctx, studentID, limit)
}

// Escalations returns recent low confidence interactions for tutors
func (s *QAService) Escalations(ctx context.Context, subject string, limit int) ([]*model.Interaction, error) {
	return s.interactionRepo.GetEscalations(ctx, subject, limit)
}
