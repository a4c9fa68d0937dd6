package service

// In-memory doubles for the Mongo repositories, Redis caches, the
// generator and the WebSocket broadcaster. Maps, no locking; tests are
// single-goroutine.

import (
	"context"
	"fmt"
	"sort"
	"time"

	"studypulse/internal/model"
)

func ratingKey(studentID, subject string) string {
	return studentID + "|" + subject
}

type fakeRatingRepo struct {
	ratings map[string]*model.Rating
}

func newFakeRatingRepo() *fakeRatingRepo {
	return &fakeRatingRepo{ratings: make(map[string]*model.Rating)}
}

func (r *fakeRatingRepo) Get(_ context.Context, studentID, subject string) (*model.Rating, error) {
	return r.ratings[ratingKey(studentID, subject)], nil
}

func (r *fakeRatingRepo) Upsert(_ context.Context, studentID, subject string, rating int) error {
	r.ratings[ratingKey(studentID, subject)] = &model.Rating{
		StudentID:   studentID,
		Subject:     subject,
		Rating:      rating,
		LastUpdated: time.Now(),
	}
	return nil
}

func (r *fakeRatingRepo) Reset(ctx context.Context, studentID, subject string, defaultRating int) error {
	return r.Upsert(ctx, studentID, subject, defaultRating)
}

func (r *fakeRatingRepo) GetByStudent(_ context.Context, studentID string) ([]*model.Rating, error) {
	var out []*model.Rating
	for _, rating := range r.ratings {
		if rating.StudentID == studentID {
			out = append(out, rating)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Subject < out[j].Subject })
	return out, nil
}

func (r *fakeRatingRepo) TopBySubject(_ context.Context, subject string, limit int) ([]*model.Rating, error) {
	var out []*model.Rating
	for _, rating := range r.ratings {
		if rating.Subject == subject {
			out = append(out, rating)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeAttemptRepo struct {
	attempts []*model.PracticeAttempt
}

func (r *fakeAttemptRepo) Create(_ context.Context, attempt *model.PracticeAttempt) (string, error) {
	attempt.ID = fmt.Sprintf("attempt-%d", len(r.attempts)+1)
	if attempt.CompletedAt.IsZero() {
		attempt.CompletedAt = time.Now()
	}
	r.attempts = append(r.attempts, attempt)
	return attempt.ID, nil
}

func (r *fakeAttemptRepo) GetRecent(_ context.Context, studentID, subject string, limit int) ([]*model.PracticeAttempt, error) {
	var out []*model.PracticeAttempt
	for i := len(r.attempts) - 1; i >= 0 && len(out) < limit; i-- {
		a := r.attempts[i]
		if a.StudentID == studentID && a.Subject == subject {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAttemptRepo) GetByStudent(_ context.Context, studentID string, limit int) ([]*model.PracticeAttempt, error) {
	var out []*model.PracticeAttempt
	for i := len(r.attempts) - 1; i >= 0 && len(out) < limit; i-- {
		if r.attempts[i].StudentID == studentID {
			out = append(out, r.attempts[i])
		}
	}
	return out, nil
}

func (r *fakeAttemptRepo) CountSince(_ context.Context, studentID string, since time.Time) (int64, error) {
	var n int64
	for _, a := range r.attempts {
		if a.StudentID == studentID && a.CompletedAt.After(since) {
			n++
		}
	}
	return n, nil
}

type fakeItemRepo struct {
	items []*model.PracticeItem
}

func (r *fakeItemRepo) Create(_ context.Context, item *model.PracticeItem) (string, error) {
	if item.ID == "" {
		item.ID = fmt.Sprintf("item-%d", len(r.items)+1)
	}
	r.items = append(r.items, item)
	return item.ID, nil
}

func (r *fakeItemRepo) GetByID(_ context.Context, id string) (*model.PracticeItem, error) {
	for _, item := range r.items {
		if item.ID == id {
			return item, nil
		}
	}
	return nil, nil
}

func (r *fakeItemRepo) FindInRange(_ context.Context, subject string, lowDiff, highDiff int, excludeIDs []string) (*model.PracticeItem, error) {
	excluded := make(map[string]bool, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = true
	}
	var best *model.PracticeItem
	for _, item := range r.items {
		if item.Subject != subject || excluded[item.ID] {
			continue
		}
		if item.Difficulty < lowDiff || item.Difficulty > highDiff {
			continue
		}
		if best == nil || item.Difficulty > best.Difficulty {
			best = item
		}
	}
	return best, nil
}

func (r *fakeItemRepo) CountInRange(_ context.Context, subject string, lowDiff, highDiff int) (int64, error) {
	var n int64
	for _, item := range r.items {
		if item.Subject == subject && item.Difficulty >= lowDiff && item.Difficulty <= highDiff {
			n++
		}
	}
	return n, nil
}

type fakeStudentRepo struct {
	students map[string]*model.Student
	touched  []string
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{students: make(map[string]*model.Student)}
}

func (r *fakeStudentRepo) Create(_ context.Context, student *model.Student) (string, error) {
	if student.ID == "" {
		student.ID = fmt.Sprintf("student-%d", len(r.students)+1)
	}
	student.CreatedAt = time.Now()
	student.LastActiveAt = student.CreatedAt
	r.students[student.ID] = student
	return student.ID, nil
}

func (r *fakeStudentRepo) GetByID(_ context.Context, id string) (*model.Student, error) {
	return r.students[id], nil
}

func (r *fakeStudentRepo) GetByEmail(_ context.Context, email string) (*model.Student, error) {
	for _, s := range r.students {
		if s.Email == email {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeStudentRepo) TouchActivity(_ context.Context, id string) error {
	r.touched = append(r.touched, id)
	if s, ok := r.students[id]; ok {
		s.LastActiveAt = time.Now()
	}
	return nil
}

func (r *fakeStudentRepo) GetInactiveSince(_ context.Context, cutoff time.Time) ([]*model.Student, error) {
	var out []*model.Student
	for _, s := range r.students {
		if s.LastActiveAt.Before(cutoff) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeInteractionRepo struct {
	interactions []*model.Interaction
}

func (r *fakeInteractionRepo) Create(_ context.Context, interaction *model.Interaction) (string, error) {
	interaction.ID = fmt.Sprintf("interaction-%d", len(r.interactions)+1)
	if interaction.AskedAt.IsZero() {
		interaction.AskedAt = time.Now()
	}
	r.interactions = append(r.interactions, interaction)
	return interaction.ID, nil
}

func (r *fakeInteractionRepo) GetByStudent(_ context.Context, studentID string, limit int) ([]*model.Interaction, error) {
	var out []*model.Interaction
	for i := len(r.interactions) - 1; i >= 0 && len(out) < limit; i-- {
		if r.interactions[i].StudentID == studentID {
			out = append(out, r.interactions[i])
		}
	}
	return out, nil
}

func (r *fakeInteractionRepo) GetEscalations(_ context.Context, subject string, limit int) ([]*model.Interaction, error) {
	var out []*model.Interaction
	for i := len(r.interactions) - 1; i >= 0 && len(out) < limit; i-- {
		in := r.interactions[i]
		if in.EscalationRequired && (subject == "" || in.Subject == subject) {
			out = append(out, in)
		}
	}
	return out, nil
}

func (r *fakeInteractionRepo) CountEscalationsByStudent(_ context.Context, studentID string) (int64, error) {
	var n int64
	for _, in := range r.interactions {
		if in.StudentID == studentID && in.EscalationRequired {
			n++
		}
	}
	return n, nil
}

type fakeSessionRepo struct {
	sessions map[string]*model.Session
	seq      int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*model.Session)}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *model.Session) (string, error) {
	r.seq++
	session.ID = fmt.Sprintf("session-%d", r.seq)
	r.sessions[session.ID] = session
	return session.ID, nil
}

func (r *fakeSessionRepo) GetByID(_ context.Context, id string) (*model.Session, error) {
	return r.sessions[id], nil
}

func (r *fakeSessionRepo) Update(_ context.Context, session *model.Session) error {
	r.sessions[session.ID] = session
	return nil
}

func (r *fakeSessionRepo) GetByStudent(_ context.Context, studentID string, limit int) ([]*model.Session, error) {
	var out []*model.Session
	for _, s := range r.sessions {
		if s.StudentID == studentID {
			out = append(out, s)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeSessionRepo) GetUpcoming(_ context.Context, tutorID string, limit int) ([]*model.Session, error) {
	var out []*model.Session
	for _, s := range r.sessions {
		if s.TutorID == tutorID && s.Status == model.SessionScheduled {
			out = append(out, s)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeNudgeRepo struct {
	nudges []*model.Nudge
}

func (r *fakeNudgeRepo) Create(_ context.Context, nudge *model.Nudge) (string, error) {
	nudge.ID = fmt.Sprintf("nudge-%d", len(r.nudges)+1)
	if nudge.SentAt.IsZero() {
		nudge.SentAt = time.Now()
	}
	r.nudges = append(r.nudges, nudge)
	return nudge.ID, nil
}

func (r *fakeNudgeRepo) GetLastForStudent(_ context.Context, studentID string, kind model.NudgeKind) (*model.Nudge, error) {
	for i := len(r.nudges) - 1; i >= 0; i-- {
		n := r.nudges[i]
		if n.StudentID == studentID && n.Kind == kind {
			return n, nil
		}
	}
	return nil, nil
}

func (r *fakeNudgeRepo) GetByStudent(_ context.Context, studentID string, limit int) ([]*model.Nudge, error) {
	var out []*model.Nudge
	for i := len(r.nudges) - 1; i >= 0 && len(out) < limit; i-- {
		if r.nudges[i].StudentID == studentID {
			out = append(out, r.nudges[i])
		}
	}
	return out, nil
}

type fakeRatingCache struct {
	ratings map[string]int
}

func newFakeRatingCache() *fakeRatingCache {
	return &fakeRatingCache{ratings: make(map[string]int)}
}

func (c *fakeRatingCache) Get(_ context.Context, studentID, subject string) (int, bool, error) {
	rating, ok := c.ratings[ratingKey(studentID, subject)]
	return rating, ok, nil
}

func (c *fakeRatingCache) Set(_ context.Context, studentID, subject string, rating int) error {
	c.ratings[ratingKey(studentID, subject)] = rating
	return nil
}

func (c *fakeRatingCache) GetAll(_ context.Context, studentID string) (map[string]int, error) {
	return nil, nil
}

func (c *fakeRatingCache) Invalidate(_ context.Context, studentID string) error {
	for k := range c.ratings {
		if len(k) > len(studentID) && k[:len(studentID)] == studentID {
			delete(c.ratings, k)
		}
	}
	return nil
}

type fakeMasteryCache struct {
	scores map[string]map[string]int // subject -> studentID -> rating
}

func newFakeMasteryCache() *fakeMasteryCache {
	return &fakeMasteryCache{scores: make(map[string]map[string]int)}
}

func (c *fakeMasteryCache) UpdateRating(_ context.Context, subject, studentID string, rating int) error {
	if c.scores[subject] == nil {
		c.scores[subject] = make(map[string]int)
	}
	c.scores[subject][studentID] = rating
	return nil
}

func (c *fakeMasteryCache) GetTop(_ context.Context, subject string, limit int) ([]model.MasteryEntry, error) {
	var out []model.MasteryEntry
	for id, rating := range c.scores[subject] {
		out = append(out, model.MasteryEntry{StudentID: id, Rating: rating})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	if len(out) > limit {
		out = out[:limit]
	}
	for i := range out {
		out[i].Rank = i + 1
	}
	return out, nil
}

func (c *fakeMasteryCache) GetRank(_ context.Context, subject, studentID string) (int64, error) {
	top, _ := c.GetTop(context.Background(), subject, 1000)
	for _, e := range top {
		if e.StudentID == studentID {
			return int64(e.Rank), nil
		}
	}
	return -1, nil
}

type fakeDashboardCache struct {
	students map[string]*model.StudentDashboard
	tutors   map[string]*model.TutorDashboard
}

func newFakeDashboardCache() *fakeDashboardCache {
	return &fakeDashboardCache{
		students: make(map[string]*model.StudentDashboard),
		tutors:   make(map[string]*model.TutorDashboard),
	}
}

func (c *fakeDashboardCache) GetStudent(_ context.Context, studentID string) (*model.StudentDashboard, error) {
	return c.students[studentID], nil
}

func (c *fakeDashboardCache) SetStudent(_ context.Context, dashboard *model.StudentDashboard) error {
	c.students[dashboard.StudentID] = dashboard
	return nil
}

func (c *fakeDashboardCache) InvalidateStudent(_ context.Context, studentID string) error {
	delete(c.students, studentID)
	return nil
}

func (c *fakeDashboardCache) GetTutor(_ context.Context, subject string) (*model.TutorDashboard, error) {
	return c.tutors[subject], nil
}

func (c *fakeDashboardCache) SetTutor(_ context.Context, dashboard *model.TutorDashboard) error {
	c.tutors[dashboard.Subject] = dashboard
	return nil
}

// fakeGenerator returns canned answers and items.
type fakeGenerator struct {
	draft     *model.DraftAnswer
	generated int
}

func (g *fakeGenerator) AnswerQuestion(_ context.Context, subject, question string) (*model.DraftAnswer, error) {
	if g.draft != nil {
		return g.draft, nil
	}
	return &model.DraftAnswer{
		Answer:             "canned answer",
		SelfAssessment:     0.9,
		ContextRelevance:   0.9,
		QueryClarity:       0.9,
		AnswerCompleteness: 0.9,
	}, nil
}

func (g *fakeGenerator) GenerateItems(_ context.Context, subject string, difficulty, count int) ([]*model.PracticeItem, error) {
	items := make([]*model.PracticeItem, 0, count)
	for i := 0; i < count; i++ {
		g.generated++
		items = append(items, &model.PracticeItem{
			ID:             fmt.Sprintf("gen-%d", g.generated),
			Subject:        subject,
			Difficulty:     difficulty,
			Prompt:         fmt.Sprintf("generated %s question %d", subject, g.generated),
			Answer:         "generated answer",
			OptimalTimeSec: 60,
			AIGenerated:    true,
			CreatedAt:      time.Now(),
		})
	}
	return items, nil
}

func (g *fakeGenerator) SummarizeSession(_ context.Context, session *model.Session, notes string) (string, error) {
	return "summary: " + notes, nil
}

func (g *fakeGenerator) NudgeMessage(_ context.Context, student *model.Student, kind model.NudgeKind) (string, error) {
	return fmt.Sprintf("%s nudge for %s", kind, student.Name), nil
}

type broadcastEvent struct {
	target  string // "student:<id>" or "tutors"
	msgType string
	payload interface{}
}

type fakeBroadcaster struct {
	events []broadcastEvent
}

func (b *fakeBroadcaster) BroadcastToStudent(studentID, msgType string, payload interface{}) {
	b.events = append(b.events, broadcastEvent{target: "student:" + studentID, msgType: msgType, payload: payload})
}

func (b *fakeBroadcaster) BroadcastToTutors(msgType string, payload interface{}) {
	b.events = append(b.events, broadcastEvent{target: "tutors", msgType: msgType, payload: payload})
}

func (b *fakeBroadcaster) types() []string {
	out := make([]string, 0, len(b.events))
	for _, e := range b.events {
		out = append(out, e.msgType)
	}
	return out
}
