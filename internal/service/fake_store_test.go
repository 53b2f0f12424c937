package service

import (
	"context"
	"course_backend/internal/model"
	"course_backend/internal/util"
	"sort"
	"sync"
	"time"
)

// fakeStore 内存实现，Transaction 不支持回滚
type fakeStore struct {
	mu     sync.Mutex
	nextID uint

	tests     map[uint]model.Test
	questions map[uint]model.Question
	keys      map[uint]model.AnswerKeyEntry
	attempts  map[uint]model.Attempt
	answers   map[uint]model.SubmittedAnswer

	resultWrites int
	findKeyErr   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		tests:     map[uint]model.Test{},
		questions: map[uint]model.Question{},
		keys:      map[uint]model.AnswerKeyEntry{},
		attempts:  map[uint]model.Attempt{},
		answers:   map[uint]model.SubmittedAnswer{},
	}
}

func (f *fakeStore) id() uint {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fixtures

func (f *fakeStore) addTest(pass int) model.Test {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := model.Test{CourseID: 1, Title: "Quiz", PassPercentage: pass}
	t.ID = f.id()
	f.tests[t.ID] = t
	return t
}

func (f *fakeStore) addQuestion(testID uint, typ model.QuestionType) model.Question {
	f.mu.Lock()
	defer f.mu.Unlock()
	q := model.Question{TestID: testID, Text: "q", Type: typ, Points: 1}
	q.ID = f.id()
	q.Sequence = int(q.ID)
	f.questions[q.ID] = q
	return q
}

func (f *fakeStore) addKey(questionID uint, correct bool) model.AnswerKeyEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	e := model.AnswerKeyEntry{QuestionID: questionID, Text: "k", IsCorrect: correct}
	e.ID = f.id()
	f.keys[e.ID] = e
	return e
}

func (f *fakeStore) addAttempt(studentID, testID uint) model.Attempt {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	a := model.Attempt{StudentID: studentID, TestID: testID, StartedAt: now, CompletedAt: &now}
	a.ID = f.id()
	f.attempts[a.ID] = a
	return a
}

func (f *fakeStore) addAnswer(attemptID, questionID uint, answerID *uint, points *int) model.SubmittedAnswer {
	f.mu.Lock()
	defer f.mu.Unlock()
	a := model.SubmittedAnswer{AttemptID: attemptID, QuestionID: questionID, AnswerID: answerID, PointsAwarded: points}
	a.ID = f.id()
	f.answers[a.ID] = a
	return a
}

func (f *fakeStore) attempt(id uint) (model.Attempt, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.attempts[id]
	return a, ok
}

// attempts

func (f *fakeStore) CreateAttempt(ctx context.Context, a *model.Attempt) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a.ID = f.id()
	f.attempts[a.ID] = *a
	return nil
}

func (f *fakeStore) FindAttempt(ctx context.Context, id uint) (*model.Attempt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.attempts[id]
	if !ok {
		return nil, util.ErrAttemptNotFound
	}
	return &a, nil
}

func (f *fakeStore) FindAttemptForUpdate(ctx context.Context, id uint) (*model.Attempt, error) {
	return f.FindAttempt(ctx, id)
}

func (f *fakeStore) SaveAttempt(ctx context.Context, a *model.Attempt) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attempts[a.ID] = *a
	return nil
}

func (f *fakeStore) UpdateAttemptResult(ctx context.Context, id uint, score int, passed bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a := f.attempts[id]
	a.Score = &score
	a.Passed = &passed
	f.attempts[id] = a
	f.resultWrites++
	return nil
}

func (f *fakeStore) DeleteAttempt(ctx context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.attempts[id]; !ok {
		return util.ErrAttemptNotFound
	}
	delete(f.attempts, id)
	return nil
}

func (f *fakeStore) ListAttempts(ctx context.Context, studentID, testID uint) ([]model.Attempt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Attempt
	for _, a := range f.attempts {
		if a.StudentID == studentID && a.TestID == testID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) CountAttemptsByTest(ctx context.Context, testID uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, a := range f.attempts {
		if a.TestID == testID {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) ListUngradedCompleted(ctx context.Context, limit int) ([]model.Attempt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	hasAnswers := map[uint]bool{}
	for _, sa := range f.answers {
		hasAnswers[sa.AttemptID] = true
	}
	var out []model.Attempt
	for _, a := range f.attempts {
		if a.CompletedAt != nil && a.Score == nil && hasAnswers[a.ID] {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// submitted answers

func (f *fakeStore) ListSubmittedAnswers(ctx context.Context, attemptID uint) ([]model.SubmittedAnswer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.SubmittedAnswer
	for _, sa := range f.answers {
		if sa.AttemptID == attemptID {
			out = append(out, sa)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) FindSubmittedAnswer(ctx context.Context, id uint) (*model.SubmittedAnswer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sa, ok := f.answers[id]
	if !ok {
		return nil, util.ErrSubmittedAnswerNotFound
	}
	return &sa, nil
}

func (f *fakeStore) UpsertSubmittedAnswer(ctx context.Context, answer *model.SubmittedAnswer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, sa := range f.answers {
		if sa.AttemptID == answer.AttemptID && sa.QuestionID == answer.QuestionID {
			sa.AnswerID = answer.AnswerID
			sa.EssayAnswer = answer.EssayAnswer
			sa.PointsAwarded = nil
			f.answers[id] = sa
			*answer = sa
			return nil
		}
	}
	answer.ID = f.id()
	f.answers[answer.ID] = *answer
	return nil
}

func (f *fakeStore) SetPointsAwarded(ctx context.Context, id uint, points int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	sa := f.answers[id]
	sa.PointsAwarded = &points
	f.answers[id] = sa
	return nil
}

func (f *fakeStore) DeleteSubmittedAnswersByAttempt(ctx context.Context, attemptID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, sa := range f.answers {
		if sa.AttemptID == attemptID {
			delete(f.answers, id)
		}
	}
	return nil
}

// tests

func (f *fakeStore) CreateTest(ctx context.Context, t *model.Test) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t.ID = f.id()
	f.tests[t.ID] = *t
	return nil
}

func (f *fakeStore) FindTest(ctx context.Context, id uint) (*model.Test, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tests[id]
	if !ok {
		return nil, util.ErrTestNotFound
	}
	return &t, nil
}

func (f *fakeStore) SaveTest(ctx context.Context, t *model.Test) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tests[t.ID] = *t
	return nil
}

func (f *fakeStore) DeleteTest(ctx context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for qid, q := range f.questions {
		if q.TestID != id {
			continue
		}
		for kid, k := range f.keys {
			if k.QuestionID == qid {
				delete(f.keys, kid)
			}
		}
		delete(f.questions, qid)
	}
	delete(f.tests, id)
	return nil
}

func (f *fakeStore) ListTests(ctx context.Context, courseID uint) ([]model.Test, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Test
	for _, t := range f.tests {
		if courseID == 0 || t.CourseID == courseID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// questions

func (f *fakeStore) CreateQuestion(ctx context.Context, q *model.Question) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	q.ID = f.id()
	f.questions[q.ID] = *q
	return nil
}

func (f *fakeStore) FindQuestion(ctx context.Context, id uint) (*model.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	q, ok := f.questions[id]
	if !ok {
		return nil, util.ErrQuestionNotFound
	}
	return &q, nil
}

func (f *fakeStore) SaveQuestion(ctx context.Context, q *model.Question) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.questions[q.ID] = *q
	return nil
}

func (f *fakeStore) DeleteQuestion(ctx context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for kid, k := range f.keys {
		if k.QuestionID == id {
			delete(f.keys, kid)
		}
	}
	delete(f.questions, id)
	return nil
}

func (f *fakeStore) ListQuestions(ctx context.Context, testID uint) ([]model.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Question
	for _, q := range f.questions {
		if q.TestID == testID {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Sequence < out[j].Sequence })
	return out, nil
}

// answer keys

func (f *fakeStore) CreateAnswerKey(ctx context.Context, e *model.AnswerKeyEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e.ID = f.id()
	f.keys[e.ID] = *e
	return nil
}

func (f *fakeStore) FindAnswerKey(ctx context.Context, id uint) (*model.AnswerKeyEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.keys[id]
	if !ok {
		return nil, util.ErrAnswerKeyNotFound
	}
	return &e, nil
}

func (f *fakeStore) FindAnswerKeyForQuestion(ctx context.Context, questionID, answerID uint) (*model.AnswerKeyEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findKeyErr != nil {
		return nil, f.findKeyErr
	}
	e, ok := f.keys[answerID]
	if !ok || e.QuestionID != questionID {
		return nil, util.ErrAnswerKeyNotFound
	}
	return &e, nil
}

func (f *fakeStore) SaveAnswerKey(ctx context.Context, e *model.AnswerKeyEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys[e.ID] = *e
	return nil
}

func (f *fakeStore) DeleteAnswerKey(ctx context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.keys, id)
	return nil
}

func (f *fakeStore) ListAnswerKeys(ctx context.Context, questionID uint) ([]model.AnswerKeyEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.AnswerKeyEntry
	for _, e := range f.keys {
		if e.QuestionID == questionID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

var (
	_ GradingStore    = (*fakeStore)(nil)
	_ AttemptStore    = (*fakeStore)(nil)
	_ AssessmentStore = (*fakeStore)(nil)
)
