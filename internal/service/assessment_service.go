package service

import (
	"context"
	"course_backend/internal/model"
	"course_backend/internal/util"
)

// AssessmentService 试卷、题目与答案键的维护。已有作答的试卷内容不可再修改。
type AssessmentService struct {
	Store AssessmentStore
}

func NewAssessmentService(store AssessmentStore) *AssessmentService {
	return &AssessmentService{Store: store}
}

type TestReq struct {
	CourseID       uint   `json:"courseId" binding:"required"`
	Title          string `json:"title" binding:"required,max=100"`
	Description    string `json:"description"`
	PassPercentage *int   `json:"passPercentage" binding:"required,min=0,max=100"`
	TimeLimit      *int   `json:"timeLimit" binding:"omitempty,min=1"`
}

type QuestionReq struct {
	Text     string             `json:"text" binding:"required"`
	Type     model.QuestionType `json:"type" binding:"required,oneof=multiple_choice true_false essay"`
	Points   *int               `json:"points" binding:"omitempty,min=0"`
	Sequence int                `json:"sequence" binding:"min=0"`
}

type AnswerKeyReq struct {
	Text        string  `json:"text" binding:"required"`
	IsCorrect   bool    `json:"isCorrect"`
	Explanation *string `json:"explanation"`
}

// ensureNoAttempts 需在事务内调用
func (s *AssessmentService) ensureNoAttempts(ctx context.Context, testID uint) error {
	n, err := s.Store.CountAttemptsByTest(ctx, testID)
	if err != nil {
		return err
	}
	if n > 0 {
		return util.ErrTestHasAttempts
	}
	return nil
}

func (s *AssessmentService) CreateTest(ctx context.Context, adminID uint, req TestReq) (*model.Test, error) {
	if err := validateStruct(&req); err != nil {
		return nil, err
	}

	test := &model.Test{
		CourseID:       req.CourseID,
		Title:          req.Title,
		Description:    req.Description,
		PassPercentage: *req.PassPercentage,
		TimeLimit:      req.TimeLimit,
		AdminID:        adminID,
	}
	if err := s.Store.CreateTest(ctx, test); err != nil {
		return nil, err
	}
	return test, nil
}

func (s *AssessmentService) GetTest(ctx context.Context, id uint) (*model.Test, error) {
	return s.Store.FindTest(ctx, id)
}

func (s *AssessmentService) ListTests(ctx context.Context, courseID uint) ([]model.Test, error) {
	return s.Store.ListTests(ctx, courseID)
}

func (s *AssessmentService) UpdateTest(ctx context.Context, id uint, req TestReq) (*model.Test, error) {
	if err := validateStruct(&req); err != nil {
		return nil, err
	}

	var test *model.Test
	err := s.Store.Transaction(ctx, func(ctx context.Context) error {
		t, err := s.Store.FindTest(ctx, id)
		if err != nil {
			return err
		}
		if err := s.ensureNoAttempts(ctx, id); err != nil {
			return err
		}

		t.CourseID = req.CourseID
		t.Title = req.Title
		t.Description = req.Description
		t.PassPercentage = *req.PassPercentage
		t.TimeLimit = req.TimeLimit
		if err := s.Store.SaveTest(ctx, t); err != nil {
			return err
		}
		test = t
		return nil
	})
	return test, err
}

// DeleteTest 级联删除题目与答案键
func (s *AssessmentService) DeleteTest(ctx context.Context, id uint) error {
	return s.Store.Transaction(ctx, func(ctx context.Context) error {
		if _, err := s.Store.FindTest(ctx, id); err != nil {
			return err
		}
		if err := s.ensureNoAttempts(ctx, id); err != nil {
			return err
		}
		return s.Store.DeleteTest(ctx, id)
	})
}

func (s *AssessmentService) CreateQuestion(ctx context.Context, testID uint, req QuestionReq) (*model.Question, error) {
	if err := validateStruct(&req); err != nil {
		return nil, err
	}

	q := &model.Question{
		TestID:   testID,
		Text:     req.Text,
		Type:     req.Type,
		Points:   1,
		Sequence: req.Sequence,
	}
	if req.Points != nil {
		q.Points = *req.Points
	}

	err := s.Store.Transaction(ctx, func(ctx context.Context) error {
		if _, err := s.Store.FindTest(ctx, testID); err != nil {
			return err
		}
		if err := s.ensureNoAttempts(ctx, testID); err != nil {
			return err
		}
		return s.Store.CreateQuestion(ctx, q)
	})
	if err != nil {
		return nil, err
	}
	return q, nil
}

func (s *AssessmentService) GetQuestion(ctx context.Context, id uint) (*model.Question, error) {
	return s.Store.FindQuestion(ctx, id)
}

// ListQuestions 按 sequence 升序
func (s *AssessmentService) ListQuestions(ctx context.Context, testID uint) ([]model.Question, error) {
	if _, err := s.Store.FindTest(ctx, testID); err != nil {
		return nil, err
	}
	return s.Store.ListQuestions(ctx, testID)
}

func (s *AssessmentService) UpdateQuestion(ctx context.Context, id uint, req QuestionReq) (*model.Question, error) {
	if err := validateStruct(&req); err != nil {
		return nil, err
	}

	var question *model.Question
	err := s.Store.Transaction(ctx, func(ctx context.Context) error {
		q, err := s.Store.FindQuestion(ctx, id)
		if err != nil {
			return err
		}
		if err := s.ensureNoAttempts(ctx, q.TestID); err != nil {
			return err
		}

		q.Text = req.Text
		q.Type = req.Type
		q.Sequence = req.Sequence
		if req.Points != nil {
			q.Points = *req.Points
		}
		if err := s.Store.SaveQuestion(ctx, q); err != nil {
			return err
		}
		question = q
		return nil
	})
	return question, err
}

func (s *AssessmentService) DeleteQuestion(ctx context.Context, id uint) error {
	return s.Store.Transaction(ctx, func(ctx context.Context) error {
		q, err := s.Store.FindQuestion(ctx, id)
		if err != nil {
			return err
		}
		if err := s.ensureNoAttempts(ctx, q.TestID); err != nil {
			return err
		}
		return s.Store.DeleteQuestion(ctx, id)
	})
}

func (s *AssessmentService) CreateAnswerKey(ctx context.Context, questionID uint, req AnswerKeyReq) (*model.AnswerKeyEntry, error) {
	if err := validateStruct(&req); err != nil {
		return nil, err
	}

	entry := &model.AnswerKeyEntry{
		QuestionID:  questionID,
		Text:        req.Text,
		IsCorrect:   req.IsCorrect,
		Explanation: req.Explanation,
	}
	err := s.Store.Transaction(ctx, func(ctx context.Context) error {
		q, err := s.Store.FindQuestion(ctx, questionID)
		if err != nil {
			return err
		}
		if err := s.ensureNoAttempts(ctx, q.TestID); err != nil {
			return err
		}
		return s.Store.CreateAnswerKey(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *AssessmentService) GetAnswerKey(ctx context.Context, id uint) (*model.AnswerKeyEntry, error) {
	return s.Store.FindAnswerKey(ctx, id)
}

func (s *AssessmentService) ListAnswerKeys(ctx context.Context, questionID uint) ([]model.AnswerKeyEntry, error) {
	if _, err := s.Store.FindQuestion(ctx, questionID); err != nil {
		return nil, err
	}
	return s.Store.ListAnswerKeys(ctx, questionID)
}

func (s *AssessmentService) UpdateAnswerKey(ctx context.Context, id uint, req AnswerKeyReq) (*model.AnswerKeyEntry, error) {
	if err := validateStruct(&req); err != nil {
		return nil, err
	}

	var entry *model.AnswerKeyEntry
	err := s.Store.Transaction(ctx, func(ctx context.Context) error {
		e, err := s.editableAnswerKey(ctx, id)
		if err != nil {
			return err
		}
		e.Text = req.Text
		e.IsCorrect = req.IsCorrect
		e.Explanation = req.Explanation
		if err := s.Store.SaveAnswerKey(ctx, e); err != nil {
			return err
		}
		entry = e
		return nil
	})
	return entry, err
}

func (s *AssessmentService) DeleteAnswerKey(ctx context.Context, id uint) error {
	return s.Store.Transaction(ctx, func(ctx context.Context) error {
		if _, err := s.editableAnswerKey(ctx, id); err != nil {
			return err
		}
		return s.Store.DeleteAnswerKey(ctx, id)
	})
}

// editableAnswerKey 读取答案键并确认所属试卷尚无作答
func (s *AssessmentService) editableAnswerKey(ctx context.Context, id uint) (*model.AnswerKeyEntry, error) {
	e, err := s.Store.FindAnswerKey(ctx, id)
	if err != nil {
		return nil, err
	}
	q, err := s.Store.FindQuestion(ctx, e.QuestionID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNoAttempts(ctx, q.TestID); err != nil {
		return nil, err
	}
	return e, nil
}
