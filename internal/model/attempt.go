package model

import "time"

// Attempt 学生的一次作答，Score 为空表示尚未评分
// swagger:model Attempt
type Attempt struct {
	BaseModel
	StudentID   uint       `gorm:"index;not null" json:"studentId"`
	TestID      uint       `gorm:"index;not null" json:"testId"`
	StartedAt   time.Time  `gorm:"not null" json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Score       *int       `json:"score"`
	Passed      *bool      `json:"passed"`
	TotalTime   *int       `json:"totalTime,omitempty"` // Seconds
}

func (Attempt) TableName() string {
	return "test_attempts"
}

func (a *Attempt) Graded() bool {
	return a.Score != nil
}

// SubmittedAnswer 每个 (attempt, question) 至多一条
// swagger:model SubmittedAnswer
type SubmittedAnswer struct {
	BaseModel
	AttemptID     uint    `gorm:"index;not null" json:"attemptId"`
	QuestionID    uint    `gorm:"index;not null" json:"questionId"`
	AnswerID      *uint   `json:"answerId,omitempty"`
	EssayAnswer   *string `gorm:"type:text" json:"essayAnswer,omitempty"`
	PointsAwarded *int    `json:"pointsAwarded,omitempty"`
}

func (SubmittedAnswer) TableName() string {
	return "student_answers"
}
