package model

// QuestionType 题目类型
type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	TrueFalse      QuestionType = "true_false"
	Essay          QuestionType = "essay"
)

// Selectable 选择类题目通过答案键判定
func (t QuestionType) Selectable() bool {
	return t == MultipleChoice || t == TrueFalse
}

// swagger:model Test
type Test struct {
	BaseModel
	CourseID       uint   `gorm:"index;not null" json:"courseId"`
	Title          string `gorm:"size:100;not null" json:"title"`
	Description    string `gorm:"type:text" json:"description"`
	PassPercentage int    `gorm:"not null" json:"passPercentage"`
	TimeLimit      *int   `json:"timeLimit,omitempty"` // Minutes
	AdminID        uint   `gorm:"index" json:"adminId"`
}

func (Test) TableName() string {
	return "tests"
}

// swagger:model Question
type Question struct {
	BaseModel
	TestID   uint         `gorm:"index;not null" json:"testId"`
	Text     string       `gorm:"type:text;not null" json:"text"`
	Type     QuestionType `gorm:"size:20;not null" json:"type"`
	Points   int          `gorm:"default:1" json:"points"`
	Sequence int          `gorm:"not null" json:"sequence"`
}

func (Question) TableName() string {
	return "questions"
}

// AnswerKeyEntry 题目的候选答案及其正确性
// swagger:model AnswerKeyEntry
type AnswerKeyEntry struct {
	BaseModel
	QuestionID  uint    `gorm:"index;not null" json:"questionId"`
	Text        string  `gorm:"type:text;not null" json:"text"`
	IsCorrect   bool    `gorm:"not null;default:false" json:"isCorrect"`
	Explanation *string `gorm:"type:text" json:"explanation,omitempty"`
}

func (AnswerKeyEntry) TableName() string {
	return "answers"
}
