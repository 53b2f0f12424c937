package service

import (
	"context"
	"course_backend/internal/util"
	"course_backend/pkg/logger"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	ThresholdFromTest     = "test"
	ThresholdFromFallback = "fallback"
)

// 判定依据
const (
	VerdictKeyCorrect    = "key_correct"
	VerdictKeyIncorrect  = "key_incorrect"
	VerdictKeyMissing    = "key_missing"
	VerdictManualAwarded = "manual_awarded"
	VerdictManualPending = "manual_pending"
)

type AnswerVerdict struct {
	SubmittedAnswerID uint   `json:"submittedAnswerId"`
	QuestionID        uint   `json:"questionId"`
	AnswerID          *uint  `json:"answerId,omitempty"`
	Correct           bool   `json:"correct"`
	Reason            string `json:"reason"`
}

// GradeReport 一次评分的完整记录，归档到对象存储
type GradeReport struct {
	AttemptID       uint            `json:"attemptId"`
	TestID          uint            `json:"testId"`
	StudentID       uint            `json:"studentId"`
	Score           int             `json:"score"`
	Passed          bool            `json:"passed"`
	Threshold       int             `json:"threshold"`
	ThresholdSource string          `json:"thresholdSource"`
	Correct         int             `json:"correct"`
	Total           int             `json:"total"`
	Verdicts        []AnswerVerdict `json:"verdicts"`
	GradedAt        time.Time       `json:"gradedAt"`
}

func (r *GradeReport) ObjectKey() string {
	return fmt.Sprintf("%s/%d/%s.json", util.GradeReportPrefix, r.AttemptID, uuid.NewString())
}

// archiveReport 归档失败只记录日志，不影响评分结果
func (s *GradingService) archiveReport(ctx context.Context, report *GradeReport) {
	if !s.Archive.Enabled() {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	data, err := json.Marshal(report)
	if err != nil {
		logger.Ctx(ctx).Error("Failed to encode grade report", zap.Uint("attemptId", report.AttemptID), zap.Error(err))
		return
	}

	key := report.ObjectKey()
	url, err := s.Archive.PutBytes(ctx, key, data, util.MimeJSON)
	if err != nil {
		logger.Ctx(ctx).Warn("Failed to archive grade report", zap.Uint("attemptId", report.AttemptID), zap.String("key", key), zap.Error(err))
		return
	}
	logger.Ctx(ctx).Debug("Grade report archived", zap.Uint("attemptId", report.AttemptID), zap.String("url", url))
}
