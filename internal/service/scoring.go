package service

import (
	"course_backend/internal/model"
	"math"
)

// ScorePercent 按题目数量计算百分制得分，四舍五入，不计题目分值
func ScorePercent(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(total)))
}

func IsPassed(score, threshold int) bool {
	return score >= threshold
}

// AnswerCorrect key 为空表示答案键中不存在该选项。
// 未选择选项的主观题仅在人工给分大于 0 时视为正确。
func AnswerCorrect(answer *model.SubmittedAnswer, key *model.AnswerKeyEntry) bool {
	if answer.AnswerID == nil {
		return answer.PointsAwarded != nil && *answer.PointsAwarded > 0
	}
	return key != nil && key.IsCorrect
}
