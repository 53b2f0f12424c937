package util

import (
	"errors"
	"fmt"
)

// 错误类别，HandleError 据此映射 HTTP 状态码
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrBadRequest   = errors.New("bad request")
)

var (
	ErrPermissionDenied = errors.New("permission denied")

	ErrAttemptNotFound         = fmt.Errorf("attempt %w", ErrNotFound)
	ErrTestNotFound            = fmt.Errorf("test %w", ErrNotFound)
	ErrQuestionNotFound        = fmt.Errorf("question %w", ErrNotFound)
	ErrAnswerKeyNotFound       = fmt.Errorf("answer key %w", ErrNotFound)
	ErrSubmittedAnswerNotFound = fmt.Errorf("submitted answer %w", ErrNotFound)

	ErrNoAnswersSubmitted = fmt.Errorf("%w: no answers submitted", ErrInvalidState)
	ErrAttemptGraded      = fmt.Errorf("%w: attempt already graded", ErrInvalidState)
	ErrTestHasAttempts    = fmt.Errorf("%w: test already has attempts", ErrInvalidState)

	ErrAttemptMismatch   = fmt.Errorf("%w: path and body identifiers mismatch", ErrBadRequest)
	ErrQuestionNotInTest = fmt.Errorf("%w: question does not belong to the attempt's test", ErrBadRequest)
	ErrEmptyAnswer       = fmt.Errorf("%w: answerId or essayAnswer is required", ErrBadRequest)
	ErrAnswerNotManual   = fmt.Errorf("%w: points can only be awarded to free-text answers", ErrBadRequest)
)

// Invalid 将参数校验错误归入 BadRequest
func Invalid(err error) error {
	return fmt.Errorf("%w: %s", ErrBadRequest, err.Error())
}
