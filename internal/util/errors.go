package util

import "errors"

var (
	ErrEmailRegistered   = errors.New("该邮箱已被注册")
	ErrLearnerNotFound   = errors.New("learner not found")
	ErrActivityNotFound  = errors.New("activity not found in catalog")
	ErrEmptyCatalog      = errors.New("catalog has no sections")
	ErrDuplicateActivity = errors.New("duplicate activity id in catalog")
	ErrInvalidStatement  = errors.New("statement missing actor or verb")
)
