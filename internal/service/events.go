package service

import (
	"context"

	"exam_prep_backend/pkg/event"
	"exam_prep_backend/pkg/logger"

	"go.uber.org/zap"
)

type AttemptEvent struct {
	AttemptID     uint    `json:"attemptId"`
	TestID        uint    `json:"testId"`
	UserID        uint    `json:"userId"`
	AttemptNumber int     `json:"attemptNumber"`
	MarksObtained float64 `json:"marksObtained,omitempty"`
	Percentage    float64 `json:"percentage,omitempty"`
}

type MistakeEvent struct {
	UserID     uint   `json:"userId"`
	QuestionID uint   `json:"questionId"`
	Source     string `json:"source,omitempty"`
}

// publishEvent 在事务提交后调用，发布失败只记录日志
func publishEvent(ctx context.Context, pub event.Publisher, eventType string, payload interface{}) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, eventType, payload); err != nil {
		logger.Log.Warn("Failed to publish domain event",
			zap.String("type", eventType),
			zap.Error(err),
		)
	}
}
