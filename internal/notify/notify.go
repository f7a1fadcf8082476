// Package notify 把用户可见的提示发送到日志或消息队列
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"wallet-keystone/internal/event"
	"wallet-keystone/internal/service/mq"
	"wallet-keystone/pkg/logger"
)

// Alert 用户可见的提示，文案由前端按 message code 翻译
type Alert struct {
	Success           bool   `json:"success"`
	MessageCodeHeader string `json:"messageCodeHeader,omitempty"`
	MessageCode       string `json:"messageCode"`
	ErrorMessage      string `json:"errorMessage,omitempty"`
}

// Sink 提示的接收方
type Sink interface {
	ShowAlert(ctx context.Context, a Alert) error
}

// LogSink 只写日志
type LogSink struct{}

func (LogSink) ShowAlert(ctx context.Context, a Alert) error {
	fields := []zap.Field{
		zap.String("header", a.MessageCodeHeader),
		zap.String("code", a.MessageCode),
	}
	if a.Success {
		logger.Info("alert", fields...)
		return nil
	}
	logger.Warn("alert", append(fields, zap.String("error", a.ErrorMessage))...)
	return nil
}

// ProducerSink 把提示作为 event.AlertEvent 发到消息队列
type ProducerSink struct {
	producer mq.Producer
	topic    string
}

func NewProducerSink(p mq.Producer) *ProducerSink {
	return &ProducerSink{producer: p, topic: mq.TopicAlert}
}

func (s *ProducerSink) ShowAlert(ctx context.Context, a Alert) error {
	ev := event.AlertEvent{
		ID:                uuid.NewString(),
		Success:           a.Success,
		MessageCodeHeader: a.MessageCodeHeader,
		MessageCode:       a.MessageCode,
		ErrorMessage:      a.ErrorMessage,
		CreatedAt:         time.Now().UTC(),
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return s.producer.Publish(ctx, s.topic, a.MessageCode, payload)
}

// Multi 依次发送到所有 Sink，返回合并后的错误
type Multi []Sink

func (m Multi) ShowAlert(ctx context.Context, a Alert) error {
	var errs []error
	for _, s := range m {
		if err := s.ShowAlert(ctx, a); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ThunkAlerts 异步操作结束后弹提示。onlyError 为 true 时成功不提示。
// 返回值可以直接赋给 store.AsyncThunk.Settled。
func ThunkAlerts(sink Sink, onlyError bool) func(ctx context.Context, typePrefix string, err error) {
	return func(ctx context.Context, typePrefix string, err error) {
		if err == nil && onlyError {
			return
		}
		a := Alert{
			Success:     err == nil,
			MessageCode: "reduxActions." + typePrefix,
		}
		if err != nil {
			a.MessageCodeHeader = "error"
			a.ErrorMessage = err.Error()
		}
		if sendErr := sink.ShowAlert(ctx, a); sendErr != nil {
			logger.Warn("show alert failed", zap.String("type", typePrefix), zap.Error(sendErr))
		}
	}
}
