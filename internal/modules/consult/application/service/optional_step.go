package service

import (
	"SaDam/pkg/zlog"

	"go.uber.org/zap"
)

// stepOutcome 可选步骤的三态结果，用于把"失败但不致命"
// 和关键路径错误在结构上区分开
type stepOutcome int8

const (
	stepSucceeded stepOutcome = iota
	stepSkipped
	stepFailed
)

// runOptionalStep 执行可选步骤，失败只记日志不向上传播
func runOptionalStep(name string, enabled bool, fn func() error) stepOutcome {
	if !enabled {
		zlog.Info("optional step skipped", zap.String("step", name))
		return stepSkipped
	}
	if err := fn(); err != nil {
		zlog.Warn("optional step failed, continuing without it",
			zap.String("step", name), zap.Error(err))
		return stepFailed
	}
	return stepSucceeded
}
