// Package testutil 提供授权证明模块测试的辅助工具
//
// 🧪 **测试辅助函数**
//
// 本文件提供测试用的Mock对象和构造函数，用于简化测试代码编写。
package testutil

import (
	"sync"

	"github.com/intentgate/v1/pkg/interfaces/infrastructure/log"
	"go.uber.org/zap"
)

// 确保 Mock 实现了对应接口
var _ log.Logger = (*MockLogger)(nil)
var _ log.Logger = (*BehavioralMockLogger)(nil)

// MockLogger 统一的日志Mock实现
//
// ✅ **设计原则**：最小实现，所有方法返回空值，不记录日志
type MockLogger struct{}

func (m *MockLogger) Debug(msg string)                          {}
func (m *MockLogger) Debugf(format string, args ...interface{}) {}
func (m *MockLogger) Info(msg string)                           {}
func (m *MockLogger) Infof(format string, args ...interface{})  {}
func (m *MockLogger) Warn(msg string)                           {}
func (m *MockLogger) Warnf(format string, args ...interface{})  {}
func (m *MockLogger) Error(msg string)                          {}
func (m *MockLogger) Errorf(format string, args ...interface{}) {}
func (m *MockLogger) Fatal(msg string)                          {}
func (m *MockLogger) Fatalf(format string, args ...interface{}) {}
func (m *MockLogger) With(args ...interface{}) log.Logger       { return m }
func (m *MockLogger) Sync() error                               { return nil }
func (m *MockLogger) GetZapLogger() *zap.Logger                 { return zap.NewNop() }

// NewTestLogger 创建测试用的Logger
func NewTestLogger() log.Logger {
	return &MockLogger{}
}

// BehavioralMockLogger 行为Mock日志（记录调用）
//
// ✅ **设计原则**：记录所有日志调用，用于验证日志行为
type BehavioralMockLogger struct {
	logs  []string
	mutex sync.Mutex
}

// NewTestBehavioralLogger 创建行为Logger（记录调用）
func NewTestBehavioralLogger() *BehavioralMockLogger {
	return &BehavioralMockLogger{
		logs: make([]string, 0),
	}
}

func (m *BehavioralMockLogger) record(entry string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.logs = append(m.logs, entry)
}

func (m *BehavioralMockLogger) Debug(msg string) { m.record("DEBUG: " + msg) }
func (m *BehavioralMockLogger) Debugf(format string, args ...interface{}) {
	m.record("DEBUG: " + format)
}
func (m *BehavioralMockLogger) Info(msg string) { m.record("INFO: " + msg) }
func (m *BehavioralMockLogger) Infof(format string, args ...interface{}) {
	m.record("INFO: " + format)
}
func (m *BehavioralMockLogger) Warn(msg string) { m.record("WARN: " + msg) }
func (m *BehavioralMockLogger) Warnf(format string, args ...interface{}) {
	m.record("WARN: " + format)
}
func (m *BehavioralMockLogger) Error(msg string) { m.record("ERROR: " + msg) }
func (m *BehavioralMockLogger) Errorf(format string, args ...interface{}) {
	m.record("ERROR: " + format)
}
func (m *BehavioralMockLogger) Fatal(msg string) { m.record("FATAL: " + msg) }
func (m *BehavioralMockLogger) Fatalf(format string, args ...interface{}) {
	m.record("FATAL: " + format)
}
func (m *BehavioralMockLogger) With(args ...interface{}) log.Logger { return m }
func (m *BehavioralMockLogger) Sync() error                         { return nil }
func (m *BehavioralMockLogger) GetZapLogger() *zap.Logger           { return zap.NewNop() }

// Logs 返回记录的日志条目副本
func (m *BehavioralMockLogger) Logs() []string {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	out := make([]string, len(m.logs))
	copy(out, m.logs)
	return out
}
