package modelutil

import (
	"testing"

	"github.com/YuminosukeSato/airbnb-price/pkg/log"
)

// captureLogs は処理中のログを TestLogger に差し替える
func captureLogs(t *testing.T) *log.TestLogger {
	t.Helper()
	prev := log.GetLogger()
	logger, _ := log.NewTestLogger(log.LevelDebug)
	log.SetLogger(logger)
	t.Cleanup(func() { log.SetLogger(prev) })
	return logger
}
