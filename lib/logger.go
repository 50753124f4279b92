package lib

import (
	"io"
	"os"

	"github.com/getAlby/lnpaywall/lib/logging"
	"github.com/labstack/gommon/log"
	"github.com/ziflex/lecho/v3"
)

// Logger writes to STDOUT unless a log file is configured.
func Logger(logFilePath string) *lecho.Logger {
	var target io.Writer = os.Stdout
	var fileErr error
	if logFilePath != "" {
		file, err := logging.GetLoggingFile(logFilePath)
		if err != nil {
			fileErr = err
		} else {
			target = file
		}
	}
	logger := lecho.New(
		target,
		lecho.WithLevel(log.DEBUG),
		lecho.WithTimestamp(),
	)
	if fileErr != nil {
		logger.Errorf("failed to open logging file, logging to STDOUT: %v", fileErr)
	}
	return logger
}
