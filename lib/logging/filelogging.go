package logging

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// GetLoggingFile opens the log file for today, one file per day:
// /var/log/paywall.log becomes /var/log/paywall-2024-03-01.log.
func GetLoggingFile(path string) (*os.File, error) {
	suffix := time.Now().Format("-2006-01-02")
	extension := filepath.Ext(path)
	if extension != "" {
		path = strings.TrimSuffix(path, extension) + suffix + extension
	} else {
		path = path + suffix + ".log"
	}
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0664)
}
