package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLoggingFile(t *testing.T) {
	dir := t.TempDir()
	day := time.Now().Format("2006-01-02")

	file, err := GetLoggingFile(filepath.Join(dir, "paywall.log"))
	require.NoError(t, err)
	defer file.Close()
	assert.Equal(t, filepath.Join(dir, "paywall-"+day+".log"), file.Name())

	bare, err := GetLoggingFile(filepath.Join(dir, "paywall"))
	require.NoError(t, err)
	defer bare.Close()
	_, err = os.Stat(filepath.Join(dir, "paywall-"+day+".log"))
	assert.NoError(t, err)
}
