package bootstrap

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeedLogPathFollowsAppLog(t *testing.T) {
	assert.Equal(t, filepath.Join("/var/log/notes", "notification.log"), feedLogPath("/var/log/notes/app.log"))
	assert.Equal(t, filepath.Join("logs", "notification.log"), feedLogPath("logs/app.log"))
	assert.Equal(t, "notification.log", feedLogPath("app.log"))
}
