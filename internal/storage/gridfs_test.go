package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileKey(t *testing.T) {
	key := FileKey("5b169e11101f1e1ad3d7f1f5", "vacation photo.PNG")

	assert.True(t, strings.HasPrefix(key, "5b169e11101f1e1ad3d7f1f5"))
	assert.True(t, strings.HasSuffix(key, ".PNG"))
	assert.NotContains(t, key, " ")
}

func TestFileKeyWithoutExtension(t *testing.T) {
	key := FileKey("5b169e11101f1e1ad3d7f1f5", "README")

	assert.True(t, strings.HasPrefix(key, "5b169e11101f1e1ad3d7f1f5"))
	assert.NotContains(t, key, ".")
}

func TestFileKeyTrailingDot(t *testing.T) {
	key := FileKey("5b169e11101f1e1ad3d7f1f5", "archive.")

	assert.NotContains(t, key, ".")
}
