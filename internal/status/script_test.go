package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScript(t *testing.T) {
	js := Script()

	assert.Contains(t, js, `"closed":"bg-red-500"`)
	assert.Contains(t, js, `"connecting":"bg-orange-500"`)
	assert.Contains(t, js, `"open":"bg-green-500"`)
	assert.Contains(t, js, `getElementById('ws-status-circle')`)
	assert.Contains(t, js, `getElementById('ws-status-ping')`)
	assert.Contains(t, js, `"retries-failed"`)
	assert.Contains(t, js, `updateStatus('closed')`)
}
