package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorrectionRequestShape(t *testing.T) {
	req := NewCorrectionRequest("user-1", "rec-2024-01-10", "2024-01-10",
		"forgot to clock out", "2024-01-11T08:00:00Z")

	assert.NotEmpty(t, req.ID)
	assert.Equal(t, CorrectionPending, req.Status)
	assert.Nil(t, req.ProcessedAt)
	assert.Nil(t, req.ProcessedBy)

	raw, err := json.Marshal(req)
	require.NoError(t, err)

	var decoded CorrectionRequest
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, *req, decoded)
}
