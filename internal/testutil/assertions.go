package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/dom/hero-builds/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertStatusCode verifies the HTTP response status code
func AssertStatusCode(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	assert.Equal(t, expected, resp.StatusCode, "unexpected status code")
}

// AssertJSONResponse decodes JSON response into v and verifies success
func AssertJSONResponse(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	err = json.Unmarshal(body, v)
	require.NoError(t, err, "failed to unmarshal response: %s", string(body))
}

// AssertErrorResponse verifies error response with expected status and message
func AssertErrorResponse(t *testing.T, resp *http.Response, expectedStatus int, expectedMessage string) {
	t.Helper()

	assert.Equal(t, expectedStatus, resp.StatusCode, "unexpected status code")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	// Error responses are plain text in this API
	assert.Contains(t, string(body), expectedMessage, "error message mismatch")
}

// AssertOrderIndexes verifies rows carry order_index 0..n-1 in sequence
func AssertOrderIndexes(t *testing.T, rows []repository.Row) {
	t.Helper()
	for i, row := range rows {
		idx, ok := row.Int64(repository.ColOrderIndex)
		require.True(t, ok, "row %d has no order_index", i)
		assert.Equal(t, int64(i), idx, "row %d out of order", i)
	}
}

// AssertSingleRowPerKey verifies no two rows share the given column values
func AssertSingleRowPerKey(t *testing.T, rows []repository.Row, cols ...string) {
	t.Helper()
	seen := make(map[string]bool)
	for _, row := range rows {
		key := ""
		for _, col := range cols {
			key += row.String(col) + "\x1f"
		}
		assert.False(t, seen[key], "duplicate row for %v", row.Pick(cols...))
		seen[key] = true
	}
}
