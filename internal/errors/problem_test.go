package errors

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProblemDetails_MarshalJSON(t *testing.T) {
	problem := NewProblemDetails(http.StatusUnprocessableEntity, TypeTableNotLoaded, "Unprocessable Entity", "table missing", "/api/filter/split").
		WithExtension("error_code", CodeTableNotLoaded).
		WithExtension("status", 999)

	data, err := json.Marshal(problem)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, TypeTableNotLoaded, got["type"])
	assert.Equal(t, "Unprocessable Entity", got["title"])
	assert.Equal(t, float64(http.StatusUnprocessableEntity), got["status"], "extensions never override standard members")
	assert.Equal(t, "table missing", got["detail"])
	assert.Equal(t, "/api/filter/split", got["instance"])
	assert.Equal(t, CodeTableNotLoaded, got["error_code"])
}

func TestProblemDetails_OmitsEmptyMembers(t *testing.T) {
	data, err := json.Marshal(NewProblemDetails(http.StatusNotFound, TypeNotFound, "Not Found", "", ""))
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &got))
	assert.NotContains(t, got, "detail")
	assert.NotContains(t, got, "instance")
	assert.Len(t, got, 3)
}
