package encoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestParseJSON(t *testing.T) {
	got, err := ParseJSON[sample]([]byte(`{"name":"runs","count":3}`))
	require.NoError(t, err)
	assert.Equal(t, &sample{Name: "runs", Count: 3}, got)

	_, err = ParseJSON[sample]([]byte(`{`))
	assert.Error(t, err)
}

func TestToJSONIndent(t *testing.T) {
	data, err := ToJSONIndent(sample{Name: "a", Count: 1})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"name\": \"a\",\n  \"count\": 1\n}", string(data))
}
