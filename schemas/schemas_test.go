package schemas

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsageSchema_ValidJSON(t *testing.T) {
	data, err := os.ReadFile("usage.schema.json")
	require.NoError(t, err, "should be able to read schema file")

	var v interface{}
	assert.NoError(t, json.Unmarshal(data, &v), "schema file should be valid JSON")
	assert.Equal(t, string(data), Usage, "embedded schema should match the file on disk")
}

func TestUsageSchema_RecordShape(t *testing.T) {
	var schemaObj map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(Usage), &schemaObj))

	assert.Equal(t, "array", schemaObj["type"])
	_, hasSchema := schemaObj["$schema"]
	assert.True(t, hasSchema)

	defs, ok := schemaObj["definitions"].(map[string]interface{})
	require.True(t, ok)
	record, ok := defs["record"].(map[string]interface{})
	require.True(t, ok)

	required, ok := record["required"].([]interface{})
	require.True(t, ok)
	assert.Equal(t, []interface{}{"rank", "name", "safe_name", "usage", "ability", "item", "moves", "spread"}, required)
}
