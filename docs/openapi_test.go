package docs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDocument_CoversEveryRoute(t *testing.T) {
	doc := Document([]string{"Available", "Decommissioned"})

	tests := []struct {
		path   string
		method string
	}{
		{"/", "get"},
		{"/register", "post"},
		{"/login", "post"},
		{"/gadgets", "get"},
		{"/gadgets", "post"},
		{"/gadgets/{id}", "patch"},
		{"/gadgets/{id}", "delete"},
		{"/gadgets/{id}/self-destruct", "post"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			item, ok := doc.Paths[tt.path]
			require.True(t, ok, "path missing")

			var op *Operation
			switch tt.method {
			case "get":
				op = item.Get
			case "post":
				op = item.Post
			case "patch":
				op = item.Patch
			case "delete":
				op = item.Delete
			}
			assert.NotNil(t, op)
		})
	}

	assert.Equal(t, bearer, doc.Paths["/gadgets"].Get.Security)
	assert.Nil(t, doc.Paths["/login"].Post.Security)
}

func TestYAML_RoundTrips(t *testing.T) {
	out, err := YAML(Document([]string{"Available"}))
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, yaml.Unmarshal(out, &parsed))
	assert.Equal(t, "3.0.3", parsed["openapi"])

	components := parsed["components"].(map[string]any)
	schemas := components["schemas"].(map[string]any)
	assert.Contains(t, schemas, "Gadget")
	assert.Contains(t, schemas, "Error")
}
