package handlers

import (
	"net/http"
	"time"

	"github.com/Imdachu/imf-gadget/docs"
	"github.com/Imdachu/imf-gadget/models"
	"github.com/gin-gonic/gin"
)

// Root handles GET /
func Root(c *gin.Context) {
	c.String(http.StatusOK, "IMF Gadget API is running!")
}

// Health handles GET /health
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// OpenAPIDocument builds the API description with the current status enum
func OpenAPIDocument() docs.OpenAPIDocument {
	statuses := make([]string, len(models.GadgetStatuses))
	for i, s := range models.GadgetStatuses {
		statuses[i] = string(s)
	}
	return docs.Document(statuses)
}

// GetOpenAPISpec handles GET /docs/openapi.yaml
func GetOpenAPISpec(c *gin.Context) {
	out, err := docs.YAML(OpenAPIDocument())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render API document"})
		return
	}
	c.Data(http.StatusOK, "application/yaml", out)
}
