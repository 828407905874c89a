package handlers

import (
	"net/http"

	"github.com/Imdachu/imf-gadget/metrics"
	"github.com/Imdachu/imf-gadget/services"
	"github.com/gin-gonic/gin"
)

// GetGadgets handles GET /gadgets and GET /gadgets?status=X
func GetGadgets(c *gin.Context) {
	views, err := gadgets.List(c.Request.Context(), c.Query("status"))
	metrics.GadgetOperations.WithLabelValues("list", outcome(err)).Inc()
	if err != nil {
		respondError(c, "GADGETS", err, errorMessages{internal: "Failed to fetch gadgets"})
		return
	}

	c.JSON(http.StatusOK, views)
}

// CreateGadget handles POST /gadgets
func CreateGadget(c *gin.Context) {
	var req services.GadgetInput
	if err := bindOptionalJSON(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	gadget, err := gadgets.Create(c.Request.Context(), req)
	metrics.GadgetOperations.WithLabelValues("create", outcome(err)).Inc()
	if err != nil {
		respondError(c, "GADGETS", err, errorMessages{
			validation: "Invalid gadget status",
			internal:   "Failed to create gadget",
		})
		return
	}

	c.JSON(http.StatusCreated, gadget)
}

// UpdateGadget handles PATCH /gadgets/:id
func UpdateGadget(c *gin.Context) {
	var req services.GadgetInput
	if err := bindOptionalJSON(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	gadget, err := gadgets.Update(c.Request.Context(), c.Param("id"), req)
	metrics.GadgetOperations.WithLabelValues("update", outcome(err)).Inc()
	if err != nil {
		respondError(c, "GADGETS", err, errorMessages{
			validation:     "Invalid gadget name or status",
			notFound:       "Gadget not found or update failed",
			internal:       "Gadget not found or update failed",
			internalStatus: http.StatusNotFound,
		})
		return
	}

	c.JSON(http.StatusOK, gadget)
}

// DecommissionGadget handles DELETE /gadgets/:id. Gadgets are never
// removed, only marked Decommissioned.
func DecommissionGadget(c *gin.Context) {
	gadget, err := gadgets.Decommission(c.Request.Context(), c.Param("id"))
	metrics.GadgetOperations.WithLabelValues("decommission", outcome(err)).Inc()
	if err != nil {
		respondError(c, "GADGETS", err, errorMessages{
			notFound:       "Gadget not found or decommission failed",
			internal:       "Gadget not found or decommission failed",
			internalStatus: http.StatusNotFound,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Gadget decommissioned",
		"gadget":  gadget,
	})
}

// SelfDestructGadget handles POST /gadgets/:id/self-destruct
func SelfDestructGadget(c *gin.Context) {
	result, err := gadgets.SelfDestruct(c.Request.Context(), c.Param("id"))
	metrics.GadgetOperations.WithLabelValues("self_destruct", outcome(err)).Inc()
	if err != nil {
		respondError(c, "SELF_DESTRUCT", err, errorMessages{
			notFound: "Gadget not found",
			internal: "Failed to initiate self-destruct sequence",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":          result.Message,
		"confirmationCode": result.ConfirmationCode,
	})
}
