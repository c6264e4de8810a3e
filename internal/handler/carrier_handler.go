package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cpeacock1649-gif/layer-builder/internal/service"
)

// CarrierHandler handles the carrier reference list endpoints.
type CarrierHandler struct {
	carrierService service.CarrierService
}

// NewCarrierHandler creates a new CarrierHandler.
func NewCarrierHandler(carrierService service.CarrierService) *CarrierHandler {
	return &CarrierHandler{carrierService: carrierService}
}

// Add handles POST /api/v1/carriers
// @Summary Add a carrier
// @Description Add a carrier name to the reference list used for manual entry
// @Tags carriers
// @Accept json
// @Produce json
// @Param request body CarrierRequest true "Carrier name"
// @Success 201 {object} Response{data=domain.CarrierEntry} "Created carrier entry"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 409 {object} ErrorResponseBody "Carrier name already exists"
// @Security BearerAuth
// @Router /carriers [post]
func (h *CarrierHandler) Add(c *gin.Context) {
	var input CarrierRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	entry, err := h.carrierService.Add(c.Request.Context(), input.CarrierName)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, entry)
}

// List handles GET /api/v1/carriers
// @Summary List carriers
// @Description List all known carrier names, sorted alphabetically
// @Tags carriers
// @Produce json
// @Success 200 {object} Response{data=[]domain.CarrierEntry} "List of carriers"
// @Security BearerAuth
// @Router /carriers [get]
func (h *CarrierHandler) List(c *gin.Context) {
	entries, err := h.carrierService.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, entries)
}

// Delete handles DELETE /api/v1/carriers/:id
// @Summary Delete a carrier
// @Tags carriers
// @Produce json
// @Param id path string true "Carrier ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Carrier deleted"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Carrier not found"
// @Security BearerAuth
// @Router /carriers/{id} [delete]
func (h *CarrierHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid carrier ID")
		return
	}

	if err := h.carrierService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "carrier deleted"})
}
