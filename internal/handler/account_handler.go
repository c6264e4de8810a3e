package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cpeacock1649-gif/layer-builder/internal/service"
)

// AccountHandler handles account management endpoints.
type AccountHandler struct {
	accountService service.AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountService service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// Create handles POST /api/v1/accounts
// @Summary Create an account
// @Description Create a new client account with an empty program
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body AccountRequest true "Account name"
// @Success 201 {object} Response{data=domain.Account} "Created account"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 409 {object} ErrorResponseBody "Account name already exists"
// @Security BearerAuth
// @Router /accounts [post]
func (h *AccountHandler) Create(c *gin.Context) {
	var input AccountRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	account, err := h.accountService.Create(c.Request.Context(), input.Name)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, account)
}

// List handles GET /api/v1/accounts
// @Summary List accounts
// @Description List all client accounts with pagination
// @Tags accounts
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Account,meta=PagMeta} "List of accounts"
// @Security BearerAuth
// @Router /accounts [get]
func (h *AccountHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	accounts, total, err := h.accountService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, accounts, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/accounts/:id
// @Summary Get account by ID
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID (UUID)"
// @Success 200 {object} Response{data=domain.Account} "Account"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Account not found"
// @Security BearerAuth
// @Router /accounts/{id} [get]
func (h *AccountHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid account ID")
		return
	}

	account, err := h.accountService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, account)
}

// Rename handles PUT /api/v1/accounts/:id
// @Summary Rename an account
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path string true "Account ID (UUID)"
// @Param request body AccountRequest true "New account name"
// @Success 200 {object} Response{data=domain.Account} "Updated account"
// @Failure 400 {object} ErrorResponseBody "Invalid ID or validation error"
// @Failure 404 {object} ErrorResponseBody "Account not found"
// @Failure 409 {object} ErrorResponseBody "Account name already exists"
// @Security BearerAuth
// @Router /accounts/{id} [put]
func (h *AccountHandler) Rename(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid account ID")
		return
	}

	var input AccountRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	account, err := h.accountService.Rename(c.Request.Context(), id, input.Name)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, account)
}

// Delete handles DELETE /api/v1/accounts/:id
// @Summary Delete an account
// @Description Delete an account along with its program and file history
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Account deleted"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Account not found"
// @Security BearerAuth
// @Router /accounts/{id} [delete]
func (h *AccountHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid account ID")
		return
	}

	if err := h.accountService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "account deleted"})
}

// Clone handles POST /api/v1/accounts/:id/clone
// @Summary Clone an account
// @Description Create a new account carrying a copy of the source account's program
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path string true "Source account ID (UUID)"
// @Param request body AccountRequest true "Name for the cloned account"
// @Success 201 {object} Response{data=domain.Account} "Cloned account"
// @Failure 400 {object} ErrorResponseBody "Invalid ID or validation error"
// @Failure 404 {object} ErrorResponseBody "Source account not found"
// @Failure 409 {object} ErrorResponseBody "Account name already exists"
// @Security BearerAuth
// @Router /accounts/{id}/clone [post]
func (h *AccountHandler) Clone(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid account ID")
		return
	}

	var input AccountRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	clone, err := h.accountService.Clone(c.Request.Context(), id, input.Name)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, clone)
}
