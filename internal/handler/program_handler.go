package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cpeacock1649-gif/layer-builder/internal/csvexport"
	"github.com/cpeacock1649-gif/layer-builder/internal/excelexport"
	"github.com/cpeacock1649-gif/layer-builder/internal/middleware"
	"github.com/cpeacock1649-gif/layer-builder/internal/service"
)

// ProgramHandler handles program read/edit, document import, and export
// endpoints.
type ProgramHandler struct {
	programService service.ProgramService
}

// NewProgramHandler creates a new ProgramHandler.
func NewProgramHandler(programService service.ProgramService) *ProgramHandler {
	return &ProgramHandler{programService: programService}
}

// Get handles GET /api/v1/accounts/:id/program
// @Summary Get the account's program
// @Description Get the assembled program structure, layers sorted by attachment
// @Tags programs
// @Produce json
// @Param id path string true "Account ID (UUID)"
// @Success 200 {object} Response{data=domain.Program} "Program"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Account not found"
// @Security BearerAuth
// @Router /accounts/{id}/program [get]
func (h *ProgramHandler) Get(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid account ID")
		return
	}

	prog, err := h.programService.GetProgram(c.Request.Context(), accountID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, prog)
}

// Save handles PUT /api/v1/accounts/:id/program
// @Summary Replace the account's program
// @Description Replace the program layers, e.g. after a manual edit. Validation findings come back as warnings and never block the save.
// @Tags programs
// @Accept json
// @Produce json
// @Param id path string true "Account ID (UUID)"
// @Param request body SaveProgramRequest true "Program layers"
// @Success 200 {object} Response{data=ProgramWithWarnings} "Saved program with validation warnings"
// @Failure 400 {object} ErrorResponseBody "Invalid ID or validation error"
// @Failure 404 {object} ErrorResponseBody "Account not found"
// @Security BearerAuth
// @Router /accounts/{id}/program [put]
func (h *ProgramHandler) Save(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid account ID")
		return
	}

	var input SaveProgramRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	prog, warnings, err := h.programService.SaveProgram(c.Request.Context(), accountID, input.Layers)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"program": prog, "warnings": warnings})
}

// Clear handles DELETE /api/v1/accounts/:id/program
// @Summary Clear the account's program
// @Description Remove all layers from the account's program. Import history is kept.
// @Tags programs
// @Produce json
// @Param id path string true "Account ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Program cleared"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Security BearerAuth
// @Router /accounts/{id}/program [delete]
func (h *ProgramHandler) Clear(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid account ID")
		return
	}

	if err := h.programService.ClearProgram(c.Request.Context(), accountID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "program cleared"})
}

// ImportSpreadsheets handles POST /api/v1/accounts/:id/import/spreadsheets
// @Summary Import placement spreadsheets
// @Description Parse up to 10 placement spreadsheets (xlsx/xlsm), merge them, and fold the result into the account's program
// @Tags programs
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Account ID (UUID)"
// @Param files formData file true "Spreadsheet files (repeatable)"
// @Param debug formData string false "Set to true to include per-document parse traces"
// @Success 200 {object} Response{data=service.SpreadsheetImportResult} "Import result"
// @Failure 400 {object} ErrorResponseBody "Invalid ID, missing files, ceiling exceeded, or unsupported file type"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Security BearerAuth
// @Router /accounts/{id}/import/spreadsheets [post]
func (h *ProgramHandler) ImportSpreadsheets(c *gin.Context) {
	input, ok := h.bindImportInput(c)
	if !ok {
		return
	}

	result, err := h.programService.ImportSpreadsheets(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// ImportPDFs handles POST /api/v1/accounts/:id/import/pdfs
// @Summary Import quote/binder/policy PDFs
// @Description Extract text from up to 25 PDFs, reconcile limit mentions and part-of allocations, and fold the result into the account's program
// @Tags programs
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Account ID (UUID)"
// @Param files formData file true "PDF files (repeatable)"
// @Success 200 {object} Response{data=service.TextImportResult} "Import result"
// @Failure 400 {object} ErrorResponseBody "Invalid ID, missing files, ceiling exceeded, or unsupported file type"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Security BearerAuth
// @Router /accounts/{id}/import/pdfs [post]
func (h *ProgramHandler) ImportPDFs(c *gin.Context) {
	input, ok := h.bindImportInput(c)
	if !ok {
		return
	}

	result, err := h.programService.ImportTextDocuments(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// ListFiles handles GET /api/v1/accounts/:id/files
// @Summary List imported documents
// @Description List the account's import history with pagination
// @Tags programs
// @Produce json
// @Param id path string true "Account ID (UUID)"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.FileMeta,meta=PagMeta} "List of imported documents"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Security BearerAuth
// @Router /accounts/{id}/files [get]
func (h *ProgramHandler) ListFiles(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid account ID")
		return
	}

	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	files, total, err := h.programService.ListFiles(c.Request.Context(), accountID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, files, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// ExportCSV handles GET /api/v1/accounts/:id/export/csv
// @Summary Export the program as CSV
// @Description Download the program as a flat carrier-per-row CSV file with a UTF-8 BOM
// @Tags programs
// @Produce text/csv
// @Param id path string true "Account ID (UUID)"
// @Success 200 {file} file "CSV file"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Account not found"
// @Security BearerAuth
// @Router /accounts/{id}/export/csv [get]
func (h *ProgramHandler) ExportCSV(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid account ID")
		return
	}

	prog, err := h.programService.GetProgram(c.Request.Context(), accountID)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := csvexport.BuildFilename(prog.Account)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Writer.WriteHeader(http.StatusOK)

	if _, err := c.Writer.Write(csvexport.BOM); err != nil {
		return
	}
	w := csvexport.NewWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		return
	}
	if err := w.WriteProgram(prog); err != nil {
		return
	}
	w.Flush()
}

// ExportXLSX handles GET /api/v1/accounts/:id/export/xlsx
// @Summary Export the program as a workbook
// @Description Download the program as a styled Program Structure workbook
// @Tags programs
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Account ID (UUID)"
// @Success 200 {file} file "Workbook file"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Account not found"
// @Security BearerAuth
// @Router /accounts/{id}/export/xlsx [get]
func (h *ProgramHandler) ExportXLSX(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid account ID")
		return
	}

	prog, err := h.programService.GetProgram(c.Request.Context(), accountID)
	if err != nil {
		HandleError(c, err)
		return
	}

	data, err := excelexport.Export(prog)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := excelexport.BuildFilename(prog.Account)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// bindImportInput reads the account ID, uploaded files, and debug flag from
// a multipart import request. On failure the error response is already
// written and ok is false.
func (h *ProgramHandler) bindImportInput(c *gin.Context) (service.ImportInput, bool) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid account ID")
		return service.ImportInput{}, false
	}

	userID, err := middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return service.ImportInput{}, false
	}

	form, err := c.MultipartForm()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_FORM", "multipart form expected")
		return service.ImportInput{}, false
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		RespondError(c, http.StatusBadRequest, "MISSING_FILES", "at least one file is required")
		return service.ImportInput{}, false
	}

	files := make([]service.ImportFile, 0, len(headers))
	for _, fh := range headers {
		data, err := readMultipartFile(fh)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "UNREADABLE_FILE", "could not read uploaded file "+fh.Filename)
			return service.ImportInput{}, false
		}
		files = append(files, service.ImportFile{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	return service.ImportInput{
		AccountID:  accountID,
		UploadedBy: userID,
		Files:      files,
		Debug:      c.PostForm("debug") == "true",
	}, true
}

func readMultipartFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(f)
}
