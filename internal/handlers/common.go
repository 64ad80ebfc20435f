package handlers

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"delizzia_backoffice/internal/export"
	"delizzia_backoffice/internal/repositories"
	"delizzia_backoffice/internal/rules"
	"delizzia_backoffice/internal/services"
	"delizzia_backoffice/internal/validation"
	"delizzia_backoffice/pkg/utils"
)

var notFoundErrors = []error{
	services.ErrMenuItemNotFound,
	services.ErrInventoryItemNotFound,
	services.ErrCustomerNotFound,
	services.ErrOrderNotFound,
	services.ErrPurchaseNotFound,
	services.ErrStaffNotFound,
	services.ErrShiftNotFound,
	repositories.ErrNotFound,
}

var conflictErrors = []error{
	repositories.ErrDuplicateKey,
	services.ErrPhoneNumberExists,
	services.ErrStatusTransition,
	services.ErrShiftOverlap,
	services.ErrStaffInUse,
}

var badRequestErrors = []error{
	rules.ErrInvalidInput,
	services.ErrDateFormat,
	services.ErrInvalidStatus,
	services.ErrZeroAdjustment,
	export.ErrUnknownFormat,
}

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// respondServiceError logs err under op and maps it to the API error
// envelope. Validation failures list every rejected field.
func respondServiceError(c *gin.Context, op string, err error, message string) {
	utils.LogError(err, op, map[string]interface{}{"request_id": c.GetString(utils.RequestIDKey)})
	if verrs, ok := validation.As(err); ok {
		fields := make([]utils.FieldError, len(verrs))
		for i, e := range verrs {
			fields[i] = utils.FieldError{Field: e.Field, Reason: e.Reason}
		}
		utils.RespondValidationErrors(c, fields)
		return
	}
	switch {
	case isAny(err, notFoundErrors):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, message, err.Error()))
	case isAny(err, conflictErrors):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, message, err.Error()))
	case isAny(err, badRequestErrors):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, message, err.Error()))
	case errors.Is(err, services.ErrRefreshInProgress):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusServiceUnavailable, utils.ErrCodeServiceUnavailable, message, err.Error()))
	default:
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, message, "Internal error"))
	}
}

// bindJSON decodes the request body into req, answering 400 on failure.
func bindJSON(c *gin.Context, op string, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.LogError(err, op+": Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload", err.Error()))
		return false
	}
	return true
}

// bindQuery decodes list filters from the query string.
func bindQuery(c *gin.Context, filters interface{}) bool {
	if err := c.ShouldBindQuery(filters); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return false
	}
	return true
}

// renderer writes one export format of a report.
type renderer func(w io.Writer) error

// respondReport sends body as JSON or, with ?format=csv|xlsx, as a download.
func respondReport(c *gin.Context, op, filename string, body interface{}, csv, xlsx renderer) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		respondServiceError(c, op, err, "Unsupported report format")
		return
	}
	var render renderer
	switch format {
	case export.FormatCSV:
		render = csv
	case export.FormatXLSX:
		render = xlsx
	default:
		c.JSON(http.StatusOK, body)
		return
	}

	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		respondServiceError(c, op, err, "Failed to export report")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+format.Filename(filename)+`"`)
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}
