package response

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"travelcms/errors"
	"travelcms/validator"
)

// TotalCountHeader carries the unpaginated size of a list response.
const TotalCountHeader = "X-Total-Count"

// ErrorBody is the shape of every error response. Detail is either a string or
// a list of validator.FieldError.
type ErrorBody struct {
	Detail interface{} `json:"detail"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// SuccessWithTotal writes a list body and the total row count header.
func SuccessWithTotal(c *gin.Context, data interface{}, total int64) {
	c.Header(TotalCountHeader, strconv.FormatInt(total, 10))
	c.JSON(http.StatusOK, data)
}

// Error writes a string detail with the given status.
func Error(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorBody{Detail: message})
}

func ServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Not authenticated")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Not enough permissions")
}

func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Not found"
	}
	Error(c, http.StatusNotFound, message)
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func Conflict(c *gin.Context, message string) {
	if message == "" {
		message = "Conflict"
	}
	Error(c, http.StatusConflict, message)
}

// ValidationError writes the list form of detail with status 422.
func ValidationError(c *gin.Context, details []validator.FieldError) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, ErrorBody{Detail: details})
}

// BindError reports a failed ShouldBind*. Constraint failures become located
// entries under prefix; malformed bodies become a single entry.
func BindError(c *gin.Context, err error, prefix string) {
	if details := validator.Details(err, prefix); len(details) > 0 {
		ValidationError(c, details)
		return
	}
	ValidationError(c, []validator.FieldError{{Loc: []string{prefix}, Msg: err.Error()}})
}

// StatusFor maps an error code to its HTTP status.
func StatusFor(code errors.ErrorCode) int {
	switch code {
	case errors.ErrCodeDBNotFound, errors.ErrCodeUserNotFound:
		return http.StatusNotFound
	case errors.ErrCodeDBDuplicate, errors.ErrCodeUserExists:
		return http.StatusConflict
	case errors.ErrCodeValidation, errors.ErrCodeRequiredField, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidOperation, errors.ErrCodeInvalidRole:
		return http.StatusBadRequest
	case errors.ErrCodeUnauthorized, errors.ErrCodeInvalidToken, errors.ErrCodeMissingToken,
		errors.ErrCodeInvalidPassword:
		return http.StatusUnauthorized
	case errors.ErrCodeForbidden:
		return http.StatusForbidden
	case errors.ErrCodeStorage:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// FromError writes the response for an error returned by a service.
func FromError(c *gin.Context, err error) {
	if appErr := errors.GetAppError(err); appErr != nil {
		status := StatusFor(appErr.Code)
		if status == http.StatusInternalServerError {
			_ = c.Error(err)
			ServerError(c)
			return
		}
		Error(c, status, appErr.Message)
		return
	}
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		NotFound(c, "")
		return
	}
	_ = c.Error(err)
	ServerError(c)
}
