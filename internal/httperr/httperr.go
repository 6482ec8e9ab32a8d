package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

var messages = map[string]string{
	CodeSlotTaken:       "There is already an appointment in that time slot.",
	CodeBlankName:       "Name is required.",
	CodeInvalidDuration: "Duration must be greater than zero.",
	CodeNegativePrice:   "Price cannot be negative.",
	CodeClientInUse:     "Cannot delete: the client has appointments.",
	CodeServiceInUse:    "Cannot delete: appointments use this service.",
	CodeInvalidState:    "The appointment cannot change to that status.",
	CodeInvalidStatus:   "Unknown appointment status.",
	CodeClientNotFound:  "Client not found.",
	CodeServiceNotFound: "Service not found.",
	CodeServiceInactive: "The service is not active.",
	CodeMissingPhone:    "The client has no phone number.",
	CodeInvalidRule:     "Invalid recurrence rule.",
}

// conflicts are reported as 409, every other business error as 400.
var conflicts = map[string]bool{
	CodeSlotTaken:    true,
	CodeClientInUse:  true,
	CodeServiceInUse: true,
	CodeInvalidState: true,
}

func Message(code string) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return code
}

// Respond maps a use case error onto the HTTP response. Unknown errors are
// logged and reported as a generic failure.
func Respond(c *gin.Context, err error, fallbackCode string) {
	if IsExclusionConflict(err) {
		Conflict(c, CodeSlotTaken, Message(CodeSlotTaken))
		return
	}

	if be, ok := AsBusiness(err); ok {
		if conflicts[be.Code] {
			Conflict(c, be.Code, Message(be.Code))
			return
		}
		BadRequest(c, be.Code, Message(be.Code))
		return
	}

	log.Error().
		Err(err).
		Str("path", c.FullPath()).
		Str("code", fallbackCode).
		Msg("request failed")
	Internal(c, fallbackCode, "Something went wrong.")
}
