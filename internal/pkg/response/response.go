// Package response defines the JSON envelopes every API route replies
// with: successes carry the payload under "data", failures carry a
// machine-readable code and a human-readable message under "error".
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type successEnvelope struct {
	Data interface{} `json:"data"`
}

type errorEnvelope struct {
	Error APIError `json:"error"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, successEnvelope{Data: data})
}

func Error(c *gin.Context, status int, code string, message string) {
	c.JSON(status, errorEnvelope{Error: APIError{Code: code, Message: message}})
}
