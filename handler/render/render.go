package render

import (
	"encoding/json"
	"net/http"
	"os"
	"strconv"

	"custody/core"
	"custody/handler/codes"

	"github.com/sirupsen/logrus"
)

// ResponseErrorMessageAsHint expose messages of unknown errors
var ResponseErrorMessageAsHint bool

func init() {
	v := os.Getenv("RESPONSE_ERROR_MESSAGE_AS_HINT")
	ResponseErrorMessageAsHint, _ = strconv.ParseBool(v)
}

// H map
type H map[string]interface{}

// ErrorResponse error body
type ErrorResponse struct {
	Code      int    `json:"code"`
	Kind      string `json:"kind"`
	Msg       string `json:"msg"`
	Retryable bool   `json:"retryable"`
}

// JSON render with json
func JSON(w http.ResponseWriter, v interface{}) {
	Status(w, http.StatusOK, v)
}

// Status render v with statusCode
func Status(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Errorln("render.JSON")
	}
}

// Error write err with the status of its kind
func Error(w http.ResponseWriter, err error) {
	ErrorWithStatus(w, codes.Status(err), err)
}

// ErrorWithStatus write err with statusCode
func ErrorWithStatus(w http.ResponseWriter, statusCode int, err error) {
	code := core.CodeOf(err)

	resp := ErrorResponse{
		Code:      int(code),
		Kind:      code.Kind(),
		Msg:       err.Error(),
		Retryable: code.Retryable(),
	}

	if statusCode == http.StatusNotFound {
		resp.Kind = "not_found"
	} else if statusCode >= http.StatusInternalServerError && !ResponseErrorMessageAsHint {
		resp.Msg = http.StatusText(statusCode)
	}

	Status(w, statusCode, resp)
}

// BadRequest bad request error
func BadRequest(w http.ResponseWriter, err error) {
	ErrorWithStatus(w, http.StatusBadRequest, err)
}

// NotFoundRequest not found request error
func NotFoundRequest(w http.ResponseWriter, err error) {
	ErrorWithStatus(w, http.StatusNotFound, err)
}
