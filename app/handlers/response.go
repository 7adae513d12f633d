package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/Rakhulsr/wishcrate/app/auth"
	"github.com/Rakhulsr/wishcrate/app/helpers"
	"github.com/Rakhulsr/wishcrate/app/services"
	"github.com/go-playground/validator/v10"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

const (
	CodeNotFound               = "not_found"
	CodeUnauthorized           = "unauthorized"
	CodeUnauthenticated        = "unauthenticated"
	CodeInsufficientStock      = "insufficient_stock"
	CodeEmptyCart              = "empty_cart"
	CodeInvalidStateTransition = "invalid_state_transition"
	CodeConflict               = "conflict"
	CodeInvalidRequest         = "invalid_request"
	CodePaymentUnavailable     = "payment_unavailable"
	CodeInternal               = "internal_error"
)

type ErrorResponse struct {
	Error   string            `json:"error"`
	Code    string            `json:"code"`
	Details map[string]string `json:"details,omitempty"`
}

var validate = validator.New()

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized, CodeUnauthenticated
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusForbidden, CodeUnauthorized
	case errors.Is(err, services.ErrInsufficientStock):
		return http.StatusConflict, CodeInsufficientStock
	case errors.Is(err, services.ErrEmptyCart):
		return http.StatusUnprocessableEntity, CodeEmptyCart
	case errors.Is(err, services.ErrInvalidStateTransition):
		return http.StatusConflict, CodeInvalidStateTransition
	case errors.Is(err, services.ErrConflict):
		return http.StatusConflict, CodeConflict
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest, CodeInvalidRequest
	case errors.Is(err, services.ErrPaymentUnavailable):
		return http.StatusServiceUnavailable, CodePaymentUnavailable
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

func JSONError(rnd *render.Render, w http.ResponseWriter, status int, code, message string) {
	_ = rnd.JSON(w, status, ErrorResponse{Error: message, Code: code})
}

// WriteError renders a service error. Internal errors are logged and their
// message is not exposed.
func WriteError(rnd *render.Render, w http.ResponseWriter, r *http.Request, err error) {
	status, code := errorStatus(err)
	resp := ErrorResponse{Error: err.Error(), Code: code}

	var stockErr *services.InsufficientStockError
	if errors.As(err, &stockErr) {
		resp.Details = map[string]string{
			"productId": stockErr.ProductID,
			"available": strconv.Itoa(stockErr.Available),
			"requested": strconv.Itoa(stockErr.Requested),
		}
	}

	if status == http.StatusInternalServerError {
		helpers.LoggerFromContext(r.Context()).Error("request failed", zap.Error(err))
		resp.Error = "internal server error"
	}
	_ = rnd.JSON(w, status, resp)
}

// BindJSON decodes and validates the request body, writing a 400 response and
// returning false when either step fails.
func BindJSON(rnd *render.Render, w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	return bindJSON(rnd, w, r, dst, false)
}

// BindOptionalJSON is BindJSON for endpoints where an empty body means
// "use the defaults". Chunked requests report no length, so emptiness is
// detected from the decoder.
func BindOptionalJSON(rnd *render.Render, w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	return bindJSON(rnd, w, r, dst, true)
}

func bindJSON(rnd *render.Render, w http.ResponseWriter, r *http.Request, dst interface{}, optional bool) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if optional && errors.Is(err, io.EOF) {
			return true
		}
		JSONError(rnd, w, http.StatusBadRequest, CodeInvalidRequest, "malformed JSON body")
		return false
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			_ = rnd.JSON(w, http.StatusBadRequest, ErrorResponse{
				Error:   "validation failed",
				Code:    CodeInvalidRequest,
				Details: helpers.FormatValidationErrors(verrs),
			})
			return false
		}
		WriteError(rnd, w, r, err)
		return false
	}
	return true
}

// caller returns the identity stored by the authentication middleware.
func caller(r *http.Request) auth.Identity {
	identity, _ := helpers.IdentityFromContext(r.Context())
	return identity
}

func queryInt(r *http.Request, name string) (int, bool) {
	n, err := strconv.Atoi(r.URL.Query().Get(name))
	return n, err == nil
}
