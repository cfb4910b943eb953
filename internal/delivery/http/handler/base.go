package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"healthsystem/pkg/apperror"
	"healthsystem/pkg/response"
	"healthsystem/pkg/validator"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Base holds what every handler needs to decode requests and report errors.
// Mask hides database error text from clients.
type Base struct {
	log       *logrus.Logger
	validator *validator.CustomValidator
	mask      bool
}

func NewBase(log *logrus.Logger, validator *validator.CustomValidator, mask bool) Base {
	return Base{log: log, validator: validator, mask: mask}
}

// decode reads a JSON body into dst and validates it. On failure it has
// already written a 400 and returns false.
func (b Base) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.ValidationError(w, "Invalid request body")
		return false
	}
	return b.validate(w, dst)
}

func (b Base) validate(w http.ResponseWriter, dst interface{}) bool {
	if err := b.validator.Validate(dst); err != nil {
		response.ValidationError(w, b.validator.FirstError(err))
		return false
	}
	return true
}

// fail logs err and writes it as the response envelope.
func (b Base) fail(w http.ResponseWriter, r *http.Request, err error) {
	entry := b.log.WithFields(logrus.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
	})

	switch apperror.KindOf(err) {
	case apperror.KindDatabase, apperror.KindUnknown:
		entry.WithError(err).Error("Request failed")
	default:
		entry.WithError(err).Debug("Request rejected")
	}

	response.FromError(w, err, b.mask)
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.Validation("Invalid " + name)
	}
	return id, nil
}

// queryInt64 returns zero when the parameter is absent.
func queryInt64(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperror.Validation("Invalid parameter: " + name)
	}
	return v, nil
}

func queryInt(r *http.Request, name string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return v
}
