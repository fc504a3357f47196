package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/vbonduro/fishedex/internal/domain"
)

const maxJSONBody = 1 << 20

var validate = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": domain.Message(err)})
}

func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Validationf("Invalid id %q", r.PathValue("id"))
	}
	return id, nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.Validationf("Request body is required")
		}
		return domain.Validationf("Invalid JSON body: %v", err)
	}
	return nil
}

// check validates req. A missing required field yields requiredMsg; any other
// rule failure names the offending field.
func check(req any, requiredMsg string) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("failed to validate request: %w", err)
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return domain.Validationf("%s", requiredMsg)
		}
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "datetime":
		return domain.Validationf("Invalid %s: expected a YYYY-MM-DD date", fe.Field())
	case "email":
		return domain.Validationf("Invalid %s: expected an email address", fe.Field())
	case "max":
		return domain.Validationf("Invalid %s: must be at most %s characters", fe.Field(), fe.Param())
	case "gte", "gt", "min":
		return domain.Validationf("Invalid %s: must be %s %s", fe.Field(), fe.Tag(), fe.Param())
	default:
		return domain.Validationf("Invalid %s", fe.Field())
	}
}

// closeWithLog closes c and logs any error, using label to identify the resource.
func closeWithLog(c io.Closer, label string, logger *slog.Logger) {
	if err := c.Close(); err != nil {
		logger.Error("failed to close resource", "label", label, "error", err)
	}
}
