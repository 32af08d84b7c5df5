package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"overcooked-tables/floor-svc/internal/domain"

	validatorv10 "github.com/go-playground/validator/v10"
)

var defaultValidator = NewValidator()

// NewValidator returns the request validator with the cross-field rules
// registered.
func NewValidator() *validatorv10.Validate {
	v := validatorv10.New()
	v.RegisterStructValidation(newOrderStructValidation, domain.NewOrder{})
	return v
}

// newOrderStructValidation rejects guest payment methods outside the known
// set and takeaway orders that name a table.
func newOrderStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(domain.NewOrder)

	if req.PaymentMethod != "" && !req.PaymentMethod.Valid() {
		sl.ReportError(req.PaymentMethod, "payment_method", "PaymentMethod", "payment_method", "")
	}
	if req.Type == domain.TypeTakeaway && req.TableNumber != "" && req.TableNumber != domain.TakeawayTable {
		sl.ReportError(req.TableNumber, "table_number", "TableNumber", "takeaway_table", "")
	}
}

// bindAndValidate decodes the JSON body into out and validates it. On failure
// it writes the 400 response itself.
func bindAndValidate(w http.ResponseWriter, r *http.Request, out interface{}, v *validatorv10.Validate) error {
	if v == nil {
		v = defaultValidator
	}
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error": "invalid_request_body",
			"msg":   err.Error(),
		})
		return err
	}

	if err := v.Struct(out); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":  "validation_failed",
			"fields": validationErrorsToMap(err),
		})
		return err
	}
	return nil
}

func validationErrorsToMap(err error) map[string]string {
	out := map[string]string{}
	var ve validatorv10.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			out[fe.StructNamespace()] = fe.Error()
		}
	} else {
		out["error"] = err.Error()
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
