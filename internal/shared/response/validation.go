package response

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// validationDetails extracts per-field messages from an ozzo-validation error.
func validationDetails(err error) map[string]string {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return nil
	}

	details := make(map[string]string, len(verrs))
	for field, ferr := range verrs {
		if ferr != nil {
			details[field] = ferr.Error()
		}
	}
	return details
}
