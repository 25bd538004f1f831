// File: services/booking/validation.go
package booking

import (
	"fmt"
	"regexp"

	"reservekit/models"
	"reservekit/utils"
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9][0-9\-\s()]{5,19}$`)
)

// validateCustomerInfo checks the format of whatever contact fields were
// supplied; all fields are optional.
func validateCustomerInfo(info models.CustomerInfo) error {
	if info.Email != "" && !emailPattern.MatchString(info.Email) {
		return utils.NewValidationError(utils.CodeInvalidFieldFormat,
			fmt.Sprintf("customer email %q is not a valid email address", info.Email))
	}
	if info.Phone != "" && !phonePattern.MatchString(info.Phone) {
		return utils.NewValidationError(utils.CodeInvalidFieldFormat,
			fmt.Sprintf("customer phone %q is not a valid phone number", info.Phone))
	}
	return nil
}
