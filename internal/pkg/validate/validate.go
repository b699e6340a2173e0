package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/nyssa-notify/internal/domain"
)

// v is the package-level singleton validator, safe for concurrent use.
var v = validator.New()

// Struct validates the given struct using its validate tags. Validation
// failures wrap domain.ErrBadRequest and list every failing field.
func Struct(s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fmt.Sprintf("field '%s' failed '%s'", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", domain.ErrBadRequest, strings.Join(msgs, "; "))
}
