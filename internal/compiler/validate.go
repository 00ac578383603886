package compiler

import (
	"fmt"
	"strings"

	"github.com/roach88/tabula/internal/ir"
)

// Validation error codes (E100-E199)
const (
	ErrGameNameEmpty    = "E101" // game name is required
	ErrGameNoTokens     = "E102" // at least one token definition required
	ErrInvalidFieldKind = "E103" // field kind must be single or array
	ErrInvalidDims      = "E104" // array dims must be non-empty positive ints
	ErrDuplicateToken   = "E105" // duplicate token definition name
	ErrInvalidCount     = "E106" // count must be >= 1 when present
	ErrReservedField    = "E107" // "!"-prefixed field names are reserved
)

// ValidationError represents a schema validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks a compiled GameDef against schema rules.
// Returns all errors found (does not fail-fast).
func Validate(def *ir.GameDef) []ValidationError {
	var errs []ValidationError

	// E101: name is required
	if strings.TrimSpace(def.Name) == "" {
		errs = append(errs, ValidationError{
			Field:   "name",
			Message: "game name is required and must be non-empty",
			Code:    ErrGameNameEmpty,
		})
	}

	// E102: at least one token definition
	if len(def.Tokens) == 0 {
		errs = append(errs, ValidationError{
			Field:   "tokens",
			Message: "at least one token definition is required",
			Code:    ErrGameNoTokens,
		})
	}

	tokenNames := make(map[string]bool)
	for i, tok := range def.Tokens {
		prefix := fmt.Sprintf("tokens[%d]", i)

		// E105: duplicate token name
		if tokenNames[tok.Name] {
			errs = append(errs, ValidationError{
				Field:   prefix + ".name",
				Message: fmt.Sprintf("duplicate token definition name: %q", tok.Name),
				Code:    ErrDuplicateToken,
			})
		}
		tokenNames[tok.Name] = true

		// E106: count must be positive when present (0 means omitted and
		// defaults to 1 at instantiation)
		if tok.Count < 0 {
			errs = append(errs, ValidationError{
				Field:   prefix + ".count",
				Message: fmt.Sprintf("count must be >= 1, got %d", tok.Count),
				Code:    ErrInvalidCount,
			})
		}

		for name, fd := range tok.Fields {
			fieldPrefix := fmt.Sprintf("%s.fields[%q]", prefix, name)

			// E107: "!" prefix is reserved for the root's built-in fields
			if strings.HasPrefix(name, "!") {
				errs = append(errs, ValidationError{
					Field:   fieldPrefix,
					Message: `field names starting with "!" are reserved`,
					Code:    ErrReservedField,
				})
			}

			switch fd.Kind {
			case ir.FieldSingle:
				if len(fd.Dims) > 0 {
					errs = append(errs, ValidationError{
						Field:   fieldPrefix + ".dims",
						Message: "single fields take no dims",
						Code:    ErrInvalidDims,
					})
				}
			case ir.FieldArray:
				if len(fd.Dims) == 0 {
					errs = append(errs, ValidationError{
						Field:   fieldPrefix + ".dims",
						Message: "array fields require at least one dimension",
						Code:    ErrInvalidDims,
					})
				}
				for j, d := range fd.Dims {
					if d < 1 {
						errs = append(errs, ValidationError{
							Field:   fmt.Sprintf("%s.dims[%d]", fieldPrefix, j),
							Message: fmt.Sprintf("dimension must be a positive integer, got %d", d),
							Code:    ErrInvalidDims,
						})
					}
				}
			default:
				errs = append(errs, ValidationError{
					Field:   fieldPrefix + ".kind",
					Message: fmt.Sprintf(`field kind must be "single" or "array", got %q`, fd.Kind),
					Code:    ErrInvalidFieldKind,
				})
			}
		}
	}

	return errs
}
