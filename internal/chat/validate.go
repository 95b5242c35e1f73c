package chat

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// NameValidator checks display names: non-empty ASCII letters and digits,
// optionally capped in length. A zero maxLen disables the cap.
type NameValidator struct {
	tag string
}

const defaultNameTag = "required,alphanum"

func NewNameValidator(maxLen int) NameValidator {
	tag := defaultNameTag
	if maxLen > 0 {
		tag += ",max=" + strconv.Itoa(maxLen)
	}
	return NameValidator{tag: tag}
}

// Validate returns the trimmed name, or ErrNameInvalid.
func (v NameValidator) Validate(raw string) (string, error) {
	tag := v.tag
	if tag == "" {
		tag = defaultNameTag
	}
	name := trimLine(raw)
	if err := validate.Var(name, tag); err != nil {
		return "", ErrNameInvalid
	}
	return name, nil
}

func trimLine(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}
