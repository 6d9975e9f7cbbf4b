// Package validators provides field validators for Brazilian request payloads
// (CEP, CPF/CNPJ, phone), a clean-password check and a uniqueness check,
// registered as go-playground/validator tags.
//
//	type Customer struct {
//	    Document string `json:"document" validate:"cpf_cnpj"`
//	    ZipCode  string `json:"zipCode" validate:"cep"`
//	    Phone    string `json:"phone" validate:"phone"`
//	    Password string `json:"password" validate:"clean_password"`
//	}
//
//	v, _ := validators.New()
//	if err := v.Struct(c); err != nil {
//	    details := validators.FieldErrors(err)
//	}
package validators

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Tags registered by Register.
const (
	TagCEP           = "cep"
	TagCPFOrCNPJ     = "cpf_cnpj"
	TagPhone         = "phone"
	TagCleanPassword = "clean_password"
	TagUnique        = "unique_value"
)

// Patterns are matched against the whole value.
var (
	reEmail     = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	reCPFOrCNPJ = regexp.MustCompile(`^(?:\d{3}\.?\d{3}\.?\d{3}-?\d{2}|\d{2}\.?\d{3}\.?\d{3}/?\d{4}-?\d{2})$`)
	reCEP       = regexp.MustCompile(`^\d{5}-?\d{3}$`)
	rePhone     = regexp.MustCompile(`^(?:\(\d{2}\))?\d{2}[- ]?\d{4,5}[- ]?\d{4}$`)
)

// Messages holds the default message of each tag.
var Messages = map[string]string{
	TagCEP:           "CEP inválido",
	TagCPFOrCNPJ:     "CPF ou CNPJ inválido",
	TagPhone:         "Telefone inválido",
	TagCleanPassword: "Senha não pode ser um hash",
	TagUnique:        "Valor já existente",
}

// hasText reports whether s contains a non-space character.
func hasText(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsCEP reports whether s is a postal code (12345-678 or 12345678).
func IsCEP(s string) bool {
	return hasText(s) && reCEP.MatchString(s)
}

// IsCPFOrCNPJ reports whether s has the shape of a CPF or a CNPJ, with or
// without punctuation. Check digits are not verified.
func IsCPFOrCNPJ(s string) bool {
	return hasText(s) && reCPFOrCNPJ.MatchString(s)
}

// IsPhone reports whether s is a landline or mobile number with area code.
func IsPhone(s string) bool {
	return hasText(s) && rePhone.MatchString(s)
}

// IsEmail reports whether s is an e-mail address.
func IsEmail(s string) bool {
	return hasText(s) && reEmail.MatchString(s)
}

// IsCleanPassword reports whether s is a plain password rather than an
// already computed bcrypt hash. Blank values are accepted; pair the tag
// with "required" when a password is mandatory.
func IsCleanPassword(s string) bool {
	if !hasText(s) {
		return true
	}
	return !IsBcryptHash(s)
}

// New returns a validator with every tag of this package registered.
// Field names in errors are taken from json tags.
func New() (*validator.Validate, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("json")
		if name == "-" {
			return ""
		}
		if idx := strings.Index(name, ","); idx != -1 {
			name = name[:idx]
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	if err := Register(v); err != nil {
		return nil, err
	}
	return v, nil
}

// Register adds the cep, cpf_cnpj, phone and clean_password tags to v.
func Register(v *validator.Validate) error {
	tags := []struct {
		name string
		fn   func(string) bool
	}{
		{TagCEP, IsCEP},
		{TagCPFOrCNPJ, IsCPFOrCNPJ},
		{TagPhone, IsPhone},
		{TagCleanPassword, IsCleanPassword},
	}
	for _, tag := range tags {
		if err := v.RegisterValidation(tag.name, stringFunc(tag.fn)); err != nil {
			return fmt.Errorf("register %s validator: %w", tag.name, err)
		}
	}
	return nil
}

// stringFunc adapts a string predicate to a validator.Func. Non-string
// fields fail.
func stringFunc(fn func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() != reflect.String {
			return false
		}
		return fn(field.String())
	}
}

// ExistsFunc reports whether value is already stored for field.
type ExistsFunc func(field string, value any) (bool, error)

// Unique returns a validator.Func that fails when exists finds the value.
// A lookup error fails validation. The tag parameter, if any, names the
// field passed to exists; otherwise the struct field name is used.
func Unique(exists ExistsFunc) validator.Func {
	return func(fl validator.FieldLevel) bool {
		field := fl.Param()
		if field == "" {
			field = fl.StructFieldName()
		}
		found, err := exists(field, fl.Field().Interface())
		if err != nil {
			return false
		}
		return !found
	}
}

// RegisterUnique adds the unique_value tag to v, backed by exists.
func RegisterUnique(v *validator.Validate, exists ExistsFunc) error {
	if err := v.RegisterValidation(TagUnique, Unique(exists)); err != nil {
		return fmt.Errorf("register %s validator: %w", TagUnique, err)
	}
	return nil
}

// FieldError is one rejected field. problem.Validation lists them in a 422
// problem detail.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors flattens a validator error into field/message pairs.
// Tags without a registered message report the tag name.
func FieldErrors(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := Messages[fe.Tag()]
		if !ok {
			msg = fe.Tag()
		}
		out = append(out, FieldError{Field: fe.Field(), Message: msg})
	}
	return out
}
