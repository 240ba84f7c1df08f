package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"storefront/internal/apperrors"
	"storefront/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var errInvalidBody = apperrors.Validation("Invalid request body", nil)

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// rawObject parses body as a JSON object and rejects keys outside allowed.
func rawObject(body []byte, allowed ...string) (map[string]json.RawMessage, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return nil, errInvalidBody
	}
	if err := checkFields(raw, allowed); err != nil {
		return nil, err
	}
	return raw, nil
}

func checkFields(raw map[string]json.RawMessage, allowed []string) error {
	permitted := make(map[string]bool, len(allowed))
	for _, f := range allowed {
		permitted[f] = true
	}
	var unexpected []string
	for key := range raw {
		if !permitted[key] {
			unexpected = append(unexpected, key)
		}
	}
	if len(unexpected) == 0 {
		return nil
	}
	sort.Strings(unexpected)
	return apperrors.Validation("Unexpected fields: "+strings.Join(unexpected, ", "), nil)
}

// checkNestedFields applies the field whitelist to every object of a JSON array.
func checkNestedFields(raw json.RawMessage, allowed ...string) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var items []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil // the typed decode reports the shape error
	}
	for _, item := range items {
		if err := checkFields(item, allowed); err != nil {
			return err
		}
	}
	return nil
}

// decodeStrict whitelists the top-level keys, decodes body into dst and
// validates it.
func decodeStrict(v *validator.Validate, body []byte, dst interface{}, allowed ...string) error {
	if _, err := rawObject(body, allowed...); err != nil {
		return err
	}
	return decodeInto(v, body, dst)
}

func decodeInto(v *validator.Validate, body []byte, dst interface{}) error {
	if err := json.Unmarshal(body, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return apperrors.FieldError(typeErr.Field, "Invalid value.")
		}
		return errInvalidBody
	}
	if err := v.Struct(dst); err != nil {
		return validationError(err)
	}
	return nil
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.Validation(err.Error(), nil)
	}
	fields := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		name := fe.Namespace()
		if i := strings.Index(name, "."); i >= 0 {
			name = name[i+1:]
		}
		fields[name] = append(fields[name], fieldMessage(fe))
	}
	return apperrors.Validation("Validation failed", fields)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "url":
		return "Enter a valid URL."
	case "oneof":
		return fmt.Sprintf("\"%v\" is not a valid choice.", fe.Value())
	case "gt":
		return fmt.Sprintf("Ensure this value is greater than %s.", fe.Param())
	case "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "min":
		if fe.Kind() == reflect.Slice {
			return "This list may not be empty."
		}
		return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	}
	return "Invalid value."
}

func paramID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NotFound("Not found.")
	}
	return uint(id), nil
}

// listQuery reads the page and limit query parameters.
func listQuery(c *fiber.Ctx) (repositories.ProductQuery, error) {
	q := repositories.NewProductQuery()
	page := 1
	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return q, repositories.ErrInvalidPage
		}
		page = n
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	return q.Paginate(page, limit), nil
}

func currentUserID(c *fiber.Ctx) (uint, error) {
	id, ok := c.Locals("user_id").(uint)
	if !ok {
		return 0, apperrors.Authorization("Authentication credentials were not provided.")
	}
	return id, nil
}
