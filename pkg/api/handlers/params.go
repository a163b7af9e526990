package handlers

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jordanlanch/industrycatalog/pkg/models"
	"github.com/labstack/echo/v4"
)

// paramError names a query parameter that could not be parsed
type paramError struct {
	name string
}

func (e *paramError) Error() string {
	return "invalid parameter " + e.name
}

// parsePage reads limit and skip. Missing values take the defaults, zero
// limit means the default and limits above the maximum are capped.
func parsePage(c echo.Context) (models.Page, error) {
	limit, err := intParam(c, "limit", models.DefaultLimit)
	if err != nil {
		return models.Page{}, err
	}
	skip, err := intParam(c, "skip", 0)
	if err != nil {
		return models.Page{}, err
	}
	return models.Page{Limit: limit, Skip: skip}.Normalize(), nil
}

func intParam(c echo.Context, name string, def int) (int, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, &paramError{name: name}
	}
	return v, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// missingField returns the first required field absent from ind, or ""
func missingField(ind *models.Industry) (string, error) {
	err := validate.Struct(ind)
	if err == nil {
		return "", nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "", err
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return fe.Field(), nil
		}
	}
	return "", err
}
