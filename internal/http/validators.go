package http

import (
	"regexp"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// slugPattern matches lowercase words separated by single hyphens, e.g.
// "habitos-atomicos". No leading, trailing, or doubled hyphens.
var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// validSlug implements the "slug" binding tag.
func validSlug(fl validator.FieldLevel) bool {
	return slugPattern.MatchString(fl.Field().String())
}

// validBookYear implements the "bookyear" binding tag: publication years
// from 1000 up to the current year.
func validBookYear(fl validator.FieldLevel) bool {
	year := int(fl.Field().Int())
	return year >= 1000 && year <= time.Now().Year()
}

// RegisterValidators installs the custom binding validators on Gin's
// validator engine. Must run once before the router handles requests.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("slug", validSlug); err != nil {
		return err
	}
	return v.RegisterValidation("bookyear", validBookYear)
}
