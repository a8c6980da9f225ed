package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidations attaches the custom binding rules to gin's validator
// engine. Call once at startup, before the router serves requests.
func RegisterValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterStructValidation(accountRefStructLevel, AccountRefDTO{})
	}
}

// accountRefStructLevel enforces that an account reference carries exactly one
// of id and slug.
func accountRefStructLevel(sl validator.StructLevel) {
	ref := sl.Current().Interface().(AccountRefDTO)
	if ref.ID == 0 && ref.Slug == "" {
		sl.ReportError(ref.ID, "id", "ID", "accountref", "")
	}
	if ref.ID != 0 && ref.Slug != "" {
		sl.ReportError(ref.Slug, "slug", "Slug", "accountref", "")
	}
}
