package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/openbooks/bookkeeping_engine/internal/core/domain"
)

// RegisterCustomValidators installs binding tags for the closed domain enums.
// Empty values pass; required-ness is a separate tag.
func RegisterCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	_ = v.RegisterValidation("accounttype", func(fl validator.FieldLevel) bool {
		return domain.AccountType(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("entrytype", func(fl validator.FieldLevel) bool {
		return domain.EntryType(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("schedulecategory", func(fl validator.FieldLevel) bool {
		return domain.ScheduleCategory(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("stepstatus", func(fl validator.FieldLevel) bool {
		return domain.StepStatus(fl.Field().String()).IsValid()
	})
}
