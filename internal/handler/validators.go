package handler

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"manager_system/internal/model"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators installs the custom binding rules on gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected validator engine")
	}

	var err error
	registerOnce.Do(func() {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		err = v.RegisterValidation("role", validateRole)
	})
	return err
}

func validateRole(fl validator.FieldLevel) bool {
	switch r := fl.Field().Interface().(type) {
	case model.Role:
		return r.Valid()
	case string:
		return model.Role(r).Valid()
	}
	return false
}
