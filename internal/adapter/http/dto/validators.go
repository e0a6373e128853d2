package dto

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"rosca-bridge/internal/core/domain"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("hex_address", validateHexAddress)
	}
}

// validateHexAddress accepts 0x-prefixed 20-byte hex in any letter case.
// Checksums are not enforced.
func validateHexAddress(fl validator.FieldLevel) bool {
	return domain.IsValidAddress(fl.Field().String())
}

// TrimStruct trims surrounding whitespace from every exported string field
// and every string element of a []string field of a struct pointer.
func TrimStruct(v interface{}) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return
	}
	trimFields(rv.Elem())
}

func trimFields(rv reflect.Value) {
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanSet() {
			continue
		}
		switch f.Kind() {
		case reflect.String:
			f.SetString(strings.TrimSpace(f.String()))
		case reflect.Slice:
			if f.Type().Elem().Kind() != reflect.String {
				continue
			}
			for j := 0; j < f.Len(); j++ {
				e := f.Index(j)
				e.SetString(strings.TrimSpace(e.String()))
			}
		}
	}
}
