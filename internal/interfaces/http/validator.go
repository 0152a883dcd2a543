package http

import (
	"reflect"
	"strings"

	"github.com/go-playground/locales/es"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	es_translations "github.com/go-playground/validator/v10/translations/es"
)

// RequestValidator valida DTOs de entrada con los tags `validate` y mensajes en español.
type RequestValidator struct {
	validate *validator.Validate
	trans    ut.Translator
}

// NewRequestValidator registra traducciones y usa el nombre json de cada campo.
func NewRequestValidator() *RequestValidator {
	locale := es.New()
	uni := ut.New(locale, locale)
	trans, _ := uni.GetTranslator("es")

	validate := validator.New(validator.WithRequiredStructEnabled())
	_ = es_translations.RegisterDefaultTranslations(validate, trans)
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &RequestValidator{validate: validate, trans: trans}
}

// Struct devuelve nil si es válido; si no, un mapa campo -> mensaje.
// Las claves usan la ruta json sin el nombre del struct raíz (p. ej. "items[0].quantity").
func (v *RequestValidator) Struct(in any) map[string]string {
	err := v.validate.Struct(in)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"_": err.Error()}
	}
	fields := make(map[string]string, len(verrs))
	for _, e := range verrs {
		fields[fieldPath(e.Namespace())] = e.Translate(v.trans)
	}
	return fields
}

func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}
