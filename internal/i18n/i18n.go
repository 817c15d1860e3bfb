package i18n

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLocale is the default language locale (English).
	DefaultLocale = "en"
	// AcceptLanguageHeader is the HTTP header name for language preference.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	// defaultTranslator is the singleton translator instance.
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator handles message translation for different locales.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a new translator with the default messages.
func NewTranslator() *Translator {
	return &Translator{
		messages: catalog,
	}
}

// GetTranslator returns the default singleton translator instance.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate returns the translated message for the given key and locale.
// Falls back to DefaultLocale if the locale is not found.
func (t *Translator) Translate(key, locale string) string {
	if locale == "" {
		locale = DefaultLocale
	}

	localeMessages, ok := t.messages[locale]
	if !ok {
		localeMessages = t.messages[DefaultLocale]
	}

	msg, ok := localeMessages[key]
	if !ok {
		// Fallback to default locale
		if defaultMessages := t.messages[DefaultLocale]; defaultMessages != nil {
			if fallbackMsg, exists := defaultMessages[key]; exists {
				return fallbackMsg
			}
		}
		return key
	}

	return msg
}

// GetLocale extracts the locale from the gin context.
// Checks Accept-Language header and falls back to DefaultLocale.
func GetLocale(c *gin.Context) string {
	acceptLang := c.GetHeader(AcceptLanguageHeader)
	if acceptLang == "" {
		return DefaultLocale
	}

	// Parse Accept-Language header (e.g., "en-US,en;q=0.9,pt;q=0.8")
	parts := strings.Split(acceptLang, ",")
	if len(parts) > 0 {
		lang := strings.TrimSpace(strings.Split(parts[0], ";")[0])
		// Extract base language (e.g., "en" from "en-US")
		if idx := strings.Index(lang, "-"); idx > 0 {
			lang = lang[:idx]
		}
		// Normalize to lowercase
		lang = strings.ToLower(lang)
		if _, ok := catalog[lang]; ok {
			return lang
		}
	}

	return DefaultLocale
}

var catalog = map[string]map[string]string{
	"en": {
		"error.invalid_request":      "Invalid request",
		"error.invalid_request_body": "Invalid request body",
		"error.internal_error":       "An unexpected error occurred",
		"error.api_key_required":     "API key is required",
		"error.invalid_api_key":      "Invalid API key",
		"error.rate_limit_exceeded":  "Too many requests, please try again later",
		"error.timeout":              "Request timed out",
		"error.missing_file":         "No file provided in request",
		"error.invalid_base64":       "File is not valid base64",
		"error.file_too_large":       "File exceeds the maximum upload size",
		"error.invalid_workbook":     "File is not a readable xlsx workbook",
		"error.missing_sheet":        "Workbook has no DATA sheet",
		"error.missing_columns":      "Workbook is missing required columns",
		"error.invalid_size_order":   "Sizes must be positive integers",
		"error.storage_disabled":     "Storage is not enabled on this server",
	},
	"es": {
		"error.invalid_request":      "Solicitud inválida",
		"error.invalid_request_body": "Cuerpo de la solicitud inválido",
		"error.internal_error":       "Ocurrió un error inesperado",
		"error.api_key_required":     "Se requiere una clave de API",
		"error.invalid_api_key":      "Clave de API inválida",
		"error.rate_limit_exceeded":  "Demasiadas solicitudes, inténtelo más tarde",
		"error.timeout":              "La solicitud excedió el tiempo de espera",
		"error.missing_file":         "No se envió ningún archivo",
		"error.invalid_base64":       "El archivo no es base64 válido",
		"error.file_too_large":       "El archivo supera el tamaño máximo permitido",
		"error.invalid_workbook":     "El archivo no es un libro xlsx legible",
		"error.missing_sheet":        "El libro no tiene la hoja DATA",
		"error.missing_columns":      "Faltan columnas obligatorias en el libro",
		"error.invalid_size_order":   "Los calibres deben ser enteros positivos",
		"error.storage_disabled":     "El almacenamiento no está habilitado en este servidor",
	},
	"pt": {
		"error.invalid_request":      "Requisição inválida",
		"error.invalid_request_body": "Corpo da requisição inválido",
		"error.internal_error":       "Ocorreu um erro inesperado",
		"error.api_key_required":     "Chave de API é obrigatória",
		"error.invalid_api_key":      "Chave de API inválida",
		"error.rate_limit_exceeded":  "Muitas requisições, tente novamente mais tarde",
		"error.timeout":              "Tempo limite da requisição esgotado",
		"error.missing_file":         "Nenhum arquivo enviado",
		"error.invalid_base64":       "O arquivo não é base64 válido",
		"error.file_too_large":       "O arquivo excede o tamanho máximo permitido",
		"error.invalid_workbook":     "O arquivo não é uma planilha xlsx legível",
		"error.missing_sheet":        "A planilha não tem a aba DATA",
		"error.missing_columns":      "Faltam colunas obrigatórias na planilha",
		"error.invalid_size_order":   "Os calibres devem ser inteiros positivos",
		"error.storage_disabled":     "O armazenamento não está habilitado neste servidor",
	},
}
