// Package i18n provides internationalization support for the packing report service.
package i18n

// Error message translation keys.
const (
	// ErrKeyInvalidRequest indicates an invalid request.
	ErrKeyInvalidRequest = "error.invalid_request"
	// ErrKeyInvalidRequestBody indicates an invalid request body.
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	// ErrKeyInternalError indicates an internal server error.
	ErrKeyInternalError = "error.internal_error"
	// ErrKeyAPIKeyRequired indicates that an API key is required.
	ErrKeyAPIKeyRequired = "error.api_key_required"
	// ErrKeyInvalidAPIKey indicates an invalid API key.
	ErrKeyInvalidAPIKey = "error.invalid_api_key"
	// ErrKeyRateLimitExceeded indicates rate limit exceeded.
	ErrKeyRateLimitExceeded = "error.rate_limit_exceeded"
	// ErrKeyTimeout indicates a request timeout.
	ErrKeyTimeout = "error.timeout"
	// ErrKeyMissingFile indicates no workbook was uploaded.
	ErrKeyMissingFile = "error.missing_file"
	// ErrKeyInvalidBase64 indicates the file is not valid base64.
	ErrKeyInvalidBase64 = "error.invalid_base64"
	// ErrKeyFileTooLarge indicates the upload exceeds the size limit.
	ErrKeyFileTooLarge = "error.file_too_large"
	// ErrKeyInvalidWorkbook indicates the upload is not a readable xlsx workbook.
	ErrKeyInvalidWorkbook = "error.invalid_workbook"
	// ErrKeyMissingSheet indicates the workbook has no DATA sheet.
	ErrKeyMissingSheet = "error.missing_sheet"
	// ErrKeyMissingColumns indicates required columns are absent.
	ErrKeyMissingColumns = "error.missing_columns"
	// ErrKeyInvalidSizeOrder indicates an unusable size order.
	ErrKeyInvalidSizeOrder = "error.invalid_size_order"
	// ErrKeyStorageDisabled indicates the endpoint needs MongoDB.
	ErrKeyStorageDisabled = "error.storage_disabled"
)
