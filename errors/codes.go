package errors

type Code string

const (
	// Validation errors (400)
	CodeValidation         Code = "VALIDATION_ERROR"
	CodeInvalidInput       Code = "INVALID_INPUT"
	CodeInvalidFormat      Code = "INVALID_FORMAT"
	CodeAmountBelowMinimum Code = "AMOUNT_BELOW_MINIMUM"

	// Not found errors (404)
	CodeResourceNotFound          Code = "RESOURCE_NOT_FOUND"
	CodeTransactionNotFound       Code = "TRANSACTION_NOT_FOUND"
	CodeTransferTypeNotFound      Code = "TRANSFER_TYPE_NOT_FOUND"
	CodeTransactionStatusNotFound Code = "TRANSACTION_STATUS_NOT_FOUND"

	// Business errors (422)
	CodeBusiness Code = "BUSINESS_ERROR"

	// Internal errors (500)
	CodeInternal      Code = "INTERNAL_ERROR"
	CodeConfiguration Code = "CONFIGURATION_ERROR"
)
