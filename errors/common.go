package errors

import "fmt"

func InvalidBodyErr(err error) error {
	return &Error{Kind: Invalid, Code: CodeInvalidInput, Message: "invalid request body", Err: err}
}

func EmptyParamErr(field string) error {
	return ValidationErr(CodeValidation, field, field+" is required")
}

// ValidationErr reports bad caller input on a single field.
func ValidationErr(code Code, field, msg string) error {
	return &Error{Kind: Invalid, Code: code, Field: field, Message: msg}
}

// NotFoundErr reports a missing resource identified by id.
func NotFoundErr(code Code, resource, id string) error {
	return &Error{Kind: NotFound, Code: code, Message: fmt.Sprintf("%s not found: %s", resource, id)}
}

func BusinessErr(code Code, msg string) error {
	return &Error{Kind: Business, Code: code, Message: msg}
}

func IllegalStateErr(msg string) error {
	return &Error{Kind: IllegalState, Code: CodeInternal, Message: msg}
}

func InternalErr(msg string, err error) error {
	return &Error{Kind: Internal, Code: CodeInternal, Message: msg, Err: err}
}
