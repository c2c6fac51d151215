package handler

// Generic HTTP error messages for client responses. These intentionally do
// not expose internal error details. Handlers and tests both reference these
// constants.
const (
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgGenericServerError    = "Something went wrong"

	ErrMsgInvalidShopID = "Invalid shop ID"
	ErrMsgUnauthorized  = "Authentication required"
)
