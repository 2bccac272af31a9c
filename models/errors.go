package models

// Error taxonomy for the whole API. Handlers never inspect raw storage
// errors: services translate them into one of these types and the HTTP
// helper maps each type to a status code.

type ErrorValidation struct {
	Message string
}

func (e ErrorValidation) Error() string { return e.Message }

// ErrorUnauthorized covers missing/invalid credentials and failed
// confirmation-code checks.
type ErrorUnauthorized struct {
	Message string
}

func (e ErrorUnauthorized) Error() string { return e.Message }

// ErrorForbidden is an authorization Deny: the caller is known but the
// policy table rejects the operation.
type ErrorForbidden struct {
	Message string
}

func (e ErrorForbidden) Error() string { return e.Message }

type ErrorNotFound struct {
	Message string
}

func (e ErrorNotFound) Error() string { return e.Message }

// ErrorMethodNotAllowed is a routing/config failure, not an
// authorization decision. No caller, admin included, can bypass it.
type ErrorMethodNotAllowed struct {
	Message string
}

func (e ErrorMethodNotAllowed) Error() string { return e.Message }

// ErrorConflict covers uniqueness violations, both the service-level
// fast path and translated storage duplicate-key errors.
type ErrorConflict struct {
	Message string
}

func (e ErrorConflict) Error() string { return e.Message }

// ErrorDelivery reports a failed outbound notification. Kept distinct
// from validation errors so a broken mail channel is never mistaken for
// bad input.
type ErrorDelivery struct {
	Message string
}

func (e ErrorDelivery) Error() string { return e.Message }

type ErrorInternalServer struct {
	Message string
}

func (e ErrorInternalServer) Error() string { return e.Message }
