package billing

import "errors"

var (
	// ErrServiceUnavailable indicates the checkout service is unreachable.
	ErrServiceUnavailable = errors.New("checkout service unavailable")

	// ErrCheckoutDeclined indicates the checkout service refused the
	// request and returned a structured error message.
	ErrCheckoutDeclined = errors.New("checkout declined")

	// ErrBadGateway indicates the checkout endpoint answered with
	// something other than JSON, which usually means the request was
	// routed to a static page instead of the billing function.
	ErrBadGateway = errors.New("checkout endpoint returned non-JSON response")
)
