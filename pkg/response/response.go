package response

// Detail is the error body every endpoint returns on failure. The web client
// surfaces the Detail string to the user verbatim, so it is always a localized
// message, never a raw error.
type Detail struct {
	Detail string `json:"detail"`
}

// Err wraps a localized message into the standard error body.
func Err(msg string) Detail {
	return Detail{Detail: msg}
}

// Status is the body mutation endpoints return on success.
type Status struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// OK wraps a localized confirmation message into the standard success body.
func OK(msg string) Status {
	return Status{Status: "success", Message: msg}
}
