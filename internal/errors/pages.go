package errors

import "net/http"

// ErrorPage is what the shell renders in the few places a failure is shown
// as a page instead of a redirect with a notification.
type ErrorPage struct {
	Status  int
	Heading string
	Message string
}

// NotFoundPage is shown when a task resolved to nothing.
func NotFoundPage() ErrorPage {
	return ErrorPage{
		Status:  http.StatusNotFound,
		Heading: "Task not found",
		Message: "The task you are looking for does not exist or has been deleted.",
	}
}

// InternalErrorPage is shown after a recovered panic.
func InternalErrorPage() ErrorPage {
	return ErrorPage{
		Status:  http.StatusInternalServerError,
		Heading: "Something went wrong",
		Message: "An unexpected error occurred. Please try again.",
	}
}

// PageFor picks the page for err: a 404 from the task API becomes
// NotFoundPage, a backend outage gets its own message and everything else is
// an internal error.
func PageFor(err error) ErrorPage {
	if IsNotFound(err) {
		return NotFoundPage()
	}
	switch CodeForStatus(StatusCode(err)) {
	case ErrCodeServiceUnavailable:
		return ErrorPage{
			Status:  http.StatusBadGateway,
			Heading: "Task service unavailable",
			Message: "The task service could not be reached. Please try again later.",
		}
	default:
		return InternalErrorPage()
	}
}
