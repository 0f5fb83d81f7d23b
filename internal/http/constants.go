package http

const (
	HeaderContentType = "Content-Type"
	HeaderRequestID   = "X-Request-Id"
	HeaderValueJson   = "application/json"
)

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)
