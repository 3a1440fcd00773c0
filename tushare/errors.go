package tushare

import "fmt"

// APIError is an error reported by the API in the answer envelope, such as an
// invalid token or an exceeded quota.
type APIError struct {
	API  string
	Code int64
	Msg  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("tushare %s: %s (code %d)", e.API, e.Msg, e.Code)
}

// HTTPError is a non 2xx HTTP answer.
type HTTPError struct {
	API        string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("tushare %s: http status %d", e.API, e.StatusCode)
	}
	return fmt.Sprintf("tushare %s: http status %d: %s", e.API, e.StatusCode, e.Body)
}
