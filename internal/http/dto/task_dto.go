package dto

type ErrorResponse struct {
	Error string `json:"error"`
}

// EmptyResponse is written when a PATCH could not be applied.
type EmptyResponse struct{}

// CompletedField reports the completed member of a decoded PATCH body, if
// the body is an object and that member is a boolean.
func CompletedField(body any) (completed bool, ok bool) {
	obj, isObj := body.(map[string]any)
	if !isObj {
		return false, false
	}
	completed, ok = obj["completed"].(bool)
	return completed, ok
}
