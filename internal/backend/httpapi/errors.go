package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"google.golang.org/api/googleapi"
)

const (
	unexpectedAPIError = "Unexpected API error"
	unknownError       = "Unknown error"
)

// ErrorMessage extracts a human-readable message from any failure.
//
// Precedence:
//  1. a response body {"error": {...}} with a truthy error member yields its
//     message, else its type, else "Unexpected API error";
//  2. a plain-text response body is returned verbatim;
//  3. otherwise the failure's own message
//     ("Request failed with status code N" for HTTP status failures);
//  4. "Unknown error".
func ErrorMessage(err error) string {
	if err == nil {
		return unknownError
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		data := responseData(apiErr.Body)

		if body, ok := data.(map[string]any); ok {
			if e, ok := body["error"]; ok && truthy(e) {
				if fields, ok := e.(map[string]any); ok {
					if truthy(fields["message"]) {
						return stringify(fields["message"])
					}
					if truthy(fields["type"]) {
						return stringify(fields["type"])
					}
				}
				return unexpectedAPIError
			}
		}

		if text, ok := data.(string); ok {
			return text
		}

		return fmt.Sprintf("Request failed with status code %d", apiErr.Code)
	}

	if msg := err.Error(); msg != "" {
		return msg
	}
	return unknownError
}

// responseData decodes a JSON body, or returns the raw text when it is not JSON.
func responseData(body string) any {
	var data any
	if err := json.Unmarshal([]byte(body), &data); err != nil {
		return body
	}
	return data
}

func truthy(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v != ""
	default:
		return true
	}
}

func stringify(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(data)
	}
}
