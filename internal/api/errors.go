package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/x/ansi"

	appErrors "tcreview/internal/errors"
)

const maxErrorSnippetLen = 200

// StatusError describes a non-2xx response.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
}

// transportError tags a request that never produced a response.
func transportError(method, path string, err error) error {
	return appErrors.New(appErrors.CodeTransport, fmt.Sprintf("network error: %v", err), fmt.Errorf("%s %s: %w", method, path, err))
}

// statusError tags a non-2xx response, preferring the server's own message.
func statusError(method, path string, code int, body []byte) error {
	msg := serverMessage(body)
	se := StatusError{Method: method, Path: path, StatusCode: code, Message: msg}
	human := msg
	if human == "" {
		human = fmt.Sprintf("server returned %d %s", code, http.StatusText(code))
	}
	errCode := appErrors.CodeHTTPStatus
	if code == http.StatusNotFound {
		errCode = appErrors.CodeNotFound
	}
	return appErrors.New(errCode, human, se)
}

// applicationError tags a 2xx response whose body still carried an error.
func applicationError(method, path, msg string) error {
	return appErrors.New(appErrors.CodeApplication, msg, fmt.Errorf("%s %s: %s", method, path, msg))
}

func parseError(method, path string, body []byte, err error) error {
	snippet := strings.TrimSpace(string(body))
	// Bodies are often CJK text, so cut by cell width, never mid-rune.
	snippet = ansi.Truncate(snippet, maxErrorSnippetLen, "...")
	return appErrors.New(appErrors.CodeParseFailed,
		fmt.Sprintf("unexpected response from server: %s", snippet),
		fmt.Errorf("decode %s %s: %w", method, path, err))
}

// serverMessage extracts the "error" field of a JSON object body. Bodies that
// are not objects, or carry no such field, yield "".
func serverMessage(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return ""
	}
	var eb errorBody
	if err := json.Unmarshal(trimmed, &eb); err != nil {
		return ""
	}
	return strings.TrimSpace(eb.Error)
}

// StatusCode returns the HTTP status carried by err, or 0 when err did not
// come from a non-2xx response.
func StatusCode(err error) int {
	var se StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}
