package llm

import (
	"errors"
	"io"
	"net/http"
)

// asErr is a shorthand for errors.As in adapter tests.
func asErr(err error, target any) bool {
	return errors.As(err, target)
}

// readAll drains an incoming test request body.
func readAll(r *http.Request) ([]byte, error) {
	return io.ReadAll(r.Body)
}
