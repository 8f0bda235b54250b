package core

import (
	"fmt"
	"io"
	"strings"
)

// ReadInput reads a whole program and drops all whitespace, leaving one
// character per token.
func ReadInput(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read program: %w", err)
	}

	return strings.Join(strings.Fields(string(data)), ""), nil
}
