package app

import (
	"encoding/json"
	"fmt"
	"io"
)

// Result is the uniform outcome of one command: a human-readable message and
// the data the command produced. Data is nil when the command failed or found
// nothing, and the process exit code follows from that.
type Result struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// ExitCode returns 0 when the result carries data and 1 otherwise.
func (r Result) ExitCode() int {
	if r.Data == nil {
		return 1
	}
	return 0
}

// Printer renders results either as human-readable text or, in API mode, as
// a single JSON object.
type Printer struct {
	Out io.Writer
	API bool
}

// Print writes the result. In API mode the whole result is one JSON
// document; otherwise only the message is printed.
func (p *Printer) Print(r Result) error {
	if p.API {
		enc := json.NewEncoder(p.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}

	_, err := fmt.Fprintln(p.Out, r.Message)
	return err
}
