package result

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Format selects the output rendering applied to a Value.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrEncoding marks an internal failure to encode a payload in structured
// mode. Given the closed payload set it should not occur; it is kept distinct
// from probe failures so the diagnostic points at the right place.
var ErrEncoding = errors.New("result: encoding failure")

// Render writes the Value to w in the requested format. Text mode uses each
// variant's own layout; the structured modes encode a single object whose
// top-level field is the variant's tag.
func Render(w io.Writer, v Value, f Format) error {
	switch f {
	case FormatText:
		v.text(w)
		return nil
	case FormatJSON:
		b, err := json.MarshalIndent(map[string]any{v.Tag(): v.Payload()}, "", "  ")
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrEncoding, v.Tag(), err)
		}
		fmt.Fprintln(w, string(b))
		return nil
	case FormatYAML:
		b, err := yaml.Marshal(map[string]any{v.Tag(): v.Payload()})
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrEncoding, v.Tag(), err)
		}
		fmt.Fprint(w, string(b))
		return nil
	default:
		return fmt.Errorf("unsupported format: %q", f)
	}
}

// ErrorReport is the structured-mode error object. Structured consumers get a
// parseable object on stderr instead of free text.
type ErrorReport struct {
	Command string `json:"command" yaml:"command"`
	Message string `json:"message" yaml:"message"`
}

// RenderError writes a diagnostic for a failed command to w. Text mode prints
// a single line naming the command and reason; structured modes emit an
// ErrorReport under a top-level "error" field.
func RenderError(w io.Writer, command string, cmdErr error, f Format) {
	switch f {
	case FormatJSON, FormatYAML:
		report := ErrorReport{Command: command, Message: cmdErr.Error()}
		if err := Render(w, errorValue{report}, f); err == nil {
			return
		}
		fallthrough
	default:
		fmt.Fprintf(w, "my: %s: %v\n", command, cmdErr)
	}
}

// errorValue adapts an ErrorReport to the Value contract so it flows through
// the same structured encoders as regular results.
type errorValue struct {
	report ErrorReport
}

func (e errorValue) Tag() string  { return "error" }
func (e errorValue) Payload() any { return e.report }

func (e errorValue) text(w io.Writer) {
	fmt.Fprintf(w, "my: %s: %s\n", e.report.Command, e.report.Message)
}
