// Package result defines the closed set of values the probes produce and the
// two renderings every value supports: styled human-readable text and a
// structured encoding keyed by the value's stable tag.
package result

import (
	"fmt"
	"io"
)

// Value is one probe result. The set of implementations is closed: the
// unexported text method keeps outside packages from adding variants, so new
// commands are added here, next to their rendering, not by open extension.
//
// Tag is the stable top-level field name used in structured output and never
// changes for a given variant. Payload is the structured encoding of the
// value and must round-trip losslessly through JSON and YAML.
type Value interface {
	Tag() string
	Payload() any
	text(w io.Writer)
}

// Named is a scalar string fact carrying its own stable key. The key appears
// as the field name in structured output and is omitted entirely from text
// output: "my os" prints a bare OS label, not "os: <label>".
type Named struct {
	key   string
	value string
}

// The identity facts. Each constructor fixes the key so structured-output
// consumers can rely on it across versions.

func Hostname(v string) Named     { return Named{key: "hostname", value: v} }
func Username(v string) Named     { return Named{key: "username", value: v} }
func DeviceName(v string) Named   { return Named{key: "device_name", value: v} }
func OS(v string) Named           { return Named{key: "os", value: v} }
func Architecture(v string) Named { return Named{key: "architecture", value: v} }

func (n Named) Tag() string  { return n.key }
func (n Named) Payload() any { return n.value }

func (n Named) text(w io.Writer) {
	fmt.Fprintln(w, n.value)
}
