package prompt

import (
	"fmt"
	"io"
)

// Collector asks for values until they convert and validate. It has no
// retry limit; the only way out of a prompt is valid input or a read error.
type Collector struct {
	in  Reader
	out io.Writer
}

// NewCollector creates a Collector reading from in and writing error
// messages to out.
func NewCollector(in Reader, out io.Writer) *Collector {
	return &Collector{in: in, out: out}
}

// Line reads one line without conversion.
func (c *Collector) Line(prompt string) (string, error) {
	return c.in.ReadLine(prompt)
}

func (c *Collector) fail(msg string) {
	_, _ = fmt.Fprintln(c.out, msg)
}

// Collect prompts until convert succeeds and valid (when not nil) accepts
// the value, printing errMsg after every rejected line.
func Collect[T any](c *Collector, prompt, errMsg string, convert func(string) (T, error), valid func(T) bool) (T, error) {
	for {
		raw, err := c.in.ReadLine(prompt)
		if err != nil {
			var zero T
			return zero, err
		}

		v, err := convert(raw)
		if err != nil || (valid != nil && !valid(v)) {
			c.fail(errMsg)
			continue
		}
		return v, nil
	}
}

// CollectOptional is Collect where a blank line means "keep the current
// value": it returns changed=false without converting or validating.
func CollectOptional[T any](c *Collector, prompt, errMsg string, convert func(string) (T, error), valid func(T) bool) (T, bool, error) {
	var zero T
	for {
		raw, err := c.in.ReadLine(prompt)
		if err != nil {
			return zero, false, err
		}
		if raw == "" {
			return zero, false, nil
		}

		v, err := convert(raw)
		if err != nil || (valid != nil && !valid(v)) {
			c.fail(errMsg)
			continue
		}
		return v, true, nil
	}
}
