package prompt

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/fitlog/internal/core/validate"
)

func newTestCollector(input string) (*Collector, *bytes.Buffer) {
	var out bytes.Buffer
	return NewCollector(NewLineReader(strings.NewReader(input), &out), &out), &out
}

func TestCollect(t *testing.T) {
	t.Run("returns first valid value", func(t *testing.T) {
		c, out := newTestCollector("abc\n-3\n\n12\n99\n")

		got, err := Collect(c, "Duration: ", "Please enter a positive number.", validate.Number, validate.Positive)
		require.NoError(t, err)

		assert.InDelta(t, 12.0, got, 1e-9)
		assert.Equal(t, 3, strings.Count(out.String(), "Please enter a positive number."))
		assert.Equal(t, 4, strings.Count(out.String(), "Duration: "))
	})

	t.Run("nil validator accepts any converted value", func(t *testing.T) {
		c, _ := newTestCollector("-3\n")

		got, err := Collect(c, "", "bad", validate.Number, nil)
		require.NoError(t, err)
		assert.InDelta(t, -3.0, got, 1e-9)
	})

	t.Run("eof ends the loop", func(t *testing.T) {
		c, _ := newTestCollector("x\ny\n")

		_, err := Collect(c, "> ", "bad", validate.Integer, nil)
		assert.ErrorIs(t, err, io.EOF)
	})

	t.Run("trims input", func(t *testing.T) {
		c, _ := newTestCollector("   Yoga  \n")

		got, err := Collect(c, "", "bad", validate.Name, nil)
		require.NoError(t, err)
		assert.Equal(t, "yoga", got)
	})
}

func TestCollectOptional(t *testing.T) {
	t.Run("blank keeps value", func(t *testing.T) {
		c, out := newTestCollector("\n")

		_, changed, err := CollectOptional(c, "", "bad", validate.Number, validate.NonNegative)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Empty(t, strings.TrimSpace(out.String()))
	})

	t.Run("retries invalid then accepts", func(t *testing.T) {
		c, out := newTestCollector("-1\n2.5\n")

		got, changed, err := CollectOptional(c, "", "Please enter a non-negative number.", validate.Number, validate.NonNegative)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.InDelta(t, 2.5, got, 1e-9)
		assert.Contains(t, out.String(), "Please enter a non-negative number.")
	})

	t.Run("blank after an invalid line keeps value", func(t *testing.T) {
		c, _ := newTestCollector("oops\n\n")

		_, changed, err := CollectOptional(c, "", "bad", validate.Number, nil)
		require.NoError(t, err)
		assert.False(t, changed)
	})
}

func TestLineReader(t *testing.T) {
	var out bytes.Buffer
	r := NewLineReader(strings.NewReader("first\n  second  "), &out)

	line, err := r.ReadLine("1> ")
	require.NoError(t, err)
	assert.Equal(t, "first", line)

	line, err = r.ReadLine("2> ")
	require.NoError(t, err)
	assert.Equal(t, "second", line)

	_, err = r.ReadLine("3> ")
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, "1> 2> 3> ", out.String())
}
