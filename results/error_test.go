package results

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	req := require.New(t)

	e := NewError("boom")
	msg, ok := e.Message()
	req.True(ok)
	req.Equal("boom", msg)
	req.EqualError(e, "boom")

	// an empty message is still a message
	e = NewError("")
	msg, ok = e.Message()
	req.True(ok)
	req.Equal("", msg)

	e = NewBlankError()
	_, ok = e.Message()
	req.False(ok)
	req.EqualError(e, "unknown failure")
}

func TestFromErr(t *testing.T) {
	req := require.New(t)

	req.Nil(FromErr(nil))

	e := FromErr(errors.New("plain"))
	msg, ok := e.Message()
	req.True(ok)
	req.Equal("plain", msg)

	desc := NewError("descriptor")
	req.Same(desc, FromErr(desc))
	req.Same(desc, FromErr(fmt.Errorf("wrapped: %w", desc)))
}
