package cli

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgsSource(t *testing.T) {
	ctx := context.Background()
	src := NewArgsSource([]string{"buy", "oat", "milk"})

	text, err := src.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "buy oat milk", text)

	_, err = src.Next(ctx)
	assert.ErrorIs(t, err, io.EOF)
}

func TestLineSource(t *testing.T) {
	ctx := context.Background()
	src := NewLineSource(strings.NewReader("buy milk\n\n   \n  call mom  \n"))

	var got []string
	for {
		text, err := src.Next(ctx)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, text)
	}
	assert.Equal(t, []string{"buy milk", "call mom"}, got)
}

func TestLineSource_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLineSource(strings.NewReader("buy milk\n")).Next(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
