package testing

import (
	"bytes"
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/rileyhilliard/ecsctl/internal/runtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeAPI_StartExec(t *testing.T) {
	api := NewFakeAPI().WithOutput("hello\n", 3)
	var out bytes.Buffer

	code, err := api.StartExec(context.Background(), "exec-1", runtime.StartOptions{
		Stdin:  strings.NewReader("input"),
		Stdout: &out,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, code)
	assert.Equal(t, "hello\n", out.String())
	assert.Equal(t, "input", api.StdinRead.String())
}

func TestFakeAPI_FailStreamAfter(t *testing.T) {
	boom := stderrors.New("connection reset")
	api := NewFakeAPI().WithOutput("0123456789", 0).FailStreamAfter(4, boom)
	var out bytes.Buffer

	_, err := api.StartExec(context.Background(), "exec-1", runtime.StartOptions{Stdout: &out})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, "0123", out.String())
}

func TestFakeDialer(t *testing.T) {
	api := NewFakeAPI()
	d := NewFakeDialer(api)

	got, err := d.Dial(context.Background(), runtime.Endpoint{Host: "10.0.0.5", Port: 2375})
	require.NoError(t, err)
	assert.Same(t, api, got)
	assert.Equal(t, 1, d.DialCount())
	assert.Equal(t, "10.0.0.5:2375", d.Dials[0].Address())
}
