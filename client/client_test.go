package client

import (
	"context"
	"errors"
	"io"
	"net"
	"testing"

	"github.com/biosecret/voice-todo/app"
	"github.com/biosecret/voice-todo/config"
	"github.com/biosecret/voice-todo/models"
	"github.com/biosecret/voice-todo/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func startServer(t *testing.T) string {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	mem := store.NewMemory()
	srv := app.NewServer(app.Deps{
		Config:    &config.Config{JWTSecret: "test-secret", BcryptCost: bcrypt.MinCost, CORSOrigins: "*"},
		Accounts:  mem.Accounts(),
		Tasks:     mem.Tasks(),
		Health:    mem,
		AccessLog: io.Discard,
	})
	go func() { _ = srv.Listener(ln) }()
	t.Cleanup(func() { _ = srv.Shutdown() })

	return "http://" + ln.Addr().String()
}

func TestClient_EndToEnd(t *testing.T) {
	ctx := context.Background()
	c := New(startServer(t))

	require.NoError(t, c.Register(ctx, "a@x.com", "pw123"))

	var apiErr *APIError
	err := c.Register(ctx, "a@x.com", "pw123")
	require.True(t, errors.As(err, &apiErr), err)
	assert.Equal(t, 400, apiErr.Status)
	assert.Equal(t, "DuplicateAccount", apiErr.Kind)

	token, err := c.Login(ctx, "a@x.com", "pw123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	task, err := c.AddTask(ctx, "buy milk")
	require.NoError(t, err)
	assert.False(t, task.Completed)

	done := true
	updated, err := c.UpdateTask(ctx, task.ID, models.TaskPatch{Completed: &done})
	require.NoError(t, err)
	assert.True(t, updated.Completed)

	tasks, err := c.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, task.ID, tasks[0].ID)

	require.NoError(t, c.DeleteTask(ctx, task.ID))

	err = c.DeleteTask(ctx, task.ID)
	require.True(t, errors.As(err, &apiErr), err)
	assert.Equal(t, 404, apiErr.Status)
	assert.Equal(t, "NotFound", apiErr.Kind)

	tasks, err = c.ListTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestClient_WithoutToken(t *testing.T) {
	c := New(startServer(t))

	_, err := c.ListTasks(context.Background())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr), err)
	assert.Equal(t, 401, apiErr.Status)
	assert.Equal(t, "MissingToken", apiErr.Kind)

	c.SetToken("garbage")
	_, err = c.ListTasks(context.Background())
	require.True(t, errors.As(err, &apiErr), err)
	assert.Equal(t, 403, apiErr.Status)
}

func TestDecodeError(t *testing.T) {
	err := decodeError(404, []byte("Not Found\n"))
	assert.EqualError(t, err, "404: Not Found")

	err = decodeError(400, []byte(`{"error":"InvalidInput","message":"invalid input: text is required"}`))
	assert.EqualError(t, err, "400 InvalidInput: invalid input: text is required")
}
