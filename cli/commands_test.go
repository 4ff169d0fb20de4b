package cli

import (
	"bytes"
	"context"
	"io"
	"net"
	"strings"
	"testing"

	"github.com/biosecret/voice-todo/app"
	"github.com/biosecret/voice-todo/config"
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

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("TODO_TOKEN", "")
	t.Setenv("TODO_SERVER", "")

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCommands(t *testing.T) {
	server := startServer(t)

	out, err := run(t, "", "--server", server, "register", "a@x.com", "pw123")
	require.NoError(t, err)
	assert.Contains(t, out, "registered a@x.com")

	out, err = run(t, "", "--server", server, "login", "a@x.com", "pw123")
	require.NoError(t, err)
	token := strings.TrimSpace(out)
	require.NotEmpty(t, token)

	auth := []string{"--server", server, "--token", token}

	out, err = run(t, "", append(auth, "add", "buy", "milk")...)
	require.NoError(t, err)
	assert.Contains(t, out, "[ ] ")
	assert.Contains(t, out, "buy milk")
	id := strings.Fields(out)[2]

	out, err = run(t, "call mom\n\nwater plants\n", append(auth, "add")...)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "\n"))

	out, err = run(t, "", append(auth, "done", id)...)
	require.NoError(t, err)
	assert.Contains(t, out, "[x] "+id)

	out, err = run(t, "", append(auth, "edit", id, "buy", "oat", "milk")...)
	require.NoError(t, err)
	assert.Contains(t, out, "buy oat milk")

	out, err = run(t, "", append(auth, "undone", id)...)
	require.NoError(t, err)
	assert.Contains(t, out, "[ ] "+id)

	out, err = run(t, "", append(auth, "list")...)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(out, "\n"))

	out, err = run(t, "", append(auth, "rm", id)...)
	require.NoError(t, err)
	assert.Contains(t, out, "deleted "+id)

	_, err = run(t, "", append(auth, "rm", id)...)
	assert.ErrorContains(t, err, "NotFound")
}

func TestCommands_RequireToken(t *testing.T) {
	_, err := run(t, "", "--server", "http://127.0.0.1:1", "list")
	assert.ErrorContains(t, err, "no token")
}
