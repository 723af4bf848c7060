package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginRequiresValidEmail(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "login", "--email", "not-an-email", "--password", "secret")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid email address")
}

func TestLoginRequiresPasswordFlag(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "login", "--email", "dev@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag(s) \"password\" not set")
}

func TestLoginStoresTokenAndStatusShowsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "dev@example.com", body["email"])
		assert.Equal(t, "hunter22", body["password"])

		_, _ = fmt.Fprint(w, `{"token":"tok-12345678abcdef","type":"Bearer"}`)
	}))
	defer server.Close()

	t.Setenv("ZN_API_BASE_URL", server.URL)

	home := t.TempDir()
	stdout, _, err := executeCLI(t, home, "login", "--email", "dev@example.com", "--password", "hunter22")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Logged in as dev@example.com")

	secretPath := filepath.Join(home, ".zenon", "secrets", "org.alnitaka.zenon", "authToken")
	secret, err := os.ReadFile(secretPath)
	require.NoError(t, err)
	assert.Equal(t, "tok-12345678abcdef", string(secret))

	stdout, _, err = executeCLI(t, home, "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "authenticated")
	assert.Contains(t, stdout, "tok-1234…")
	assert.NotContains(t, stdout, "tok-12345678abcdef")
}

func TestLoginServerErrorSurfacesStatusCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = fmt.Fprint(w, `{"error":"bad credentials"}`)
	}))
	defer server.Close()

	t.Setenv("ZN_API_BASE_URL", server.URL)

	home := t.TempDir()
	_, _, err := executeCLI(t, home, "login", "--email", "dev@example.com", "--password", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server error: code 401")

	stdout, _, err := executeCLI(t, home, "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Logged out.")
}

func TestLoginShowsSpinnerMessageOnStderr(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = fmt.Fprint(w, `{"token":"tok-12345678abcdef","type":"Bearer"}`)
	}))
	defer server.Close()

	t.Setenv("ZN_API_BASE_URL", server.URL)

	home := t.TempDir()
	_, stderr, err := executeCLI(t, home, "login", "--email", "dev@example.com", "--password", "hunter22")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Logging in")
}

func TestRegisterSendsProfileFieldsAndStartsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/register", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "new@example.com", body["email"])
		assert.Equal(t, "Ada", body["firstname"])
		assert.Equal(t, "Lovelace", body["lastname"])

		_, _ = fmt.Fprint(w, `{"token":"tok-register-123456","type":"Bearer"}`)
	}))
	defer server.Close()

	t.Setenv("ZN_API_BASE_URL", server.URL)

	home := t.TempDir()
	stdout, _, err := executeCLI(t, home,
		"register",
		"--email", "new@example.com",
		"--password", "hunter22",
		"--firstname", "Ada",
		"--lastname", "Lovelace",
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Registered and logged in as new@example.com")

	stdout, _, err = executeCLI(t, home, "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "authenticated")
}

func TestLogoutRemovesPersistedToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, `{"token":"tok-12345678abcdef","type":"Bearer"}`)
	}))
	defer server.Close()

	t.Setenv("ZN_API_BASE_URL", server.URL)

	home := t.TempDir()
	_, _, err := executeCLI(t, home, "login", "--email", "dev@example.com", "--password", "hunter22")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "logout")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Signed out")

	secretPath := filepath.Join(home, ".zenon", "secrets", "org.alnitaka.zenon", "authToken")
	_, err = os.Stat(secretPath)
	assert.True(t, os.IsNotExist(err))

	stdout, _, err = executeCLI(t, home, "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Logged out.")
}

func TestLogoutIsIdempotent(t *testing.T) {
	home := t.TempDir()

	for range 2 {
		stdout, _, err := executeCLI(t, home, "logout")
		require.NoError(t, err)
		assert.Contains(t, stdout, "Signed out")
	}
}

func TestStatusStartsLoggedOut(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Logged out.")
}

func TestWhoamiRequiresSession(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "whoami")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
}

func TestWhoamiFetchesProfileWithStoredToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			_, _ = fmt.Fprint(w, `{"token":"tok-12345678abcdef","type":"Bearer"}`)
		case "/api/users/me":
			assert.Equal(t, "Bearer tok-12345678abcdef", r.Header.Get("Authorization"))
			_, _ = fmt.Fprint(w, `{"id":7,"email":"dev@example.com","firstname":"Ada","lastname":"Lovelace","active":true,"role":["ROLE_USER"]}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	t.Setenv("ZN_API_BASE_URL", server.URL)

	home := t.TempDir()
	_, _, err := executeCLI(t, home, "login", "--email", "dev@example.com", "--password", "hunter22")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "whoami")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Ada Lovelace <dev@example.com>")
	assert.Contains(t, stdout, "id: 7")
	assert.Contains(t, stdout, "roles: ROLE_USER")
}

func TestClientsListRendersRecords(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			_, _ = fmt.Fprint(w, `{"token":"tok-12345678abcdef","type":"Bearer"}`)
		case "/api/clients":
			assert.Equal(t, "Bearer tok-12345678abcdef", r.Header.Get("Authorization"))
			_, _ = fmt.Fprint(w, `[{"id":1,"nom":"Acme","email":"contact@acme.test"},{"id":2,"nom":"Globex"}]`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	t.Setenv("ZN_API_BASE_URL", server.URL)

	home := t.TempDir()
	_, _, err := executeCLI(t, home, "login", "--email", "dev@example.com", "--password", "hunter22")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "clients", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "clients: 2")
	assert.Contains(t, stdout, "Acme")
	assert.Contains(t, stdout, "(#1)")
	assert.Contains(t, stdout, "Globex")
}

func TestClientsAddRequiresNameFlag(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "clients", "add")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag(s) \"name\" not set")
}

func TestClientsAddCreatesRecord(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/clients", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Acme", body["name"])

		_, _ = fmt.Fprint(w, `{"id":42,"nom":"Acme"}`)
	}))
	defer server.Close()

	t.Setenv("ZN_API_BASE_URL", server.URL)

	home := t.TempDir()
	stdout, _, err := executeCLI(t, home, "clients", "add", "--name", "Acme")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Created client Acme (#42)")
}

func TestClientsRemoveDeletesByID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/clients/42", r.URL.Path)
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	t.Setenv("ZN_API_BASE_URL", server.URL)

	home := t.TempDir()
	stdout, _, err := executeCLI(t, home, "clients", "rm", "--id", "42")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Deleted client 42")
}

func TestConfigInitWritesDefaultFile(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "config", "init")
	require.NoError(t, err)

	configPath := filepath.Join(home, ".zenon", "config.toml")
	assert.Contains(t, stdout, configPath)

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "base_url")
	assert.Contains(t, string(data), "org.alnitaka.zenon")

	_, _, err = executeCLI(t, home, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = executeCLI(t, home, "config", "init", "--force")
	require.NoError(t, err)
}

func TestConfigPathPrintsLocation(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "config", "path")
	require.NoError(t, err)
	assert.Contains(t, stdout, filepath.Join(home, ".zenon", "config.toml"))
}

func TestVersionPrintsBuildVersion(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "dev")
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}
