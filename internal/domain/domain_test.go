package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidEmail(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		email string
		want  bool
	}{
		{name: "simple", email: "a@b.com", want: true},
		{name: "subdomain", email: "user@mail.example.org", want: true},
		{name: "plus tag", email: "user+tag@example.com", want: true},
		{name: "empty", email: "", want: false},
		{name: "missing at", email: "user.example.com", want: false},
		{name: "missing tld", email: "user@example", want: false},
		{name: "spaces", email: "user @example.com", want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ValidEmail(tc.email))
		})
	}
}

func TestAPIErrorMessages(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	testCases := []struct {
		name string
		err  *APIError
		want string
	}{
		{name: "invalid url", err: &APIError{Kind: APIErrorInvalidURL}, want: "invalid api url"},
		{name: "invalid response", err: &APIError{Kind: APIErrorInvalidResponse}, want: "invalid server response"},
		{name: "server", err: &APIError{Kind: APIErrorServer, Status: 503}, want: "server returned status 503"},
		{name: "decoding", err: &APIError{Kind: APIErrorDecoding, Err: cause}, want: "decode server response: connection refused"},
		{name: "unknown with cause", err: &APIError{Kind: APIErrorUnknown, Err: cause}, want: "request failed: connection refused"},
		{name: "unknown bare", err: &APIError{Kind: APIErrorUnknown}, want: "request failed"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.err.Error())
		})
	}
}

func TestAPIErrorUnwrapExposesCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := error(&APIError{Kind: APIErrorUnknown, Err: cause})
	assert.True(t, errors.Is(err, cause))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, APIErrorUnknown, apiErr.Kind)
}

func TestClientDecodesServerFieldNames(t *testing.T) {
	t.Parallel()

	payload := `{"id":7,"nom":"ACME","email":"contact@acme.com","owner":{"id":1,"email":"a@b.com","lastname":"Doe","firstname":"Jane","active":true,"role":["ROLE_USER"]}}`

	var client Client
	require.NoError(t, json.Unmarshal([]byte(payload), &client))
	assert.Equal(t, 7, client.ID)
	assert.Equal(t, "ACME", client.Name)
	assert.Equal(t, "contact@acme.com", client.Email)
	assert.Equal(t, "Jane", client.Owner.FirstName)
	assert.Equal(t, []string{"ROLE_USER"}, client.Owner.Roles)
}
