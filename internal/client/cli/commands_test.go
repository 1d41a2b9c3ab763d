package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/tokenauth/internal/client/client"
	"github.com/dmitrijs2005/tokenauth/internal/client/services"
)

type fakeAuth struct {
	regReq client.RegisterRequest
	regErr error

	loginEmail string
	loginPass  []byte
	loginErr   error

	logoutCalled bool
	logoutErr    error

	meUser *client.User
	meErr  error

	email   string
	pingErr error
	closed  bool
}

func (f *fakeAuth) Register(_ context.Context, req client.RegisterRequest) (*client.User, error) {
	f.regReq = req
	if f.regErr != nil {
		return nil, f.regErr
	}
	return &client.User{ID: "u1", Email: req.Email}, nil
}
func (f *fakeAuth) Login(_ context.Context, email string, pw []byte) error {
	f.loginEmail, f.loginPass = email, append([]byte(nil), pw...)
	return f.loginErr
}
func (f *fakeAuth) Logout(context.Context) error {
	f.logoutCalled = true
	return f.logoutErr
}
func (f *fakeAuth) Me(context.Context) (*client.User, error) { return f.meUser, f.meErr }
func (f *fakeAuth) SignedInEmail(context.Context) string     { return f.email }
func (f *fakeAuth) Ping(context.Context) error               { return f.pingErr }
func (f *fakeAuth) Close(context.Context) error {
	f.closed = true
	return nil
}

// stubInputs answers text prompts from answers in order and returns password
// for the password prompt.
func stubInputs(t *testing.T, password []byte, answers ...string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(answers) == 0 {
			return "", io.EOF
		}
		a := answers[0]
		answers = answers[1:]
		return a, nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) { return password, nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

func newTestApp(f *fakeAuth) (*App, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &App{authService: f, out: out}, out
}

func TestRegister_Success(t *testing.T) {
	f := &fakeAuth{}
	a, out := newTestApp(f)
	pw := []byte("secret1")
	stubInputs(t, pw, "John", "john@example.com", "30", "Riga")

	require.NoError(t, a.Register(context.Background()))

	assert.Equal(t, client.RegisterRequest{Name: "John", Email: "john@example.com", Password: "secret1", Age: 30, City: "Riga"}, f.regReq)
	assert.Contains(t, out.String(), "Registered john@example.com")
	assert.Equal(t, make([]byte, len(pw)), pw, "password must be wiped")
	assert.False(t, a.isLoggedIn())
}

func TestRegister_BadAge(t *testing.T) {
	f := &fakeAuth{}
	a, _ := newTestApp(f)
	stubInputs(t, []byte("secret1"), "John", "john@example.com", "thirty")

	assert.ErrorIs(t, a.Register(context.Background()), errAgeNotInteger)
	assert.Empty(t, f.regReq.Email)
}

func TestRegister_ServiceError(t *testing.T) {
	f := &fakeAuth{regErr: client.ErrValidation}
	a, _ := newTestApp(f)
	stubInputs(t, []byte("secret1"), "John", "john@example.com", "30", "Riga")

	assert.ErrorIs(t, a.Register(context.Background()), client.ErrValidation)
}

func TestLogin(t *testing.T) {
	f := &fakeAuth{}
	a, out := newTestApp(f)
	stubInputs(t, []byte("secret1"), "john@example.com")

	require.NoError(t, a.Login(context.Background()))

	assert.Equal(t, "john@example.com", f.loginEmail)
	assert.Equal(t, []byte("secret1"), f.loginPass)
	assert.True(t, a.isLoggedIn())
	assert.Contains(t, out.String(), "Login successful")
}

func TestLogin_Failure(t *testing.T) {
	f := &fakeAuth{loginErr: client.ErrUnauthorized}
	a, _ := newTestApp(f)
	stubInputs(t, []byte("bad"), "john@example.com")

	assert.ErrorIs(t, a.Login(context.Background()), client.ErrUnauthorized)
	assert.False(t, a.isLoggedIn())
}

func TestMe(t *testing.T) {
	f := &fakeAuth{meUser: &client.User{ID: "u1", Name: "John", Email: "john@example.com", Age: 30, City: "Riga"}}
	a, out := newTestApp(f)

	require.NoError(t, a.Me(context.Background()))
	assert.Contains(t, out.String(), "email: john@example.com")
	assert.Contains(t, out.String(), "age:   30")
}

func TestMe_RevokedForgetsUser(t *testing.T) {
	f := &fakeAuth{meErr: client.ErrUnauthorized}
	a, _ := newTestApp(f)
	a.userEmail = "john@example.com"

	assert.ErrorIs(t, a.Me(context.Background()), client.ErrUnauthorized)
	assert.False(t, a.isLoggedIn())
}

func TestLogout(t *testing.T) {
	for _, tc := range []struct {
		name    string
		err     error
		wantErr bool
	}{
		{name: "ok"},
		{name: "no session", err: services.ErrNotLoggedIn},
		{name: "server down", err: client.ErrUnavailable, wantErr: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			f := &fakeAuth{logoutErr: tc.err}
			a, _ := newTestApp(f)
			a.userEmail = "john@example.com"

			err := a.Logout(context.Background())
			assert.True(t, f.logoutCalled)
			if tc.wantErr {
				assert.ErrorIs(t, err, tc.err)
				assert.True(t, a.isLoggedIn())
				return
			}
			require.NoError(t, err)
			assert.False(t, a.isLoggedIn())
		})
	}
}

func TestCheckOnlineAndStatus(t *testing.T) {
	f := &fakeAuth{}
	a, _ := newTestApp(f)
	assert.Equal(t, "", a.getStatus())

	a.checkOnline(context.Background())
	assert.Equal(t, ModeOnline, a.Mode)

	a.userEmail = "john@example.com"
	assert.Equal(t, "(john@example.com online)", a.getStatus())

	f.pingErr = errors.New("down")
	a.checkOnline(context.Background())
	assert.Equal(t, ModeOffline, a.Mode)
}
