package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refinemirror/mirror-go/internal/api"
	"github.com/refinemirror/mirror-go/internal/logging"
	"github.com/refinemirror/mirror-go/internal/profile"
	"github.com/refinemirror/mirror-go/internal/services"
	"github.com/refinemirror/mirror-go/internal/session"
)

// ---- seams ----

func stubInputs(t *testing.T, lines []string, password string) func() {
	t.Helper()
	origST, origGP := getSimpleText, getPassword

	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(lines) {
			return "", io.EOF
		}
		line := lines[i]
		i++
		return line, nil
	}
	getPassword = func(_ io.Writer, _ string) (string, error) { return password, nil }

	return func() {
		getSimpleText = origST
		getPassword = origGP
	}
}

func captureOutput(t *testing.T) (*[]string, func()) {
	t.Helper()
	orig := printlnFn
	var out []string
	printlnFn = func(args ...any) { out = append(out, strings.TrimSpace(fmt.Sprintln(args...))) }
	return &out, func() { printlnFn = orig }
}

// ---- fakes ----

// fakeAPI implements api.Client so tests can hand real profiles to the app.
type fakeAPI struct {
	FetchRet  *api.ProfileFragment
	FetchErr  error
	UpdateErr error
}

func (f *fakeAPI) CreateAccount(ctx context.Context, email, name, password, passwordConfirm string) (string, error) {
	return "", nil
}
func (f *fakeAPI) Login(ctx context.Context, email, password string) (string, error) {
	return "", nil
}
func (f *fakeAPI) FetchProfile(ctx context.Context, token string) (*api.ProfileFragment, error) {
	if f.FetchRet == nil && f.FetchErr == nil {
		return &api.ProfileFragment{}, nil
	}
	return f.FetchRet, f.FetchErr
}
func (f *fakeAPI) UpdateProfile(ctx context.Context, token string, upd api.ProfileUpdate) error {
	return f.UpdateErr
}
func (f *fakeAPI) Close() error { return nil }

// fakeAuth implements services.AuthService, recording inputs and installing
// a real profile into the session on success.
type fakeAuth struct {
	sess      *session.Session
	apiClient *fakeAPI

	signupInfo services.SignupInfo
	signupErr  error

	loginInfo services.LoginInfo
	loginErr  error

	logoutCalled bool
}

func (f *fakeAuth) CreateAccount(ctx context.Context, info services.SignupInfo) (*profile.UserProfile, error) {
	f.signupInfo = info
	if f.signupErr != nil {
		return nil, f.signupErr
	}
	p := profile.FromCredentials(f.apiClient, f.sess, info.Email, info.Password, info.Name)
	f.sess.SetActive("T", p)
	return p, nil
}

func (f *fakeAuth) Login(ctx context.Context, info services.LoginInfo) (*profile.UserProfile, error) {
	f.loginInfo = info
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	p := profile.FromCredentials(f.apiClient, f.sess, info.Email, info.Password, "")
	f.sess.SetActive("T", p)
	return p, nil
}

func (f *fakeAuth) Logout(ctx context.Context) error {
	f.logoutCalled = true
	f.sess.Invalidate()
	return nil
}

func (f *fakeAuth) Close(ctx context.Context) error { return nil }

func newTestApp(t *testing.T) (*App, *fakeAuth, *fakeAPI) {
	t.Helper()
	apiClient := &fakeAPI{}
	sess := session.New()
	f := &fakeAuth{sess: sess, apiClient: apiClient}
	a := &App{
		authService: f,
		session:     sess,
		log:         logging.NewDefault(io.Discard, slog.LevelError),
		reader:      bufio.NewReader(strings.NewReader("")),
	}
	return a, f, apiClient
}

// ---- tests ----

func TestSignup_Success(t *testing.T) {
	a, f, _ := newTestApp(t)

	restore := stubInputs(t, []string{"a@b.com", "Ann"}, "pw")
	defer restore()
	out, restoreOut := captureOutput(t)
	defer restoreOut()

	require.NoError(t, a.Signup(context.Background()))

	assert.Equal(t, services.SignupInfo{
		Email: "a@b.com", Name: "Ann", Password: "pw", PasswordConfirm: "pw",
	}, f.signupInfo)
	assert.True(t, a.session.Active())
	assert.Equal(t, "a@b.com", a.userEmail)
	assert.Contains(t, *out, "Signed up!")
}

func TestSignup_UserExists(t *testing.T) {
	a, f, _ := newTestApp(t)
	f.signupErr = fmt.Errorf("create account: %w", &api.ServerError{Code: "error_user_already_exists"})

	restore := stubInputs(t, []string{"a@b.com", "Ann"}, "pw")
	defer restore()
	out, restoreOut := captureOutput(t)
	defer restoreOut()

	require.NoError(t, a.Signup(context.Background()))

	assert.Contains(t, *out, msgUserExists)
	assert.False(t, a.session.Active())
}

func TestSignup_UnknownServerCode(t *testing.T) {
	a, f, _ := newTestApp(t)
	f.signupErr = &api.ServerError{Code: "error_weak_password"}

	restore := stubInputs(t, []string{"a@b.com", "Ann"}, "pw")
	defer restore()
	out, restoreOut := captureOutput(t)
	defer restoreOut()

	require.NoError(t, a.Signup(context.Background()))
	assert.Contains(t, *out, msgSignupFailed)
}

func TestLogin_Success_FetchesDetails(t *testing.T) {
	a, f, apiClient := newTestApp(t)
	name, loc := "Ann", "NYC"
	apiClient.FetchRet = &api.ProfileFragment{Name: &name, Location: &loc}

	restore := stubInputs(t, []string{"a@b.com"}, "pw")
	defer restore()
	out, restoreOut := captureOutput(t)
	defer restoreOut()

	require.NoError(t, a.Login(context.Background()))

	assert.Equal(t, services.LoginInfo{Email: "a@b.com", Password: "pw"}, f.loginInfo)
	assert.Equal(t, "(a@b.com) ", a.getStatus())

	// The post-login fetch replaced the record: the observer announced it
	// and the details show the fetched fields.
	assert.Contains(t, *out, "(account details updated)")
	assert.Contains(t, *out, "Name:     Ann")
	assert.Contains(t, *out, "Location: NYC")
}

func TestLogin_Unavailable(t *testing.T) {
	a, f, _ := newTestApp(t)
	f.loginErr = fmt.Errorf("login: %w", api.ErrUnavailable)

	restore := stubInputs(t, []string{"a@b.com"}, "pw")
	defer restore()
	out, restoreOut := captureOutput(t)
	defer restoreOut()

	require.NoError(t, a.Login(context.Background()))
	assert.Contains(t, *out, msgUnavailable)
	assert.False(t, a.session.Active())
}

func TestLogin_Validation(t *testing.T) {
	a, f, _ := newTestApp(t)
	f.loginErr = fmt.Errorf("%w: need a password", services.ErrValidation)

	restore := stubInputs(t, []string{"a@b.com"}, "")
	defer restore()
	out, restoreOut := captureOutput(t)
	defer restoreOut()

	require.NoError(t, a.Login(context.Background()))
	require.NotEmpty(t, *out)
	assert.Contains(t, (*out)[len(*out)-1], "need a password")
}

func TestLogout(t *testing.T) {
	a, f, _ := newTestApp(t)

	restore := stubInputs(t, []string{"a@b.com"}, "pw")
	defer restore()
	_, restoreOut := captureOutput(t)
	defer restoreOut()

	require.NoError(t, a.Login(context.Background()))
	require.True(t, a.session.Active())

	require.NoError(t, a.Logout(context.Background()))
	assert.True(t, f.logoutCalled)
	assert.False(t, a.session.Active())
	assert.Equal(t, "", a.getStatus())
}
