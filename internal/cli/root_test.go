package cli

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ghfetch/ghfetch/pkg/buildinfo"
	ghferrors "github.com/ghfetch/ghfetch/pkg/errors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"all failed", ErrAllFailed, ExitFailure},
		{"aborted", abort(ghferrors.New(ghferrors.ErrCodeRateLimited, "quota")), ExitFailure},
		{"interrupted", context.Canceled, ExitInterrupt},
		{"wrapped interrupt", abort(context.Canceled), ExitInterrupt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestAbortErrorMessage(t *testing.T) {
	err := abort(ghferrors.New(ghferrors.ErrCodeUnauthorized, "bad token"))
	if err.Error() != "You don't have access to this." {
		t.Errorf("Error() = %q", err.Error())
	}
	if !ghferrors.Is(err, ghferrors.ErrCodeUnauthorized) {
		t.Error("abort() should keep the cause reachable")
	}

	plain := abort(errors.New("disk full"))
	if plain.Error() != "aborted: disk full" {
		t.Errorf("Error() = %q", plain.Error())
	}
}

// fakeAPI serves a tiny slice of the GitHub API plus an avatar.
func fakeAPI(t *testing.T, status int) *httptest.Server {
	t.Helper()

	var avatar bytes.Buffer
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	if err := png.Encode(&avatar, img); err != nil {
		t.Fatal(err)
	}

	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		switch r.URL.Path {
		case "/avatar.png":
			w.Write(avatar.Bytes())
		case "/users/octocat":
			w.Write([]byte(`{
				"login": "octocat", "type": "User", "name": "The Octocat",
				"html_url": "https://github.com/octocat",
				"avatar_url": "` + server.URL + `/avatar.png",
				"created_at": "2011-01-25T18:44:36Z",
				"followers": 42, "following": 9, "public_repos": 8, "public_gists": 8
			}`))
		case "/users/octocat/repos":
			w.Write([]byte(`[{"full_name":"octocat/Hello-World"},{"full_name":"octocat/Spoon-Knife"}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

// runCLI executes the root command against the fake API.
func runCLI(t *testing.T, apiURL string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GHFETCH_TOKEN", "")
	t.Setenv("GHFETCH_API_URL", apiURL)

	var out, errOut bytes.Buffer
	c := New(&errOut, LogInfo)
	c.Out = &out
	c.In = strings.NewReader("")

	cmd := c.RootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestRootCommandRendersUser(t *testing.T) {
	api := fakeAPI(t, http.StatusOK)

	out, _, err := runCLI(t, api.URL, "--no-color", "--width", "4", "octocat")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	for _, want := range []string{"octocat", "The Octocat", "42", "https://github.com/octocat", "2011-01-25"} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("--no-color output should not contain ANSI escapes")
	}
}

func TestRootCommandListsWildcard(t *testing.T) {
	api := fakeAPI(t, http.StatusOK)

	out, _, err := runCLI(t, api.URL, "octocat/*")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if out != "octocat/Hello-World\noctocat/Spoon-Knife\n" {
		t.Errorf("output = %q", out)
	}
}

func TestRootCommandFailures(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantErr  error
		wantCode ghferrors.Code
		wantOut  string
	}{
		{
			name:    "not found",
			status:  http.StatusNotFound,
			wantErr: ErrAllFailed,
			wantOut: "ghost: The given name is not an existing user, organization or repository.",
		},
		{
			name:     "rate limited",
			status:   http.StatusTooManyRequests,
			wantCode: ghferrors.ErrCodeRateLimited,
		},
		{
			name:     "unauthorized",
			status:   http.StatusUnauthorized,
			wantCode: ghferrors.ErrCodeUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := fakeAPI(t, tt.status)

			out, _, err := runCLI(t, api.URL, "ghost")
			if ExitCode(err) != ExitFailure {
				t.Fatalf("ExitCode(%v) = %d, want %d", err, ExitCode(err), ExitFailure)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantCode != "" && !ghferrors.Is(err, tt.wantCode) {
				t.Errorf("code = %v, want %v", ghferrors.GetCode(err), tt.wantCode)
			}
			if !strings.Contains(out, tt.wantOut) {
				t.Errorf("output = %q, want %q", out, tt.wantOut)
			}
		})
	}
}

func TestRootCommandRequiresTarget(t *testing.T) {
	if _, _, err := runCLI(t, "http://127.0.0.1:1"); err == nil {
		t.Error("Execute() without targets should fail")
	}
}

func TestRootCommandInvalidTarget(t *testing.T) {
	api := fakeAPI(t, http.StatusOK)

	out, _, err := runCLI(t, api.URL, "--no-color", "a/b/c", "octocat")
	if err != nil {
		t.Fatalf("Execute() error = %v, want the valid target to render", err)
	}
	if !strings.Contains(out, `a/b/c: target "a/b/c" must be a name or owner/repo`) {
		t.Errorf("missing invalid target message:\n%s", out)
	}
	if !strings.Contains(out, "The Octocat") {
		t.Errorf("valid target was not rendered:\n%s", out)
	}

	_, _, err = runCLI(t, api.URL, "a/b/c")
	if !errors.Is(err, ErrAllFailed) {
		t.Errorf("error = %v, want %v", err, ErrAllFailed)
	}
}

func TestRootCommandVersion(t *testing.T) {
	out, _, err := runCLI(t, "http://127.0.0.1:1", "--version")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !strings.Contains(out, buildinfo.Version) {
		t.Errorf("version output = %q, want %q", out, buildinfo.Version)
	}
}

func TestCompletionCommand(t *testing.T) {
	out, _, err := runCLI(t, "http://127.0.0.1:1", "completion", "bash")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !strings.Contains(out, "ghfetch") {
		t.Error("bash completion should mention the command name")
	}
}
