package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"meater/internal/credentials"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const fakeToken = "tok-123"

const fakeDevices = `{
  "status": "OK",
  "statusCode": 200,
  "data": {
    "devices": [
      {
        "id": "probe-1",
        "temperature": {"internal": 60.0, "ambient": 110.0},
        "cook": {
          "id": "cook-1",
          "name": "Brisket",
          "state": "Started",
          "temperature": {"target": 95.0, "peak": 61.0},
          "time": {"elapsed": 3661, "remaining": -1}
        },
        "updatedAt": 1700000000
      }
    ]
  },
  "meta": {}
}`

// newFakeMeater serves /v1/login and /v1/devices. The returned URL is the
// API base URL.
func newFakeMeater(t *testing.T) string {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/v1/login", allowMethod(http.MethodPost, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)

		w.Header().Set("Content-Type", "application/json")
		if body.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"status":"Unauthorized","statusCode":401,"message":"Invalid email or password"}`)
			return
		}
		fmt.Fprintf(w, `{"status":"OK","statusCode":200,"data":{"token":%q,"userId":"user-1"},"meta":{}}`, fakeToken)
	}))

	mux.HandleFunc("/v1/devices", allowMethod(http.MethodGet, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Header.Get("Authorization") != "Bearer "+fakeToken {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"status":"Unauthorized","statusCode":401}`)
			return
		}
		fmt.Fprint(w, fakeDevices)
	}))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv.URL + "/v1"
}

// setupEnv isolates config, data dir and notification env for one test and
// returns the data dir.
func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	chdirForTest(t, dir)
	t.Setenv("MEATER_DATA_DIR", dir)
	t.Setenv("SLACK_BOT_USER_TOKEN", "")
	t.Setenv("DISCORD_WEBHOOK_URL", "")
	return dir
}

func saveToken(t *testing.T, dataDir string) {
	t.Helper()
	if err := writeToken(dataDir, fakeToken); err != nil {
		t.Fatalf("failed to save token: %v", err)
	}
}

func writeToken(dataDir, token string) error {
	return credentials.NewStore(dataDir).Save(credentials.Token{Token: token, UserID: "user-1"})
}

// executeCommand executes a cobra command and returns its output.
func executeCommand(root *cobra.Command, args ...string) (string, error) {
	resetFlags(root)
	// Mock exit
	oldExit := exit
	exit = func(code int) {
		if code != 0 {
			panic(fmt.Sprintf("exit-%d", code))
		}
	}
	defer func() { exit = oldExit }()
	defer func() {
		if r := recover(); r != nil {
			if s, ok := r.(string); ok && strings.HasPrefix(s, "exit-") {
				// This is an expected exit, don't re-panic
				return
			}
			panic(r) // Re-panic actual panics
		}
	}()
	root.SetArgs(args)
	b := new(bytes.Buffer)
	root.SetOut(b)
	root.SetErr(b)
	root.SetIn(bytes.NewBufferString(""))
	err := root.Execute()
	return b.String(), err
}

// resetFlags resets all flags to their default values.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			f.Value.Set(f.DefValue)
			f.Changed = false
		}
	})
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// chdirForTest changes the working directory for the duration of the test
// and restores it on cleanup (equivalent of testing.T.Chdir, Go 1.24+).
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

// allowMethod restricts h to a single HTTP method, mirroring the
// "METHOD /path" ServeMux patterns of Go 1.22+ on older toolchains.
func allowMethod(method string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method && !(method == http.MethodGet && r.Method == http.MethodHead) {
			allow := method
			if method == http.MethodGet {
				allow += ", " + http.MethodHead
			}
			w.Header().Set("Allow", allow)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		h(w, r)
	}
}
