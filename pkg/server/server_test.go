package server_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-accountform/pkg/model"
	"github.com/goliatone/go-accountform/pkg/registration"
	"github.com/goliatone/go-accountform/pkg/renderers/vanilla"
	"github.com/goliatone/go-accountform/pkg/server"
	"github.com/goliatone/go-accountform/pkg/testsupport"
)

var sessionInput = regexp.MustCompile(`name="session_id" value="([^"]+)"`)

func newTestServer(t *testing.T, submitter registration.Submitter, options ...server.Option) *httptest.Server {
	t.Helper()
	renderer, err := vanilla.New(vanilla.WithAssetURLPrefix(server.AssetsPath))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	options = append(options, server.WithAssets(vanilla.AssetsFS()))
	srv := server.New(model.Registration(server.FormPath), renderer, submitter, options...)
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts
}

func formValues(data registration.FormData) url.Values {
	values := url.Values{}
	for field, value := range data.Values() {
		values.Set(field.String(), value)
	}
	return values
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(raw)
}

func TestServer_ShowRendersEmptyForm(t *testing.T) {
	ts := newTestServer(t, &testsupport.StaticSubmitter{})

	resp, err := http.Get(ts.URL + server.FormPath)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body := readBody(t, resp)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: want 200, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Content-Type"); !strings.HasPrefix(got, "text/html") {
		t.Fatalf("content type: got %q", got)
	}
	if !strings.Contains(body, `action="/register"`) {
		t.Fatalf("form should post back to /register:\n%s", body)
	}
	if !sessionInput.MatchString(body) {
		t.Fatalf("expected hidden session id:\n%s", body)
	}
	if strings.Contains(body, "field__error") {
		t.Fatalf("empty form must not show errors")
	}
}

func TestServer_SubmitOutcomes(t *testing.T) {
	tests := []struct {
		name       string
		data       func() registration.FormData
		submitErr  error
		wantStatus int
		wantCalls  int
		contains   []string
		absent     []string
	}{
		{
			name:       "success resets form",
			data:       testsupport.ValidFormData,
			wantStatus: http.StatusOK,
			wantCalls:  1,
			contains:   []string{registration.MsgAccountCreated, `role="status"`, `name="firstName" placeholder="First Name" value=""`},
			absent:     []string{"field__error"},
		},
		{
			name: "local rejection",
			data: func() registration.FormData {
				d := testsupport.ValidFormData()
				d.Email = "bad-email"
				return d
			},
			wantStatus: http.StatusUnprocessableEntity,
			contains:   []string{registration.MsgEmailInvalid, `value="bad-email"`, `aria-invalid="true"`},
			absent:     []string{"notice--"},
		},
		{
			name:       "backend rejection keeps values",
			data:       testsupport.ValidFormData,
			submitErr:  registration.ErrRejected,
			wantStatus: http.StatusBadGateway,
			wantCalls:  1,
			contains:   []string{registration.MsgAccountFailed, `role="alert"`, `value="Jane"`},
		},
		{
			name:       "transport failure",
			data:       testsupport.ValidFormData,
			submitErr:  errors.New("connection refused"),
			wantStatus: http.StatusBadGateway,
			wantCalls:  1,
			contains:   []string{registration.MsgSubmitError},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := &testsupport.StaticSubmitter{Err: tt.submitErr}
			ts := newTestServer(t, sub)

			resp, err := http.PostForm(ts.URL+server.FormPath, formValues(tt.data()))
			if err != nil {
				t.Fatalf("post: %v", err)
			}
			body := readBody(t, resp)

			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status: want %d, got %d\n%s", tt.wantStatus, resp.StatusCode, body)
			}
			if len(sub.Calls()) != tt.wantCalls {
				t.Fatalf("submit calls: want %d, got %d", tt.wantCalls, len(sub.Calls()))
			}
			for _, fragment := range tt.contains {
				if !strings.Contains(body, fragment) {
					t.Fatalf("expected %q in body\n%s", fragment, body)
				}
			}
			for _, fragment := range tt.absent {
				if strings.Contains(body, fragment) {
					t.Fatalf("unexpected %q in body\n%s", fragment, body)
				}
			}
		})
	}
}

func TestServer_SubmitForwardsPostedData(t *testing.T) {
	sub := &testsupport.StaticSubmitter{}
	ts := newTestServer(t, sub)

	data := testsupport.ValidFormData()
	resp, err := http.PostForm(ts.URL+server.FormPath, formValues(data))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	readBody(t, resp)

	if diff := cmp.Diff([]registration.FormData{data}, sub.Calls()); diff != "" {
		t.Fatalf("submitted data mismatch (-want +got):\n%s", diff)
	}
}

func TestServer_KeepsPostedSessionID(t *testing.T) {
	ts := newTestServer(t, &testsupport.StaticSubmitter{})
	const id = "6f1c1b8e-4a58-4e8b-9d6a-0d8f2a3c9b11"

	values := formValues(registration.FormData{})
	values.Set("session_id", id)
	resp, err := http.PostForm(ts.URL+server.FormPath, values)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	body := readBody(t, resp)

	match := sessionInput.FindStringSubmatch(body)
	if len(match) != 2 || match[1] != id {
		t.Fatalf("expected session id %s to round trip, got %v", id, match)
	}

	values.Set("session_id", "<script>")
	resp, err = http.PostForm(ts.URL+server.FormPath, values)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	body = readBody(t, resp)
	match = sessionInput.FindStringSubmatch(body)
	if len(match) != 2 || match[1] == "<script>" || match[1] == id {
		t.Fatalf("malformed id should be replaced, got %v", match)
	}
}

func TestServer_PhaseObserverSeesEveryRequest(t *testing.T) {
	var (
		mu     sync.Mutex
		phases []string
	)
	observer := registration.WithPhaseObserver(func(tr registration.Transition) {
		if tr.To.Terminal() {
			mu.Lock()
			phases = append(phases, tr.To.String())
			mu.Unlock()
		}
	})
	ts := newTestServer(t, &testsupport.StaticSubmitter{}, server.WithSessionOptions(observer))

	for _, data := range []registration.FormData{{}, testsupport.ValidFormData()} {
		resp, err := http.PostForm(ts.URL+server.FormPath, formValues(data))
		if err != nil {
			t.Fatalf("post: %v", err)
		}
		readBody(t, resp)
	}

	mu.Lock()
	defer mu.Unlock()
	want := []string{registration.PhaseRejectedLocally.String(), registration.PhaseSucceeded.String()}
	if diff := cmp.Diff(want, phases); diff != "" {
		t.Fatalf("phases mismatch (-want +got):\n%s", diff)
	}
}

func TestServer_AuxiliaryRoutes(t *testing.T) {
	ts := newTestServer(t, &testsupport.StaticSubmitter{},
		server.WithMetricsHandler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("# metrics"))
		})),
	)

	tests := []struct {
		path     string
		status   int
		contains string
	}{
		{"/healthz", http.StatusOK, "ok"},
		{"/metrics", http.StatusOK, "# metrics"},
		{server.AssetsPath + "/" + vanilla.StylesheetName, http.StatusOK, ".account-form"},
		{server.AssetsPath + "/missing.css", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		resp, err := http.Get(ts.URL + tt.path)
		if err != nil {
			t.Fatalf("get %s: %v", tt.path, err)
		}
		body := readBody(t, resp)
		if resp.StatusCode != tt.status {
			t.Fatalf("%s: want %d, got %d", tt.path, tt.status, resp.StatusCode)
		}
		if !strings.Contains(body, tt.contains) {
			t.Fatalf("%s: expected %q in body", tt.path, tt.contains)
		}
	}
}

func TestNewHTTPServer_SetsTimeouts(t *testing.T) {
	srv := server.NewHTTPServer(":0", http.NotFoundHandler())
	if srv.ReadTimeout == 0 || srv.WriteTimeout == 0 || srv.IdleTimeout == 0 || srv.ReadHeaderTimeout == 0 {
		t.Fatalf("expected all timeouts to be set: %+v", srv)
	}
}
