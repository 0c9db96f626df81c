package commands

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/a4s/internal/a4s"
	"github.com/hay-kot/a4s/internal/api"
	"github.com/hay-kot/a4s/internal/core/config"
	corenotify "github.com/hay-kot/a4s/internal/core/notify"
	"github.com/hay-kot/a4s/internal/printer"
	"github.com/hay-kot/a4s/internal/store/jsonfile"
	"github.com/hay-kot/a4s/internal/tui/notify"
	"github.com/hay-kot/a4s/pkg/tuitest"
)

const crewsBody = `{"crews":[
	{"crew_id":"c1","crew_name":"nightly-review","task_names":["fetch_code","analyze_code"],"status":"completed"},
	{"crew_id":"c2","crew_name":"triage","task_names":["create_ticket"],"status":"running"},
	{"crew_id":"c3","crew_name":"nightly-deploy","task_names":["send_notification"]}
]}`

type request struct {
	method, path, body string
}

// backend is a scripted crew API that records requests.
type backend struct {
	t        *testing.T
	mu       sync.Mutex
	requests []request
	routes   map[string]string
	failures map[string]int
}

func newBackend(t *testing.T) *backend {
	return &backend{t: t, failures: map[string]int{}, routes: map[string]string{
		"GET /crews":                   crewsBody,
		"POST /crew":                   `{"crew_id":"c9","crew_name":"fresh","task_names":["fetch_code"]}`,
		"POST /crews/c1/execute":       `{"crew_id":"c1","crew_name":"nightly-review","status":"running"}`,
		"GET /crews/c1/execute/status": `{"crew_id":"c1","crew_name":"nightly-review","status":"completed"}`,
		"GET /executions":              `{"executions":[{"execution_id":"e1","crew_id":"c1","status":"completed"}]}`,
		"DELETE /crews/c3":             ``,
	}}
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	bits, _ := io.ReadAll(r.Body)
	b.mu.Lock()
	b.requests = append(b.requests, request{r.Method, r.URL.Path, string(bits)})
	body, ok := b.routes[r.Method+" "+r.URL.Path]
	code := b.failures[r.Method+" "+r.URL.Path]
	b.mu.Unlock()

	if code != 0 {
		http.Error(w, "backend exploded", code)
		return
	}
	if !ok {
		http.Error(w, "no route", http.StatusNotFound)
		return
	}
	_, _ = io.WriteString(w, body)
}

func (b *backend) Requests() []request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]request(nil), b.requests...)
}

type harness struct {
	backend *backend
	server  *httptest.Server
	flags   *Flags
	app     *a4s.App
	out     *bytes.Buffer
	errOut  *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	b := newBackend(t)
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)

	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.API.BaseURL = srv.URL

	client := api.New(api.Options{BaseURL: srv.URL, Timeout: 5 * time.Second})
	t.Cleanup(client.CloseIdleConnections)

	bus := notify.NewBus(corenotify.NewMemoryStore(50))
	hist := jsonfile.NewHistoryStore(cfg.PayloadHistoryFile())

	return &harness{
		backend: b,
		server:  srv,
		flags:   &Flags{Config: &cfg, ConfigPath: filepath.Join(cfg.DataDir, "config.yaml")},
		app:     a4s.NewApp(&cfg, client, bus, hist),
		out:     &bytes.Buffer{},
		errOut:  &bytes.Buffer{},
	}
}

func (h *harness) run(t *testing.T, args ...string) error {
	t.Helper()

	root := &cli.Command{
		Name:      "a4s",
		Writer:    h.out,
		ErrWriter: h.errOut,
		// keep cli.Exit from terminating the test binary
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
	root = NewTasksCmd(h.flags).Register(root)
	root = NewLsCmd(h.flags, h.app).Register(root)
	root = NewCreateCmd(h.flags, h.app).Register(root)
	root = NewExecCmd(h.flags, h.app).Register(root)
	root = NewStatusCmd(h.flags, h.app).Register(root)
	root = NewRmCmd(h.flags, h.app).Register(root)
	root = NewConfigValidateCmd(h.flags).Register(root)

	ctx := printer.NewContext(context.Background(), printer.New(h.out, h.errOut))
	return root.Run(ctx, append([]string{"a4s"}, args...))
}

func (h *harness) stdout() string { return tuitest.StripANSI(h.out.String()) }
func (h *harness) stderr() string { return tuitest.StripANSI(h.errOut.String()) }

func TestTasksCmd(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(t, "tasks"))

	out := h.stdout()
	for _, id := range []string{"fetch_code", "analyze_code", "send_notification", "create_ticket"} {
		assert.Contains(t, out, id)
	}
	assert.Empty(t, h.backend.Requests())
}

func TestLsCmd_Table(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(t, "ls"))

	lines := strings.Split(h.stdout(), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "STATUS")
	assert.Contains(t, lines[1], "nightly-review")
	assert.Contains(t, lines[1], "fetch_code,analyze_code")
	assert.Contains(t, lines[2], "Running")
	assert.Contains(t, lines[3], "Idle")
}

func TestLsCmd_MatchAndJSON(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(t, "ls", "--json", "--match", "nightly-*"))

	lines := strings.Split(strings.TrimSpace(h.out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"crew_id":"c1"`)
	assert.Contains(t, lines[1], `"crew_id":"c3"`)
}

func TestLsCmd_InvalidPattern(t *testing.T) {
	h := newHarness(t)

	err := h.run(t, "ls", "--match", "[")
	require.Error(t, err)
	assert.Empty(t, h.backend.Requests())
}

func TestLsCmd_BackendDown(t *testing.T) {
	h := newHarness(t)
	delete(h.backend.routes, "GET /crews")

	err := h.run(t, "ls")
	require.Error(t, err)
	assert.Contains(t, h.stderr(), "Failed to load crews.")
}

func TestCreateCmd_Flags(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(t, "create", "--name", "fresh", "--description", "d", "--task", "fetch_code"))

	reqs := h.backend.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "POST", reqs[0].method)
	assert.JSONEq(t, `{"crew_name":"fresh","description":"d","task_names":["fetch_code"]}`, reqs[0].body)
	assert.Contains(t, h.stdout(), `Crew Created: "fresh" is ready to execute.`)
	assert.Contains(t, h.stdout(), "id: c9")
}

func TestCreateCmd_UnknownTask(t *testing.T) {
	h := newHarness(t)

	err := h.run(t, "create", "--name", "fresh", "--task", "launch_rocket")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown task")
	assert.Empty(t, h.backend.Requests())
}

func TestCreateCmd_NonInteractiveMissingFields(t *testing.T) {
	h := newHarness(t)

	err := h.run(t, "create", "--task", "fetch_code")
	require.Error(t, err)
	assert.Empty(t, h.backend.Requests())
}

func TestExecCmd_WithData(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(t, "exec", "--data", `{"repo": "a4s"}`, "c1"))

	reqs := h.backend.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "POST", reqs[0].method)
	assert.Equal(t, "/crews/c1/execute", reqs[0].path)
	assert.JSONEq(t, `{"repo":"a4s"}`, reqs[0].body)
	assert.Contains(t, h.stdout(), "status: Running")

	assert.JSONEq(t, `{"repo":"a4s"}`, h.app.Crews.LastPayload(context.Background(), "c1"))
}

func TestExecCmd_MalformedPayloadSendsNothing(t *testing.T) {
	h := newHarness(t)

	err := h.run(t, "exec", "--data", "{bad", "c1")
	require.Error(t, err)

	for _, r := range h.backend.Requests() {
		assert.NotEqual(t, "POST", r.method)
	}
	assert.Contains(t, h.stderr(), "Invalid JSON")
}

func TestExecCmd_DataAndFileConflict(t *testing.T) {
	h := newHarness(t)

	err := h.run(t, "exec", "--data", "{}", "-f", "payload.json", "c1")
	require.Error(t, err)
	assert.Empty(t, h.backend.Requests())
}

func TestExecCmd_SingleRequestWithoutPayload(t *testing.T) {
	h := newHarness(t)
	h.backend.routes["GET /executions"] = `[{"execution_id":"e2","crew_id":"c1","status":"running"}]`

	require.NoError(t, h.run(t, "exec", "c1"))

	reqs := h.backend.Requests()
	require.Len(t, reqs, 1, "exec issues only the execute call")
	assert.Equal(t, "POST", reqs[0].method)
	assert.Equal(t, "/crews/c1/execute", reqs[0].path)
	assert.Empty(t, reqs[0].body)
}

func TestStatusCmd_JSON(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(t, "status", "--json", "c1"))

	assert.Contains(t, h.out.String(), `"status": "completed"`)
	assert.Contains(t, h.out.String(), `"execution_id": "e1"`)
	assert.Contains(t, h.out.String(), `"can_execute": true`)
}

func TestStatusCmd_UnknownCrew(t *testing.T) {
	h := newHarness(t)

	err := h.run(t, "status", "zzz")
	require.ErrorIs(t, err, a4s.ErrCrewNotFound)
}

func TestRmCmd_Yes(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(t, "rm", "--yes", "c3"))

	reqs := h.backend.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "DELETE", reqs[0].method)
	assert.Contains(t, h.stdout(), "Crew Deleted")
}

func TestRmCmd_UnknownCrew(t *testing.T) {
	h := newHarness(t)

	err := h.run(t, "rm", "--yes", "zz")
	require.ErrorIs(t, err, a4s.ErrCrewNotFound)
	assert.Contains(t, err.Error(), "zz")
}

func TestExecCmd_BackendFailure(t *testing.T) {
	h := newHarness(t)
	h.backend.failures["POST /crews/c1/execute"] = http.StatusBadGateway

	err := h.run(t, "exec", "c1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 502")
	assert.Equal(t, http.StatusBadGateway, api.StatusCode(err))
}

func TestLsCmd_BackendUnreachable(t *testing.T) {
	h := newHarness(t)
	h.server.Close()

	err := h.run(t, "ls")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot reach crew backend at "+h.server.URL)
}

func TestConfigValidateCmd_JSON(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(t, "config", "validate", "--format", "json"))
	assert.Contains(t, h.out.String(), `"valid": true`)
}

func TestValidatesConfig(t *testing.T) {
	assert.True(t, ValidatesConfig([]string{"config", "validate", "--format", "json"}))
	assert.False(t, ValidatesConfig([]string{"config"}))
	assert.False(t, ValidatesConfig([]string{"ls", "validate"}))
	assert.False(t, ValidatesConfig(nil))
}

func TestConfigValidateCmd_ListsEveryField(t *testing.T) {
	h := newHarness(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  base_url: ftp://crews.example.com
tui:
  theme: neon
`), 0o644))

	cfg, err := config.Read(path, t.TempDir())
	require.NoError(t, err)
	h.flags.Config = cfg
	h.flags.ConfigPath = path

	err = h.run(t, "config", "validate", "--format", "json")
	require.Error(t, err)

	out := h.out.String()
	assert.Contains(t, out, `"valid": false`)
	assert.Contains(t, out, `"api.base_url"`)
	assert.Contains(t, out, `"tui.theme"`)
}

func TestConfigValidateCmd_Invalid(t *testing.T) {
	h := newHarness(t)
	h.flags.Config.TUI.Theme = "nope"

	err := h.run(t, "config", "validate")
	require.Error(t, err)
	assert.Contains(t, h.stderr(), "tui.theme")
}
