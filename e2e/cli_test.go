package e2e_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eruditgame/erudit-server/internal/api"
	"github.com/eruditgame/erudit-server/internal/factory"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	tokenFile  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "eruditctl-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/eruditctl")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	// Create temp token file
	tokenFile := filepath.Join(t.TempDir(), "token")

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		tokenFile:  tokenFile,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token-file", r.tokenFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func (r *cliRunner) runWithToken(token string, args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token", token,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	server   *http.Server
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// Create application; no dictionary is loaded, so word checks are skipped
	app, err := factory.New(factory.Config{Logger: logger})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		AuthService:    app.AuthService,
		GameController: app.GameController,
		DictService:    app.DictionaryService,
		HubManager:     app.HubManager,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		server: server,
		addr:   serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type authResponse struct {
	Account struct {
		ID          string `json:"id"`
		DisplayName string `json:"display_name"`
		IsGuest     bool   `json:"is_guest"`
	} `json:"account"`
	SessionToken string `json:"session_token"`
}

type gameStateResponse struct {
	ID       string `json:"id"`
	Seq      int64  `json:"seq"`
	BagCount int    `json:"bag_count"`
	Players  []struct {
		ID        string `json:"id"`
		Score     int    `json:"score"`
		RackCount int    `json:"rack_count"`
	} `json:"players"`
	CurrentPlayer string `json:"current_player"`
	TurnNumber    int    `json:"turn_number"`
	Ended         bool   `json:"ended"`
}

type moveResultResponse struct {
	Move struct {
		Kind  string   `json:"kind"`
		Words []string `json:"words"`
		Score int      `json:"score"`
	} `json:"move"`
	State gameStateResponse `json:"state"`
}

type healthResponse struct {
	Status string `json:"status"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_PlayerCommands(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Create guest
	output, err := cli.run("player", "guest", "--name", "Алиса")
	require.NoError(t, err, "output: %s", output)

	var authResp authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &authResp))
	assert.Equal(t, "Алиса", authResp.Account.DisplayName)
	assert.True(t, authResp.Account.IsGuest)
	assert.NotEmpty(t, authResp.SessionToken)

	// Get me (token should be saved in token file)
	output, err = cli.run("player", "me")
	require.NoError(t, err, "output: %s", output)

	var account struct {
		ID          string `json:"id"`
		DisplayName string `json:"display_name"`
		IsGuest     bool   `json:"is_guest"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &account))
	assert.Equal(t, "Алиса", account.DisplayName)
	assert.Equal(t, authResp.Account.ID, account.ID)
}

func TestCLI_RegisterAndLogin(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Register
	output, err := cli.run("player", "register", "--name", "Борис", "--user", "boris", "--pass", "secret123")
	require.NoError(t, err, "output: %s", output)

	var regResp authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &regResp))
	assert.False(t, regResp.Account.IsGuest)

	// Login with the same credentials
	output, err = cli.run("player", "login", "--user", "boris", "--pass", "secret123")
	require.NoError(t, err, "output: %s", output)

	var loginResp authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &loginResp))
	assert.Equal(t, regResp.Account.ID, loginResp.Account.ID)

	// Bad password fails
	output, err = cli.run("player", "login", "--user", "boris", "--pass", "wrong")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "credentials")
}

func TestCLI_FullGameFlow(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	// Create two CLI runners with separate token files
	cli1 := newCLIRunner(t, ts.addr)
	cli2 := &cliRunner{
		binaryPath: cli1.binaryPath,
		serverURL:  cli1.serverURL,
		tokenFile:  filepath.Join(t.TempDir(), "token2"),
	}

	// Create two players
	output, err := cli1.run("player", "guest", "--name", "Алиса")
	require.NoError(t, err, "output: %s", output)
	var auth1 authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &auth1))
	token1 := auth1.SessionToken

	output, err = cli2.run("player", "guest", "--name", "Борис")
	require.NoError(t, err, "output: %s", output)
	var auth2 authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &auth2))
	token2 := auth2.SessionToken

	// Alice creates a game
	output, err = cli1.runWithToken(token1, "game", "create")
	require.NoError(t, err, "output: %s", output)
	var game gameStateResponse
	require.NoError(t, json.Unmarshal([]byte(output), &game))
	gameID := game.ID
	require.NotEmpty(t, gameID)
	assert.Equal(t, int64(1), game.Seq)
	t.Logf("Created game: %s", gameID)

	// Bob joins
	output, err = cli2.runWithToken(token2, "game", "join", gameID)
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &game))
	assert.Len(t, game.Players, 2)
	assert.Equal(t, int64(2), game.Seq)

	// Alice opens; no dictionary is loaded so any tile combination plays
	output, err = cli1.runWithToken(token1, "game", "play", gameID, "7,7=С", "7,8=О", "7,9=Н")
	require.NoError(t, err, "output: %s", output)
	var result moveResultResponse
	require.NoError(t, json.Unmarshal([]byte(output), &result))
	assert.Equal(t, "play", result.Move.Kind)
	assert.Equal(t, []string{"СОН"}, result.Move.Words)
	assert.Greater(t, result.Move.Score, 0)
	assert.Equal(t, auth2.Account.ID, result.State.CurrentPlayer)
	t.Logf("Alice played СОН for %d points", result.Move.Score)

	// Bob skips
	output, err = cli2.runWithToken(token2, "game", "skip", gameID)
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &result))
	assert.Equal(t, "skip", result.Move.Kind)
	assert.Equal(t, 0, result.Move.Score)
	assert.Equal(t, auth1.Account.ID, result.State.CurrentPlayer)

	// Bob cannot move again out of turn
	output, err = cli2.runWithToken(token2, "game", "skip", gameID)
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "turn")

	// Alice saves then clears a preview
	output, err = cli1.runWithToken(token1, "game", "preview", gameID, "8,7=А")
	require.NoError(t, err, "output: %s", output)
	var msgResp messageResponse
	require.NoError(t, json.Unmarshal([]byte(output), &msgResp))
	assert.Equal(t, "Preview saved", msgResp.Message)

	// State reflects the play and the skip
	output, err = cli1.runWithToken(token1, "game", "get", gameID)
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &game))
	assert.Equal(t, 2, game.TurnNumber)
	assert.False(t, game.Ended)
	for _, p := range game.Players {
		assert.Equal(t, 7, p.RackCount)
	}
}

func TestCLI_ErrorHandling(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Get player without auth
	output, err := cli.run("player", "me")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "unauthorized")

	// Get non-existent game
	output, err = cli.run("player", "guest", "--name", "Алиса")
	require.NoError(t, err)
	var auth authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &auth))

	output, err = cli.runWithToken(auth.SessionToken, "game", "get", "INVALID")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "not found")

	// Malformed tile argument never reaches the server
	output, err = cli.runWithToken(auth.SessionToken, "game", "play", "INVALID", "banana")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "expected row,col=letter")
}
