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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/squadup/squadup/internal/api"
	"github.com/squadup/squadup/internal/factory"
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
	binaryPath := filepath.Join(projectRoot, "bin", "squadup-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/squadup")
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

	// Create application
	app, err := factory.New(factory.Config{})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	router := api.NewRouter(api.RouterConfig{
		Logger:             logger,
		AuthService:        app.AuthService,
		ProfileService:     app.ProfileService,
		CatalogService:     app.CatalogService,
		MatchmakingService: app.MatchmakingService,
		LedgerService:      app.LedgerService,
		LFGService:         app.LFGService,
		MessageService:     app.MessageService,
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
		addr: serverURL,
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
	UserID       string `json:"user_id"`
	Username     string `json:"username"`
	SessionToken string `json:"session_token"`
}

type profileResponse struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Region      string `json:"region"`
}

type enrichedProfileResponse struct {
	Profile profileResponse `json:"profile"`
	Games   []struct {
		GameID     string `json:"game_id"`
		SkillLevel string `json:"skill_level"`
	} `json:"games"`
}

type gameResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

type matchResponse struct {
	ID     string `json:"id"`
	UserA  string `json:"user_a"`
	UserB  string `json:"user_b"`
	Status string `json:"status"`
}

type lfgPostResponse struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Region        string `json:"region"`
	PlayersNeeded int    `json:"players_needed"`
}

type healthResponse struct {
	Status string `json:"status"`
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

func TestCLI_UserCommands(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Register
	output, err := cli.run("user", "register", "--user", "alice", "--pass", "secret123456")
	require.NoError(t, err, "output: %s", output)

	var authResp authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &authResp))
	assert.Equal(t, "alice", authResp.Username)
	assert.NotEmpty(t, authResp.SessionToken)

	// Get me (token should be saved in token file)
	output, err = cli.run("user", "me")
	require.NoError(t, err, "output: %s", output)

	var me authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &me))
	assert.Equal(t, authResp.UserID, me.UserID)

	// Login with explicit credentials
	output, err = cli.run("user", "login", "--user", "alice", "--pass", "secret123456")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &me))
	assert.Equal(t, authResp.UserID, me.UserID)
}

func TestCLI_ProfileAndGames(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("user", "register", "--user", "alice", "--pass", "secret123456")
	require.NoError(t, err, "output: %s", output)

	// Create profile
	output, err = cli.run("profile", "create", "--name", "Alice", "--region", "na-east", "--style", "chill")
	require.NoError(t, err, "output: %s", output)

	var prof profileResponse
	require.NoError(t, json.Unmarshal([]byte(output), &prof))
	assert.Equal(t, "Alice", prof.DisplayName)
	assert.Equal(t, "na-east", prof.Region)

	// Add a catalog game and link it
	output, err = cli.run("games", "create", "--name", "Valorant", "--category", "FPS")
	require.NoError(t, err, "output: %s", output)

	var game gameResponse
	require.NoError(t, json.Unmarshal([]byte(output), &game))
	assert.Equal(t, "Valorant", game.Name)

	output, err = cli.run("profile", "game", "add", "--game", game.ID, "--skill", "gold")
	require.NoError(t, err, "output: %s", output)

	// Profile shows the linked game
	output, err = cli.run("profile", "show")
	require.NoError(t, err, "output: %s", output)

	var enriched enrichedProfileResponse
	require.NoError(t, json.Unmarshal([]byte(output), &enriched))
	require.Len(t, enriched.Games, 1)
	assert.Equal(t, game.ID, enriched.Games[0].GameID)
	assert.Equal(t, "gold", enriched.Games[0].SkillLevel)
}

func TestCLI_MatchFlow(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Alice registers and sets up a profile
	output, err := cli.run("user", "register", "--user", "alice", "--pass", "secret123456")
	require.NoError(t, err, "output: %s", output)

	var alice authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &alice))

	_, err = cli.runWithToken(alice.SessionToken, "profile", "create", "--name", "Alice", "--region", "eu-west")
	require.NoError(t, err)

	// Bob does the same
	output, err = cli.run("user", "register", "--user", "bob", "--pass", "secret123456")
	require.NoError(t, err, "output: %s", output)

	var bob authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &bob))

	_, err = cli.runWithToken(bob.SessionToken, "profile", "create", "--name", "Bob", "--region", "eu-west")
	require.NoError(t, err)

	// Alice requests a match with Bob
	output, err = cli.runWithToken(alice.SessionToken, "match", "create", "--user", bob.UserID)
	require.NoError(t, err, "output: %s", output)

	var match matchResponse
	require.NoError(t, json.Unmarshal([]byte(output), &match))
	assert.Equal(t, "pending", match.Status)

	// Bob accepts
	output, err = cli.runWithToken(bob.SessionToken, "match", "respond", "--match", match.ID, "--decision", "accepted")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &match))
	assert.Equal(t, "accepted", match.Status)

	// They exchange a message
	_, err = cli.runWithToken(alice.SessionToken, "match", "send", "--match", match.ID, "--content", "queue tonight?")
	require.NoError(t, err)

	output, err = cli.runWithToken(bob.SessionToken, "match", "messages", "--match", match.ID)
	require.NoError(t, err, "output: %s", output)
	assert.Contains(t, output, "queue tonight?")
}

func TestCLI_LFGFlow(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("user", "register", "--user", "alice", "--pass", "secret123456")
	require.NoError(t, err, "output: %s", output)

	_, err = cli.run("profile", "create", "--name", "Alice", "--region", "na-east")
	require.NoError(t, err)

	output, err = cli.run("games", "create", "--name", "Counter-Strike 2", "--category", "FPS")
	require.NoError(t, err, "output: %s", output)

	var game gameResponse
	require.NoError(t, json.Unmarshal([]byte(output), &game))

	// Post to the board
	output, err = cli.run("lfg", "create", "--game", game.ID, "--title", "Premier stack, need 2", "--skill", "gold", "--players", "2")
	require.NoError(t, err, "output: %s", output)

	var post lfgPostResponse
	require.NoError(t, json.Unmarshal([]byte(output), &post))
	assert.Equal(t, "na-east", post.Region)
	assert.Equal(t, 2, post.PlayersNeeded)

	// Post shows up in listings
	output, err = cli.run("lfg", "list", "--game", game.ID)
	require.NoError(t, err, "output: %s", output)
	assert.Contains(t, output, "Premier stack, need 2")

	// Delete it
	_, err = cli.run("lfg", "delete", "--post", post.ID)
	require.NoError(t, err)

	output, err = cli.run("lfg", "mine")
	require.NoError(t, err, "output: %s", output)
	assert.NotContains(t, output, post.ID)
}

func TestCLI_Unauthenticated(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// No token: protected commands fail
	output, err := cli.run("match", "list")
	assert.Error(t, err)
	assert.Contains(t, output, "UNAUTHORIZED")
}
