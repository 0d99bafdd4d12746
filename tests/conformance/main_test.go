package conformance_test

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"
)

var serverURL string

// Tokens the test server is started with. Anonymous requests act as viewers.
const (
	editorToken = "conformance-editor"
	adminToken  = "conformance-admin"
)

func TestMain(m *testing.M) {
	os.Exit(testMain(m))
}

func fail(format string, args ...any) int {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	return 1
}

func testMain(m *testing.M) int {
	tmpDir, err := os.MkdirTemp("", "greenroom-conformance-*")
	if err != nil {
		return fail("create tmpdir: %v", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	binPath := filepath.Join(tmpDir, "greenroom")

	build := exec.Command("go", "build", "-o", binPath, "./cmd/greenroom")
	build.Dir = findModuleRoot()
	build.Stdout = os.Stdout
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		return fail("build binary: %v", err)
	}

	port, err := freePort()
	if err != nil {
		return fail("find free port: %v", err)
	}
	serverURL = fmt.Sprintf("http://localhost:%d", port)

	// Both tokens are set so the suite exercises the real role checks; an
	// open-mode server would wave everything through as admin.
	cmd := exec.Command(binPath)
	cmd.Env = append(os.Environ(),
		fmt.Sprintf("GREENROOM_ADDR=:%d", port),
		"GREENROOM_DB=:memory:",
		"GREENROOM_AUTH_TOKEN="+editorToken,
		"GREENROOM_ADMIN_TOKEN="+adminToken,
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return fail("start server: %v", err)
	}

	if err := waitForServer(serverURL, 5*time.Second); err != nil {
		_ = cmd.Process.Kill()
		return fail("server not ready: %v", err)
	}

	code := m.Run()

	_ = cmd.Process.Kill()
	_ = cmd.Wait()

	return code
}

// freePort returns a random available TCP port.
func freePort() (int, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, err
	}
	tcpAddr, ok := l.Addr().(*net.TCPAddr)
	_ = l.Close()
	if !ok {
		return 0, fmt.Errorf("expected *net.TCPAddr, got %T", l.Addr())
	}
	return tcpAddr.Port, nil
}

// waitForServer polls the health endpoint until it answers 200. A server
// that accepts connections but is still migrating does not count as ready.
func waitForServer(baseURL string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	client := &http.Client{Timeout: 500 * time.Millisecond}
	for time.Now().Before(deadline) {
		resp, err := client.Get(baseURL + "/healthz")
		if err == nil {
			ready := resp.StatusCode == http.StatusOK
			_ = resp.Body.Close()
			if ready {
				return nil
			}
		}
		time.Sleep(50 * time.Millisecond)
	}
	return fmt.Errorf("server at %s did not become ready within %s", baseURL, timeout)
}

// findModuleRoot walks up from the working directory until it sees go.mod.
func findModuleRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "."
		}
		dir = parent
	}
}
