//go:build e2e

package sewa_test

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"testing"
	"time"

	"github.com/mysewa/sewa/pkg/sewasdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Helpers for the sewa end-to-end tests. The service runs in a container
 * with SMTP disabled, so mail lands in the container log and PINs are read
 * back from there.
 */

const (
	testImageName = "sewa-test:latest"
	jwtSecret     = "e2e-secret-e2e-secret-e2e-secret-0001"
)

// TestMain builds the Docker image once before all tests and removes it
// afterwards.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building sewa Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up sewa Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	cmd := exec.CommandContext(context.Background(), "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/sewa/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	cmd := exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName)
	_ = cmd.Run()
}

type serviceContainer struct {
	testcontainers.Container
	BaseURL string
}

// setupSewaContainer starts the service with relaxed rate limits. Pass
// extra env to override any setting.
func setupSewaContainer(t *testing.T, env map[string]string) *serviceContainer {
	t.Helper()
	ctx := context.Background()

	vars := map[string]string{
		"SEWA_ENV":                       "test",
		"SEWA_LOG_LEVEL":                 "info",
		"SEWA_LOG_FORMAT":                "json",
		"SEWA_JWT_SECRET":                jwtSecret,
		"SEWA_FRONTEND_BASE_URL":         "https://app.mysewa.test",
		"SEWA_RATELIMIT_STRICT_REQUESTS": "1000",
		"SEWA_RATELIMIT_STRICT_BURST":    "1000",
		"SEWA_RATELIMIT_ROUTE_REQUESTS":  "1000",
		"SEWA_RATELIMIT_ROUTE_BURST":     "1000",
	}
	for k, v := range env {
		vars[k] = v
	}

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env:          vars,
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	return &serviceContainer{
		Container: container,
		BaseURL:   fmt.Sprintf("http://%s:%s", host, mappedPort.Port()),
	}
}

var pinPattern = regexp.MustCompile(`PIN is:\s+(\d{6})`)

// latestPIN scans the container log for the newest PIN mailed to email.
func (c *serviceContainer) latestPIN(ctx context.Context, email string) (string, error) {
	logs, err := c.Logs(ctx)
	if err != nil {
		return "", err
	}
	defer logs.Close()

	var pin string
	scanner := bufio.NewScanner(logs)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		start := 0
		for start < len(line) && line[start] != '{' {
			start++ // docker log stream headers
		}

		var entry struct {
			Msg  string `json:"msg"`
			To   string `json:"to"`
			Body string `json:"body"`
		}
		if json.Unmarshal(line[start:], &entry) != nil {
			continue
		}
		if entry.Msg == "mail (log only)" && entry.To == email {
			if m := pinPattern.FindStringSubmatch(entry.Body); m != nil {
				pin = m[1]
			}
		}
	}
	return pin, scanner.Err()
}

// login requests a PIN for email, reads it from the log and verifies it.
func login(t *testing.T, c *serviceContainer, client *sewasdk.Client, req sewasdk.PinRequest) *sewasdk.Session {
	t.Helper()
	ctx := t.Context()

	before, err := c.latestPIN(ctx, req.Email)
	require.NoError(t, err)

	require.NoError(t, client.RequestPin(ctx, req))

	var pin string
	require.Eventually(t, func() bool {
		pin, err = c.latestPIN(ctx, req.Email)
		return err == nil && pin != "" && pin != before
	}, 10*time.Second, 200*time.Millisecond, "PIN mail for %s never logged", req.Email)

	session, err := client.VerifyPin(ctx, sewasdk.VerifyPinRequest{Email: req.Email, PIN: pin})
	require.NoError(t, err)
	require.NotNil(t, session)
	return session
}

func assertHealthy(t *testing.T, health *sewasdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}

func terms(rent int64) sewasdk.LeaseTerms {
	start := time.Now().UTC().AddDate(0, 0, 7)
	return sewasdk.LeaseTerms{
		StartDate:   start.Format(sewasdk.DateLayout),
		EndDate:     start.AddDate(1, 0, 0).Format(sewasdk.DateLayout),
		MonthlyRent: rent,
	}
}
