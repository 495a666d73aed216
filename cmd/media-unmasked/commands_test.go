package main

import (
	"encoding/json"
	"os"
	"strings"
	"testing"
)

func TestHealth(t *testing.T) {
	fs := setupCLITest(t)

	out, _, err := run(t, "health")
	if err != nil {
		t.Fatalf("health failed: %v", err)
	}
	if !strings.Contains(out, "[OK]") || !strings.Contains(out, fs.URL) {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestHealth_Unreachable(t *testing.T) {
	fs := setupCLITest(t)
	fs.Close()

	_, errOut, err := run(t, "health")
	if err == nil {
		t.Fatal("expected an error when the service is down")
	}
	if !strings.Contains(errOut, "[ERROR]") {
		t.Errorf("expected an error line on stderr, got %q", errOut)
	}
}

func TestConfigurePath(t *testing.T) {
	setupCLITest(t)

	out, _, err := run(t, "configure", "--path")
	if err != nil {
		t.Fatalf("configure --path failed: %v", err)
	}
	if strings.TrimSpace(out) != os.Getenv("MEDIA_UNMASKED_CONFIG") {
		t.Errorf("expected %s, got %q", os.Getenv("MEDIA_UNMASKED_CONFIG"), out)
	}
}

func TestConfigureInit(t *testing.T) {
	setupCLITest(t)
	path := os.Getenv("MEDIA_UNMASKED_CONFIG")

	if _, _, err := run(t, "configure", "--init"); err != nil {
		t.Fatalf("configure --init failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("example config not written: %v", err)
	}
	if !strings.Contains(string(data), "environment:") {
		t.Errorf("unexpected example config:\n%s", data)
	}

	// a second run must not overwrite edits
	if err := os.WriteFile(path, []byte("theme: nord\n"), 0600); err != nil {
		t.Fatal(err)
	}
	resetFlags(configureCmd, "init")
	if _, _, err := run(t, "configure", "--init"); err != nil {
		t.Fatalf("configure --init failed: %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "theme: nord\n" {
		t.Errorf("existing config was overwritten: %q", data)
	}
}

func TestVersionOutput_ContainsFields(t *testing.T) {
	fs := setupCLITest(t)
	setBuildStamp(t, "abc1234", "2026-10-19T08:00:00Z")

	out, _, err := run(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	for _, field := range []string{"media-unmasked dev (abc1234, built 2026-10-19T08:00:00Z)", "service: " + fs.URL + " (production)"} {
		if !strings.Contains(out, field) {
			t.Errorf("version output missing %q. Got:\n%s", field, out)
		}
	}
}

func TestVersionShort(t *testing.T) {
	setupCLITest(t)
	setVersion("1.2.3")
	t.Cleanup(func() { setVersion("dev") })

	out, _, err := run(t, "version", "--short")
	if err != nil {
		t.Fatalf("version --short failed: %v", err)
	}
	if strings.TrimSpace(out) != "1.2.3" {
		t.Errorf("expected 1.2.3, got %q", out)
	}
}

func TestVersionJSON(t *testing.T) {
	fs := setupCLITest(t)

	out, _, err := run(t, "version", "--json")
	if err != nil {
		t.Fatalf("version --json failed: %v", err)
	}

	var result map[string]string
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("invalid JSON output: %v\nGot: %s", err, out)
	}
	for _, key := range []string{"version", "commit", "built", "goVersion", "platform", "environment", "service"} {
		if _, ok := result[key]; !ok {
			t.Errorf("JSON output missing key %q", key)
		}
	}
	if result["service"] != fs.URL {
		t.Errorf("expected service %s, got %s", fs.URL, result["service"])
	}
}

// setBuildStamp overrides the ldflags build stamp for one test
func setBuildStamp(t *testing.T, c, built string) {
	t.Helper()
	prevCommit, prevBuilt := commit, buildTime
	commit, buildTime = c, built
	t.Cleanup(func() { commit, buildTime = prevCommit, prevBuilt })
}
