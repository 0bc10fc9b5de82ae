package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	code := Run(context.Background(), args, strings.NewReader(""), stdout, stderr)
	return code, stdout.String(), stderr.String()
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunNoCommand(t *testing.T) {
	code, _, stderr := run(t)
	if code != exitCommandError {
		t.Errorf("expected exit code %d, got %d", exitCommandError, code)
	}
	if !strings.Contains(stderr, "no command given") {
		t.Errorf("expected usage hint in stderr, got: %s", stderr)
	}
}

func TestRunHelp(t *testing.T) {
	code, _, stderr := run(t, "-h")
	if code != exitSuccess {
		t.Errorf("expected exit code %d, got %d", exitSuccess, code)
	}
	if !strings.Contains(stderr, "resolve") {
		t.Errorf("expected subcommands in usage, got: %s", stderr)
	}
}

func TestRunList(t *testing.T) {
	code, stdout, _ := run(t, "list")
	if code != exitSuccess {
		t.Fatalf("expected exit code %d, got %d", exitSuccess, code)
	}
	for _, id := range []string{"sam3a4c", "sam3x8e", "sam3x8h"} {
		if !strings.Contains(stdout, id) {
			t.Errorf("expected %s in output, got: %s", id, stdout)
		}
	}
}

func TestRunListJSON(t *testing.T) {
	code, stdout, _ := run(t, "list", "-json")
	if code != exitSuccess {
		t.Fatalf("expected exit code %d, got %d", exitSuccess, code)
	}
	var out []VariantOutput
	if err := json.Unmarshal([]byte(stdout), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout)
	}
	if len(out) != 7 {
		t.Errorf("expected 7 variants, got %d", len(out))
	}
}

func TestRunDescribe(t *testing.T) {
	code, stdout, stderr := run(t, "describe", "sam3x8e")
	if code != exitSuccess {
		t.Fatalf("expected exit code %d, got %d (stderr: %s)", exitSuccess, code, stderr)
	}
	if !strings.Contains(stdout, "{GenerationB, PackageClass2}") {
		t.Errorf("expected tags in output, got: %s", stdout)
	}
	if !strings.Contains(stdout, "gpio/piocd") {
		t.Errorf("expected facade modules in output, got: %s", stdout)
	}

	code, _, stderr = run(t, "describe", "nonexistent-part")
	if code != exitValidation {
		t.Errorf("expected exit code %d, got %d", exitValidation, code)
	}
	if !strings.Contains(stderr, "unknown variant") {
		t.Errorf("expected unknown variant error, got: %s", stderr)
	}
}

func TestRunResolve(t *testing.T) {
	code, stdout, stderr := run(t, "resolve", "sam3x8e+rt")
	if code != exitSuccess {
		t.Fatalf("expected exit code %d, got %d (stderr: %s)", exitSuccess, code, stderr)
	}
	if !strings.Contains(stdout, "{GenerationB, PackageClass2, RuntimePresence}") {
		t.Errorf("expected activated tags, got: %s", stdout)
	}
	if !strings.Contains(stdout, "-tags=sam3x8e,sam3x,sam3_e,rt") {
		t.Errorf("expected go flags, got: %s", stdout)
	}
}

func TestRunResolveJSON(t *testing.T) {
	code, stdout, _ := run(t, "resolve", "-rt", "-json", "sam3x4e")
	if code != exitSuccess {
		t.Fatalf("expected exit code %d, got %d", exitSuccess, code)
	}
	var out ActivationOutput
	if err := json.Unmarshal([]byte(stdout), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout)
	}
	if !out.RuntimeShim || len(out.Packages) != 2 {
		t.Errorf("expected runtime shim and two packages, got %+v", out)
	}
}

func TestRunResolveFailures(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		code   int
		stderr string
	}{
		{"no selection", []string{"resolve"}, exitCommandError, "at least one selection"},
		{"bad selection", []string{"resolve", "sam3x8e+usb"}, exitCommandError, "invalid selection"},
		{"unknown variant", []string{"resolve", "nonexistent-part"}, exitValidation, "unknown variant"},
		{"runtime unsupported", []string{"resolve", "-rt", "sam3x8h"}, exitValidation, "runtime unsupported"},
		{"conflicting", []string{"resolve", "sam3x8e", "sam3a8c"}, exitValidation, "conflicting variants"},
		{"ledger without unit", []string{"resolve", "-ledger", "x.json", "sam3x8e"}, exitCommandError, "-unit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := run(t, tt.args...)
			if code != tt.code {
				t.Errorf("expected exit code %d, got %d", tt.code, code)
			}
			if !strings.Contains(stderr, tt.stderr) {
				t.Errorf("expected %q in stderr, got: %s", tt.stderr, stderr)
			}
		})
	}
}

func TestRunResolveLedger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")

	if code, _, stderr := run(t, "resolve", "-ledger", path, "-unit", "hal", "sam3x8e"); code != exitSuccess {
		t.Fatalf("expected exit code %d, got %d (stderr: %s)", exitSuccess, code, stderr)
	}
	if code, _, _ := run(t, "resolve", "-ledger", path, "-unit", "app", "sam3x8e"); code != exitSuccess {
		t.Errorf("same variant: expected exit code %d, got %d", exitSuccess, code)
	}
	code, _, stderr := run(t, "resolve", "-ledger", path, "-unit", "lib", "sam3a8c")
	if code != exitValidation {
		t.Errorf("second variant: expected exit code %d, got %d", exitValidation, code)
	}
	if !strings.Contains(stderr, "conflicting variants") {
		t.Errorf("expected conflict in stderr, got: %s", stderr)
	}
}

func TestRunCheck(t *testing.T) {
	code, stdout, _ := run(t, "check")
	if code != exitSuccess {
		t.Fatalf("expected exit code %d, got %d", exitSuccess, code)
	}
	if !strings.Contains(stdout, "OK: 7 variants, 11 rules") {
		t.Errorf("expected OK summary, got: %s", stdout)
	}
}

const brokenTable = `version: "1.0"
variants:
  - id: sam3x9z
    tags: [sam3a, sam3x, sam3_c]
    pins: 100
    peripherals: [PIOA, PIOB]
    pac: {name: atsam3x9z, import: example.com/atsam3x9z, runtime: true, entry: Reset}
`

func TestRunCheckBrokenTable(t *testing.T) {
	path := writeFile(t, "table.yaml", brokenTable)

	code, stdout, _ := run(t, "check", "-table", path)
	if code != exitValidation {
		t.Errorf("expected exit code %d, got %d", exitValidation, code)
	}
	if !strings.Contains(stdout, "GEN-002") {
		t.Errorf("expected GEN-002 violation, got: %s", stdout)
	}

	// The resolver refuses the same table.
	code, _, _ = run(t, "resolve", "-table", path, "sam3x9z")
	if code != exitValidation {
		t.Errorf("resolve: expected exit code %d, got %d", exitValidation, code)
	}
}

func TestRunCheckTableFromEnv(t *testing.T) {
	t.Setenv("SAM3HAL_TABLE", writeFile(t, "table.yaml", brokenTable))

	code, _, _ := run(t, "check")
	if code != exitValidation {
		t.Errorf("expected exit code %d, got %d", exitValidation, code)
	}
}

func TestRunBoard(t *testing.T) {
	code, stdout, stderr := run(t, "board", "arduino-due")
	if code != exitSuccess {
		t.Fatalf("expected exit code %d, got %d (stderr: %s)", exitSuccess, code, stderr)
	}
	for _, want := range []string{"Panic:       halt", "RuntimePresence", "-tags=board_arduino_due,sam3x8e,sam3x,sam3_e,rt"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected %q in output, got: %s", want, stdout)
		}
	}

	code, stdout, _ = run(t, "board")
	if code != exitSuccess || !strings.Contains(stdout, "sam3x-ek") {
		t.Errorf("board list: code %d, output: %s", code, stdout)
	}

	code, _, _ = run(t, "board", "arduino-uno")
	if code != exitCommandError {
		t.Errorf("unknown board: expected exit code %d, got %d", exitCommandError, code)
	}
}

func TestRunBoardProfilesFile(t *testing.T) {
	ok := writeFile(t, "boards.yaml", `boards:
  - name: due-minimal
    variant: sam3x8e
    runtime: true
    features: minimal
    panic: abort
    freestanding: true
`)
	code, stdout, stderr := run(t, "board", "-profiles", ok, "due-minimal")
	if code != exitSuccess {
		t.Fatalf("expected exit code %d, got %d (stderr: %s)", exitSuccess, code, stderr)
	}
	if strings.Contains(stdout, "RuntimePresence") {
		t.Errorf("minimal feature policy must drop the runtime, got: %s", stdout)
	}

	bad := writeFile(t, "bad.yaml", `boards:
  - name: bare
    variant: sam3x8e
    freestanding: true
`)
	code, _, stderr = run(t, "board", "-profiles", bad, "bare")
	if code != exitValidation {
		t.Errorf("expected exit code %d, got %d", exitValidation, code)
	}
	if !strings.Contains(stderr, "no panic strategy") {
		t.Errorf("expected NoPanicStrategy in stderr, got: %s", stderr)
	}
}

func TestRunGen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "boards")

	code, stdout, stderr := run(t, "gen", "-out", dir, "arduino-due")
	if code != exitSuccess {
		t.Fatalf("expected exit code %d, got %d (stderr: %s)", exitSuccess, code, stderr)
	}
	if !strings.Contains(stdout, "wrote board_arduino_due.go") {
		t.Errorf("expected written file list, got: %s", stdout)
	}

	data, err := os.ReadFile(filepath.Join(dir, "board_arduino_due.go"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "//go:build board_arduino_due && sam3x8e && sam3x && sam3_e && rt") {
		t.Errorf("unexpected build line in:\n%s", data)
	}
	if _, err := os.Stat(filepath.Join(dir, "board_none.go")); err != nil {
		t.Errorf("fallback file missing: %v", err)
	}

	code, _, _ = run(t, "gen")
	if code != exitCommandError {
		t.Errorf("missing -out: expected exit code %d, got %d", exitCommandError, code)
	}
}

func TestRunLog(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "events.cbor")

	if code, _, _ := run(t, "-log", logPath, "resolve", "sam3x8e+rt"); code != exitSuccess {
		t.Fatalf("resolve: expected exit code %d, got %d", exitSuccess, code)
	}
	if code, _, _ := run(t, "resolve", "-log", logPath, "nonexistent-part"); code != exitValidation {
		t.Fatalf("resolve: expected exit code %d, got %d", exitValidation, code)
	}

	code, stdout, stderr := run(t, "log", logPath)
	if code != exitSuccess {
		t.Fatalf("expected exit code %d, got %d (stderr: %s)", exitSuccess, code, stderr)
	}
	for _, want := range []string{"SELECTION", "ACTIVATION", "REJECTION", "kind=UnknownVariant"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected %q in output, got: %s", want, stdout)
		}
	}

	_, stdout, _ = run(t, "log", "-category", "activation", logPath)
	if strings.Count(strings.TrimSpace(stdout), "\n") != 0 {
		t.Errorf("expected exactly one activation event, got: %s", stdout)
	}
}

func TestRunConfigFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "events.cbor")
	cfg := writeFile(t, "sam3hal.conf", "log "+logPath+"\n")

	if code, _, stderr := run(t, "-config", cfg, "resolve", "sam3a8c"); code != exitSuccess {
		t.Fatalf("expected exit code %d, got %d (stderr: %s)", exitSuccess, code, stderr)
	}
	if _, err := os.Stat(logPath); err != nil {
		t.Errorf("event log not written: %v", err)
	}
}
