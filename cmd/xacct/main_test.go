package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zalando/go-keyring"

	"github.com/zx06/xacct/internal/app"
	"github.com/zx06/xacct/internal/errors"
	"github.com/zx06/xacct/internal/output"
	"github.com/zx06/xacct/internal/prefs"
)

// cliEnv 为一次测试准备隔离的 keyring、HOME 与偏好文件。
func cliEnv(t *testing.T) string {
	t.Helper()
	keyring.MockInit()

	prev := GlobalConfig
	t.Cleanup(func() { GlobalConfig = prev })

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XACCT_SERVICE", "")
	t.Setenv("XACCT_FORMAT", "")
	t.Setenv("XACCT_LOG_LEVEL", "")
	prefsPath := filepath.Join(home, "prefs.yaml")
	t.Setenv("XACCT_PREFS", prefsPath)
	return prefsPath
}

// runCLI 执行一次命令，返回退出码与解析后的 JSON 信封。
func runCLI(t *testing.T, stdin string, args ...string) (int, map[string]any) {
	t.Helper()
	GlobalConfig = &Config{}

	var out, errOut bytes.Buffer
	w := output.New(&out, &errOut)
	a := app.New("test", "abc123", "today")
	code := execute(&a, &w, strings.NewReader(stdin), append(args, "--format", "json"))

	var resp map[string]any
	if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse JSON: %v\noutput: %s\nstderr: %s", err, out.String(), errOut.String())
	}
	return code, resp
}

func errorCode(resp map[string]any) string {
	e, _ := resp["error"].(map[string]any)
	code, _ := e["code"].(string)
	return code
}

func TestMain_VersionCommand(t *testing.T) {
	cliEnv(t)
	code, resp := runCLI(t, "", "version")
	if code != 0 {
		t.Fatalf("exit=%d resp=%v", code, resp)
	}
	data, ok := resp["data"].(map[string]any)
	if !ok {
		t.Fatal("expected data map")
	}
	if data["version"] != "test" || data["commit"] != "abc123" {
		t.Errorf("unexpected version data: %v", data)
	}
	if v, _ := resp["schema_version"].(float64); v != 1 {
		t.Errorf("expected schema_version=1, got %v", v)
	}
}

func TestMain_ManifestCommand(t *testing.T) {
	cliEnv(t)
	code, resp := runCLI(t, "", "manifest")
	if code != 0 {
		t.Fatalf("exit=%d resp=%v", code, resp)
	}
	data, _ := resp["data"].(map[string]any)
	commands, _ := data["commands"].([]any)
	if len(commands) == 0 {
		t.Fatal("expected commands in manifest")
	}
	codes, _ := data["error_codes"].([]any)
	if len(codes) != len(errors.AllCodes()) {
		t.Errorf("error_codes=%d want %d", len(codes), len(errors.AllCodes()))
	}
}

func TestMain_ConfigShow(t *testing.T) {
	prefsPath := cliEnv(t)
	code, resp := runCLI(t, "", "config", "show", "--service", "work")
	if code != 0 {
		t.Fatalf("exit=%d resp=%v", code, resp)
	}
	data, _ := resp["data"].(map[string]any)
	if data["service"] != "work" {
		t.Errorf("service=%v", data["service"])
	}
	if data["preferences"] != prefsPath {
		t.Errorf("preferences=%v want %s", data["preferences"], prefsPath)
	}
	if data["codec"] != "json" || data["list_policy"] != "skip" {
		t.Errorf("unexpected defaults: %v", data)
	}
}

func TestMain_AccountLifecycle(t *testing.T) {
	prefsPath := cliEnv(t)

	code, resp := runCLI(t, "pw-a\n", "account", "add", "--id", "alice", "--username", "alice@example.com", "--server", "https://a.example.com", "--secret-stdin")
	if code != 0 {
		t.Fatalf("add alice: exit=%d resp=%v", code, resp)
	}
	data, _ := resp["data"].(map[string]any)
	if _, leaked := data["secret"]; leaked {
		t.Fatal("secret must not be printed")
	}

	code, resp = runCLI(t, "pw-b\n", "account", "add", "--username", "bob", "--secret-stdin")
	if code != 0 {
		t.Fatalf("add bob: exit=%d resp=%v", code, resp)
	}
	data, _ = resp["data"].(map[string]any)
	bobID, _ := data["id"].(string)
	if bobID == "" {
		t.Fatal("expected generated id for bob")
	}

	code, resp = runCLI(t, "", "login", "alice")
	if code != 0 {
		t.Fatalf("login: exit=%d resp=%v", code, resp)
	}
	id, ok, err := prefs.NewFileStore(prefsPath).Get("current_account.xacct")
	if err != nil || !ok || id != "alice" {
		t.Fatalf("current pointer=%q ok=%v err=%v", id, ok, err)
	}

	code, resp = runCLI(t, "", "account", "list")
	if code != 0 {
		t.Fatalf("list: exit=%d resp=%v", code, resp)
	}
	data, _ = resp["data"].(map[string]any)
	accounts, _ := data["accounts"].([]any)
	if len(accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %v", data)
	}
	for _, a := range accounts {
		m := a.(map[string]any)
		if want := m["id"] == "alice"; m["current"] != want {
			t.Errorf("account %v current=%v", m["id"], m["current"])
		}
	}

	code, resp = runCLI(t, "", "whoami")
	if code != 0 {
		t.Fatalf("whoami: exit=%d resp=%v", code, resp)
	}
	data, _ = resp["data"].(map[string]any)
	acct, _ := data["account"].(map[string]any)
	if acct["id"] != "alice" || acct["username"] != "alice@example.com" {
		t.Fatalf("whoami account=%v", acct)
	}

	code, resp = runCLI(t, "", "account", "show", bobID)
	if code != 0 {
		t.Fatalf("show: exit=%d resp=%v", code, resp)
	}
	data, _ = resp["data"].(map[string]any)
	if data["username"] != "bob" || data["current"] != false {
		t.Fatalf("show bob=%v", data)
	}

	code, _ = runCLI(t, "", "logout")
	if code != 0 {
		t.Fatalf("logout exit=%d", code)
	}
	code, resp = runCLI(t, "", "whoami")
	data, _ = resp["data"].(map[string]any)
	if code != 0 || data["account"] != nil {
		t.Fatalf("whoami after logout: exit=%d data=%v", code, data)
	}

	code, _ = runCLI(t, "", "account", "remove", "alice")
	if code != 0 {
		t.Fatalf("remove exit=%d", code)
	}
	code, _ = runCLI(t, "", "account", "remove", "alice")
	if code != 0 {
		t.Fatalf("second remove should succeed, exit=%d", code)
	}

	code, _ = runCLI(t, "", "account", "remove", "--all")
	if code != 0 {
		t.Fatalf("remove --all exit=%d", code)
	}
	_, resp = runCLI(t, "", "account", "list")
	data, _ = resp["data"].(map[string]any)
	if accounts, _ := data["accounts"].([]any); len(accounts) != 0 {
		t.Fatalf("expected empty list, got %v", accounts)
	}
}

func TestMain_WhoamiStalePointer(t *testing.T) {
	cliEnv(t)
	if code, resp := runCLI(t, "pw\n", "account", "add", "--id", "alice", "--username", "a", "--secret-stdin"); code != 0 {
		t.Fatalf("add: exit=%d resp=%v", code, resp)
	}
	if code, _ := runCLI(t, "", "login", "alice"); code != 0 {
		t.Fatalf("login exit=%d", code)
	}
	if code, _ := runCLI(t, "", "account", "remove", "alice"); code != 0 {
		t.Fatalf("remove exit=%d", code)
	}

	code, resp := runCLI(t, "", "whoami")
	if code != int(errors.ExitNotFound) {
		t.Fatalf("expected exit %d, got %d", errors.ExitNotFound, code)
	}
	if errorCode(resp) != string(errors.CodeAccountNotFound) {
		t.Fatalf("error code=%q", errorCode(resp))
	}
}

func TestMain_ServicesAreIsolated(t *testing.T) {
	cliEnv(t)
	if code, _ := runCLI(t, "pw\n", "account", "add", "--id", "alice", "--username", "a", "--secret-stdin", "-s", "work"); code != 0 {
		t.Fatal("add to work failed")
	}
	if code, _ := runCLI(t, "pw\n", "account", "add", "--id", "alice", "--username", "a", "--secret-stdin", "-s", "home"); code != 0 {
		t.Fatal("add to home failed")
	}
	if code, _ := runCLI(t, "", "account", "remove", "--all", "-s", "work"); code != 0 {
		t.Fatal("remove --all failed")
	}

	_, resp := runCLI(t, "", "account", "list", "-s", "home")
	data, _ := resp["data"].(map[string]any)
	if accounts, _ := data["accounts"].([]any); len(accounts) != 1 {
		t.Fatalf("home namespace should keep its account, got %v", data)
	}
}

func TestMain_Errors(t *testing.T) {
	tests := []struct {
		name     string
		stdin    string
		args     []string
		wantExit errors.ExitCode
		wantCode errors.Code
	}{
		{name: "login unknown", args: []string{"login", "ghost"}, wantExit: errors.ExitNotFound, wantCode: errors.CodeAccountNotFound},
		{name: "show unknown", args: []string{"account", "show", "ghost"}, wantExit: errors.ExitNotFound, wantCode: errors.CodeAccountNotFound},
		{name: "add without username", stdin: "pw\n", args: []string{"account", "add", "--secret-stdin"}, wantExit: errors.ExitConfig, wantCode: errors.CodeCfgInvalid},
		{name: "add reserved id", stdin: "pw\n", args: []string{"account", "add", "--id", "xacct.index", "--username", "x", "--secret-stdin"}, wantExit: errors.ExitSerialization, wantCode: errors.CodeSerialization},
		{name: "remove without target", args: []string{"account", "remove"}, wantExit: errors.ExitConfig, wantCode: errors.CodeCfgInvalid},
		{name: "remove id and all", args: []string{"account", "remove", "alice", "--all"}, wantExit: errors.ExitConfig, wantCode: errors.CodeCfgInvalid},
		{name: "missing config file", args: []string{"whoami", "--config", "/nonexistent/xacct.yaml"}, wantExit: errors.ExitConfig, wantCode: errors.CodeCfgNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cliEnv(t)
			code, resp := runCLI(t, tt.stdin, tt.args...)
			if code != int(tt.wantExit) {
				t.Fatalf("exit=%d want %d resp=%v", code, tt.wantExit, resp)
			}
			if ok, _ := resp["ok"].(bool); ok {
				t.Fatal("expected ok=false")
			}
			if errorCode(resp) != string(tt.wantCode) {
				t.Fatalf("error code=%q want %q", errorCode(resp), tt.wantCode)
			}
		})
	}
}

func TestMain_ConfigFile(t *testing.T) {
	cliEnv(t)
	t.Setenv("XACCT_PREFS", "")
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "xacct.yaml")
	content := "service: team\ncodec: yaml\npreferences: state/prefs.yaml\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	if code, resp := runCLI(t, "pw\n", "account", "add", "--id", "alice", "--username", "a", "--secret-stdin", "--config", cfgPath); code != 0 {
		t.Fatalf("add: exit=%d resp=%v", code, resp)
	}
	if code, _ := runCLI(t, "", "login", "alice", "--config", cfgPath); code != 0 {
		t.Fatal("login failed")
	}

	id, ok, err := prefs.NewFileStore(filepath.Join(dir, "state", "prefs.yaml")).Get("current_account.team")
	if err != nil || !ok || id != "alice" {
		t.Fatalf("pointer=%q ok=%v err=%v", id, ok, err)
	}
	raw, err := keyring.Get("team", "alice")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(raw, "username: a") {
		t.Fatalf("expected yaml payload, got %q", raw)
	}
}
