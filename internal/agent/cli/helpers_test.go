package cli_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-fintracker/internal/agent/cli"
)

// run выполняет root-команду с временным файлом учётных данных
func run(t *testing.T, credsPath string, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCmd("test", "today")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--credentials", credsPath}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func tempCreds(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "credentials.json")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// stubPassword подменяет чтение пароля из терминала
func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := cli.ReadPassword
	cli.ReadPassword = func(_ *cobra.Command, _ bool) (string, error) {
		require.NotEmpty(t, pw)
		return pw, nil
	}
	t.Cleanup(func() { cli.ReadPassword = orig })
}
