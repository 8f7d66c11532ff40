package plugin_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/jlrickert/splice/pkg/plugin"
	"github.com/stretchr/testify/require"
)

func runOnce(t *testing.T, input string) plugin.Response {
	t.Helper()
	var out bytes.Buffer
	h := plugin.NewHandler("splice", "test", strings.NewReader(input), &out, nil)
	require.NoError(t, h.Run())

	var resp plugin.Response
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	return resp
}

func TestHandler_RenderCommand(t *testing.T) {
	t.Parallel()

	resp := runOnce(t, `{
		"command": "render",
		"records": [
			{"id": "b", "fields": [
				{"name": "id", "value": "b"},
				{"name": "tags", "list": ["x", "y"]}
			]}
		]
	}`)
	require.Equal(t, "success", resp.Status)
	require.Contains(t, resp.Result, "  b: {")
	require.Contains(t, resp.Result, "tags: ['x', 'y']")
	require.Equal(t, "rendered 1 entry block(s)", resp.MessageForAI)
}

func TestHandler_NormalizeCommand(t *testing.T) {
	t.Parallel()

	req, err := json.Marshal(map[string]any{
		"command": "normalize",
		"text":    "  st-patricks: {\n  fine: {\n",
	})
	require.NoError(t, err)

	resp := runOnce(t, string(req))
	require.Equal(t, "success", resp.Status)
	require.Contains(t, resp.Result, "  'st-patricks': {")
	require.Contains(t, resp.Result, "  fine: {")
	require.Equal(t, "normalized 1 key(s)", resp.MessageForAI)
}

func TestHandler_InfoCommand(t *testing.T) {
	t.Parallel()

	resp := runOnce(t, `{"command": "info"}`)
	require.Equal(t, "success", resp.Status)

	var info map[string]any
	require.NoError(t, json.Unmarshal([]byte(resp.Result), &info))
	require.Equal(t, "splice", info["plugin"])
	require.Equal(t, "test", info["version"])
}

func TestHandler_RenderUsesHostHeaderEnv(t *testing.T) {
	t.Setenv(plugin.EnvBatchHeader, "Team presets")

	resp := runOnce(t, `{
		"command": "render",
		"records": [{"id": "b", "fields": [{"name": "id", "value": "b"}]}]
	}`)
	require.Equal(t, "success", resp.Status)
	require.True(t, strings.HasPrefix(resp.Result, "// Team presets\n"),
		"unexpected result: %q", resp.Result)
	require.Contains(t, resp.Result, "  b: {")
}

func TestHandler_InfoReportsHostHeaderEnv(t *testing.T) {
	t.Setenv(plugin.EnvBatchHeader, "// Custom header")

	resp := runOnce(t, `{"command": "info"}`)
	require.Equal(t, "success", resp.Status)

	var info map[string]any
	require.NoError(t, json.Unmarshal([]byte(resp.Result), &info))
	require.Equal(t, "// Custom header", info["env_batch_header"])
}

func TestHandler_ToolCommandFallback(t *testing.T) {
	t.Parallel()

	resp := runOnce(t, `{"tool_command": "info"}`)
	require.Equal(t, "success", resp.Status)
}

func TestHandler_UnknownCommand(t *testing.T) {
	t.Parallel()

	resp := runOnce(t, `{"command": "bogus"}`)
	require.Equal(t, "error", resp.Status)
	require.Contains(t, resp.PluginError, "unknown command: bogus")
}

func TestHandler_EmptyInput(t *testing.T) {
	t.Parallel()

	resp := runOnce(t, "   \n")
	require.Equal(t, "error", resp.Status)
	require.Contains(t, resp.PluginError, "no input received")
}

func TestHandler_InvalidJSON(t *testing.T) {
	t.Parallel()

	resp := runOnce(t, "{nope")
	require.Equal(t, "error", resp.Status)
	require.Contains(t, resp.PluginError, "invalid JSON input")
}

func TestHandler_RenderMalformedRecordReportsError(t *testing.T) {
	t.Parallel()

	resp := runOnce(t, `{"command": "render", "records": [{"id": ""}]}`)
	require.Equal(t, "error", resp.Status)
	require.Contains(t, resp.PluginError, "malformed record")
}

func TestHandler_CustomRegistration(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	h := plugin.NewHandler("splice", "test", strings.NewReader(`{"command": "echo", "text": "hi"}`), &out, nil)
	h.Register("echo", func(req plugin.Request) (string, string, error) {
		return "Echo: " + req.Text, "", nil
	})
	require.NoError(t, h.Run())

	var resp plugin.Response
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	require.Equal(t, "success", resp.Status)
	require.Equal(t, "Echo: hi", resp.Result)
}
