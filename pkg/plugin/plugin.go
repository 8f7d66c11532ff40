// Package plugin implements the single-shot JSON protocol used by plugin
// hosts: one request is read in full from the input stream, one response is
// written to the output stream, and the process is done. User configuration
// arrives through environment variables injected by the host.
package plugin

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/jlrickert/splice/pkg/generator"
	"github.com/jlrickert/splice/pkg/registry"
)

// EnvBatchHeader is the environment variable the host injects to put a
// custom comment header above rendered batches. The host forwards user
// configuration keys as-is, hence the lowercase name.
const EnvBatchHeader = "batch_header"

// batchHeaderFromEnv returns the host-configured header as a comment line,
// or "" when the host injected none.
func batchHeaderFromEnv() string {
	header := strings.TrimSpace(os.Getenv(EnvBatchHeader))
	if header == "" {
		return ""
	}
	if !strings.HasPrefix(header, "//") {
		header = "// " + header
	}
	return header
}

// Request is the host's single JSON message. Command falls back to
// tool_command for hosts that use the older field name.
type Request struct {
	Command     string `json:"command,omitempty"`
	ToolCommand string `json:"tool_command,omitempty"`

	// Text is the document payload for the normalize command.
	Text string `json:"text,omitempty"`

	// Records is the payload for the render command.
	Records []RecordPayload `json:"records,omitempty"`
}

// RecordPayload mirrors registry.Record on the wire.
type RecordPayload struct {
	ID     string         `json:"id"`
	Fields []FieldPayload `json:"fields"`
}

// FieldPayload is one record field; List takes precedence when non-nil.
type FieldPayload struct {
	Name  string   `json:"name"`
	Value string   `json:"value,omitempty"`
	List  []string `json:"list,omitempty"`
}

// Response is the host-facing result envelope.
type Response struct {
	Status       string `json:"status"`
	Result       string `json:"result,omitempty"`
	MessageForAI string `json:"messageForAI,omitempty"`
	PluginError  string `json:"plugin_error,omitempty"`
}

const (
	statusSuccess = "success"
	statusError   = "error"
)

// HandlerFunc serves one command.
type HandlerFunc func(req Request) (result, messageForAI string, err error)

// Handler reads one request, dispatches it, and writes one response.
type Handler struct {
	Name    string
	Version string

	in     io.Reader
	out    io.Writer
	logger *slog.Logger

	handlers map[string]HandlerFunc
}

// NewHandler builds a Handler with the built-in command set registered.
func NewHandler(name, version string, in io.Reader, out io.Writer, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	h := &Handler{
		Name:     name,
		Version:  version,
		in:       in,
		out:      out,
		logger:   logger,
		handlers: make(map[string]HandlerFunc),
	}
	h.Register("render", h.render)
	h.Register("normalize", h.normalize)
	h.Register("info", h.info)
	return h
}

// Register installs fn for command. Later registrations replace earlier
// ones.
func (h *Handler) Register(command string, fn HandlerFunc) {
	h.handlers[command] = fn
}

// Run executes one request/response exchange. Protocol-level failures are
// reported to the host as an error response; Run itself only fails when the
// response cannot be written.
func (h *Handler) Run() error {
	input, err := io.ReadAll(h.in)
	if err != nil {
		return h.respondError(fmt.Sprintf("unable to read input: %v", err))
	}
	if len(strings.TrimSpace(string(input))) == 0 {
		return h.respondError("no input received")
	}

	var req Request
	if err := json.Unmarshal(input, &req); err != nil {
		return h.respondError(fmt.Sprintf("invalid JSON input: %v", err))
	}

	command := req.Command
	if command == "" {
		command = req.ToolCommand
	}
	fn, ok := h.handlers[command]
	if !ok {
		h.logger.Warn("plugin.unknown_command", "command", command)
		return h.respondError(fmt.Sprintf("unknown command: %s", command))
	}

	h.logger.Debug("plugin.request", "command", command)
	result, messageForAI, err := fn(req)
	if err != nil {
		h.logger.Error("plugin.command_failed", "command", command, "error", err.Error())
		return h.respondError(err.Error())
	}
	return h.respond(Response{
		Status:       statusSuccess,
		Result:       result,
		MessageForAI: messageForAI,
	})
}

func (h *Handler) render(req Request) (string, string, error) {
	if len(req.Records) == 0 {
		return "", "", fmt.Errorf("render: no records provided")
	}
	records := make([]registry.Record, 0, len(req.Records))
	for _, rp := range req.Records {
		rec := registry.Record{ID: rp.ID}
		for _, fp := range rp.Fields {
			rec.Fields = append(rec.Fields, registry.Field{
				Name: fp.Name,
				Str:  fp.Value,
				List: fp.List,
			})
		}
		records = append(records, rec)
	}
	batch, err := registry.RenderAll(records)
	if err != nil {
		return "", "", err
	}
	if header := batchHeaderFromEnv(); header != "" {
		batch = header + "\n" + batch
	}
	msg := fmt.Sprintf("rendered %d entry block(s)", len(records))
	return batch, msg, nil
}

func (h *Handler) normalize(req Request) (string, string, error) {
	normalized, count := registry.NormalizeKeys(req.Text)
	return normalized, fmt.Sprintf("normalized %d key(s)", count), nil
}

func (h *Handler) info(Request) (string, string, error) {
	info := map[string]any{
		"plugin":           h.Name,
		"version":          h.Version,
		"commands":         h.commandNames(),
		"categories":       len(generator.DefaultCategories()),
		"env_batch_header": batchHeaderFromEnv(),
	}
	b, err := json.Marshal(info)
	if err != nil {
		return "", "", err
	}
	return string(b), "plugin info", nil
}

func (h *Handler) commandNames() []string {
	names := make([]string, 0, len(h.handlers))
	for name := range h.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (h *Handler) respond(resp Response) error {
	enc := json.NewEncoder(h.out)
	enc.SetEscapeHTML(false)
	return enc.Encode(resp)
}

func (h *Handler) respondError(msg string) error {
	return h.respond(Response{Status: statusError, PluginError: msg})
}
