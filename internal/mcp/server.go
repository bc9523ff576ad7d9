// Package mcp implements the line-oriented JSON-RPC 2.0 server loop spoken
// on stdin/stdout. One frame per line; requests get exactly one response
// line, notifications get none; diagnostics go to the logger, never stdout.
package mcp

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"

	"cargomcp/internal/protocol"
	"cargomcp/internal/session"
	"cargomcp/internal/tools"
)

// Instructions is surfaced to the caller through initialize.
const Instructions = "Cargo operations for Rust projects.\n\n" +
	"Use set_working_directory to set the project directory first, then run cargo commands."

// Server drives the dispatcher over a stdio transport. The session state is
// injected so tests can point it at a temp directory.
type Server struct {
	state  *session.State
	reader *bufio.Scanner
	writer *bufio.Writer
	logger *log.Logger
}

// NewServer wires a server to the given streams. logger receives transport
// diagnostics and must not share the protocol output stream.
func NewServer(state *session.State, in io.Reader, out io.Writer, logger *log.Logger) *Server {
	scanner := bufio.NewScanner(in)
	// Tool outputs are small, but inbound frames can carry large passthrough
	// argument lists; give the scanner room beyond the 64K default.
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	return &Server{
		state:  state,
		reader: scanner,
		writer: bufio.NewWriter(out),
		logger: logger,
	}
}

// Run processes frames until stdin closes. Parse errors are logged and
// skipped; only a read or write failure ends the loop early.
func (s *Server) Run() error {
	for s.reader.Scan() {
		line := bytes.TrimSpace(s.reader.Bytes())
		if len(line) == 0 {
			continue
		}

		msg, err := protocol.Parse(line)
		if err != nil {
			s.logger.Printf("skipping unparseable frame: %v", err)
			continue
		}

		if msg.IsNotification() {
			s.handleNotification(msg)
			continue
		}

		resp := s.handleRequest(msg)
		if err := s.send(resp); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
	}
	if err := s.reader.Err(); err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	return nil
}

func (s *Server) handleNotification(msg *protocol.Message) {
	switch msg.Method {
	case protocol.MethodNotificationsInitialized:
		// Client is ready; nothing to do.
	default:
		s.logger.Printf("ignoring notification %q", msg.Method)
	}
}

func (s *Server) handleRequest(msg *protocol.Message) *protocol.Response {
	switch msg.Method {
	case protocol.MethodInitialize:
		return protocol.NewResult(msg.ID, protocol.InitializeResult{
			ProtocolVersion: protocol.MCPProtocolVersion,
			Capabilities:    protocol.Capabilities{Tools: protocol.ToolsCapability{}},
			ServerInfo: protocol.ServerInfo{
				Name:    protocol.ServerName,
				Version: protocol.ServerVersion,
			},
			Instructions: Instructions,
		})
	case protocol.MethodToolsList:
		return protocol.NewResult(msg.ID, protocol.ListToolsResult{Tools: listTools()})
	case protocol.MethodToolsCall:
		return s.handleToolsCall(msg)
	default:
		return protocol.NewError(msg.ID, protocol.CodeMethodNotFound, "Method not found", msg.Method)
	}
}

func (s *Server) handleToolsCall(msg *protocol.Message) *protocol.Response {
	var params protocol.CallParams
	if err := json.Unmarshal(msg.Params, &params); err != nil || params.Name == "" {
		data := "missing tool name"
		if err != nil {
			data = err.Error()
		}
		return protocol.NewError(msg.ID, protocol.CodeInvalidParams, "Invalid params", data)
	}

	text, err := tools.Dispatch(s.state, params.Name, params.Arguments)
	if err != nil {
		// Tool failures (unknown name, validation, precondition, exec start)
		// are execution errors, distinct from method routing errors.
		return protocol.NewError(msg.ID, protocol.CodeInternalError,
			fmt.Sprintf("tool execution failed: %v", err), nil)
	}
	return protocol.NewResult(msg.ID, protocol.TextResult(text))
}

// listTools converts the static registry into wire entries.
func listTools() []protocol.Tool {
	entries := tools.Registry()
	out := make([]protocol.Tool, len(entries))
	for i, e := range entries {
		out[i] = protocol.Tool{Name: e.Name, Description: e.Description, InputSchema: e.InputSchema}
	}
	return out
}

// send writes one response line and flushes before the next read.
func (s *Server) send(resp *protocol.Response) error {
	raw, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	if _, err := s.writer.Write(raw); err != nil {
		return err
	}
	if err := s.writer.WriteByte('\n'); err != nil {
		return err
	}
	return s.writer.Flush()
}
