// Package protocol defines the JSON-RPC 2.0 and MCP wire types spoken on
// stdin/stdout, plus the constants shared by the transport and the CLI.
package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const (
	// Version is the JSON-RPC protocol version field value.
	Version = "2.0"

	// MCPProtocolVersion is the MCP revision advertised by initialize.
	MCPProtocolVersion = "2024-11-05"

	ServerName    = "cargo-mcp"
	ServerVersion = "0.2.0"
)

// Supported RPC methods.
const (
	MethodInitialize               = "initialize"
	MethodToolsList                = "tools/list"
	MethodToolsCall                = "tools/call"
	MethodNotificationsInitialized = "notifications/initialized"
)

// JSON-RPC 2.0 error codes. CodeInternalError doubles as the tool-execution
// failure code: an unknown or failing tool is a reportable execution error,
// not a method-routing error.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// Message is one parsed inbound frame. Whether it is a request or a
// notification is decided by classify at parse time, never downstream.
type Message struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`

	// hasID records whether the id member was present in the frame at all.
	// A literal null id still identifies a request.
	hasID bool
}

// IsNotification reports whether the frame carried no id member.
func (m *Message) IsNotification() bool { return !m.hasID }

// Parse decodes a single frame and classifies it. It rejects frames that are
// not JSON objects or that lack a method.
func Parse(line []byte) (*Message, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(line, &probe); err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}

	var msg Message
	if err := json.Unmarshal(line, &msg); err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}
	if msg.Method == "" {
		return nil, fmt.Errorf("frame has no method")
	}
	if raw, ok := probe["id"]; ok {
		msg.hasID = true
		// json.RawMessage "null" round-trips as null in the response.
		if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			msg.ID = json.RawMessage("null")
		}
	}
	return &msg, nil
}

// Response is one outbound frame. Exactly one of Result and Error is set.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

// RPCError is the JSON-RPC error object.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("json-rpc error %d: %s", e.Code, e.Message)
}

// NewResult builds a success response bound to the originating request id.
func NewResult(id json.RawMessage, result any) *Response {
	return &Response{JSONRPC: Version, ID: id, Result: result}
}

// NewError builds an error response bound to the originating request id.
func NewError(id json.RawMessage, code int, message string, data any) *Response {
	return &Response{JSONRPC: Version, ID: id, Error: &RPCError{Code: code, Message: message, Data: data}}
}

// Tool is one registry entry surfaced by tools/list.
type Tool struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

// ContentItem is one element of a tools/call result payload.
type ContentItem struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// CallParams is the params shape of tools/call.
type CallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// ToolResult wraps handler output as a single text content item.
type ToolResult struct {
	Content []ContentItem `json:"content"`
}

// TextResult builds the standard single-text-item tool result.
func TextResult(text string) ToolResult {
	return ToolResult{Content: []ContentItem{{Type: "text", Text: text}}}
}

// InitializeResult is the static initialize payload.
type InitializeResult struct {
	ProtocolVersion string       `json:"protocolVersion"`
	Capabilities    Capabilities `json:"capabilities"`
	ServerInfo      ServerInfo   `json:"serverInfo"`
	Instructions    string       `json:"instructions,omitempty"`
}

type Capabilities struct {
	Tools ToolsCapability `json:"tools"`
}

type ToolsCapability struct {
	ListChanged bool `json:"listChanged,omitempty"`
}

type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// ListToolsResult is the tools/list payload.
type ListToolsResult struct {
	Tools []Tool `json:"tools"`
}
