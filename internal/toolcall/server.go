// Package toolcall exposes the ledger core to tool-calling clients over a
// newline-delimited JSON-RPC 2.0 stream (stdin/stdout in production).
//
// Protocol failures (malformed JSON, unknown methods or tools) are
// reported as JSON-RPC error objects. Business rejections from the ledger
// are returned inside a successful result as {success: false, error: ...}
// so clients can tell the two apart.
package toolcall

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/tallybook-dev/tallybook/internal/ledger"
)

// JSON-RPC 2.0 message types.

type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      any             `json:"id,omitempty"`
}

// Response is a JSON-RPC 2.0 response.
// Result must NOT have omitempty — null results are valid.
type Response struct {
	JSONRPC string    `json:"jsonrpc"`
	Result  any       `json:"result"`
	Error   *RPCError `json:"error,omitempty"`
	ID      any       `json:"id"`
}

type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// JSON-RPC error codes used by the server.
const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
)

const protocolVersion = "2024-11-05"

// Server reads requests line by line and dispatches them against the
// ledger.
type Server struct {
	ledger *ledger.Ledger
	logger *slog.Logger
	reader *bufio.Reader
	out    io.Writer
	mu     sync.Mutex // serializes writes to out
}

// NewServer creates a tool-call server over the given stream pair.
func NewServer(l *ledger.Ledger, logger *slog.Logger, in io.Reader, out io.Writer) *Server {
	return &Server{
		ledger: l,
		logger: logger,
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// Run processes requests until the input stream ends.
func (s *Server) Run() error {
	for {
		line, err := s.reader.ReadBytes('\n')
		if len(line) > 0 {
			s.handleLine(line)
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading request: %w", err)
		}
	}
}

func (s *Server) handleLine(line []byte) {
	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		s.sendError(nil, codeParseError, "parse error")
		return
	}
	if req.Method == "" {
		s.sendError(req.ID, codeInvalidRequest, "missing method")
		return
	}

	switch req.Method {
	case "initialize":
		s.sendResult(req.ID, map[string]any{
			"protocolVersion": protocolVersion,
			"serverInfo": map[string]any{
				"name":    "tallybook",
				"version": "1.0.0",
			},
			"capabilities": map[string]any{
				"tools": map[string]any{},
			},
		})
	case "tools/list":
		s.sendResult(req.ID, map[string]any{"tools": toolDefs()})
	case "tools/call":
		s.handleToolCall(req)
	case "test/reset":
		if err := s.ledger.Reset(); err != nil {
			s.sendError(req.ID, codeInvalidRequest, "reset failed")
			return
		}
		s.sendResult(req.ID, map[string]any{"success": true})
	default:
		s.sendError(req.ID, codeMethodNotFound, "method not found: "+req.Method)
	}
}

type toolCallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

func (s *Server) handleToolCall(req Request) {
	var params toolCallParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			s.sendError(req.ID, codeInvalidParams, "invalid params")
			return
		}
	}
	if params.Name == "" {
		s.sendError(req.ID, codeInvalidParams, "missing tool name")
		return
	}

	result, ok := s.dispatch(params.Name, params.Arguments)
	if !ok {
		s.sendError(req.ID, codeMethodNotFound, "unknown tool: "+params.Name)
		return
	}
	s.sendResult(req.ID, result)
}

func (s *Server) sendResult(id, result any) {
	s.send(Response{JSONRPC: "2.0", Result: result, ID: id})
}

func (s *Server) sendError(id any, code int, message string) {
	s.send(Response{JSONRPC: "2.0", Error: &RPCError{Code: code, Message: message}, ID: id})
}

func (s *Server) send(resp Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		s.logger.Error("marshal response", slog.Any("error", err))
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := fmt.Fprintf(s.out, "%s\n", data); err != nil {
		s.logger.Error("write response", slog.Any("error", err))
	}
}
