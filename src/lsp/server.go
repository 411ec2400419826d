// Package lsp serves Cypher diagnostics, formatting, hover and completion
// over the Language Server Protocol.
package lsp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/textproto"
	"strconv"
	"strings"
	"sync"

	"github.com/alecthomas/participle/v2"

	"github.com/seuros/cypherkit/src/cypher"
	"github.com/seuros/cypherkit/src/logging"
	"github.com/seuros/cypherkit/src/parser"
)

// JSON-RPC error codes.
const (
	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
)

type Message struct {
	JsonRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type InitializeResult struct {
	Capabilities ServerCapabilities `json:"capabilities"`
	ServerInfo   ServerInfo         `json:"serverInfo"`
}

type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type ServerCapabilities struct {
	TextDocumentSync           int                `json:"textDocumentSync"`
	HoverProvider              bool               `json:"hoverProvider"`
	DocumentFormattingProvider bool               `json:"documentFormattingProvider"`
	CompletionProvider         *CompletionOptions `json:"completionProvider"`
}

type CompletionOptions struct {
	TriggerCharacters []string `json:"triggerCharacters"`
}

type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

type Diagnostic struct {
	Range    Range  `json:"range"`
	Severity int    `json:"severity"`
	Source   string `json:"source"`
	Message  string `json:"message"`
}

type TextEdit struct {
	Range   Range  `json:"range"`
	NewText string `json:"newText"`
}

type CompletionItem struct {
	Label      string `json:"label"`
	Kind       int    `json:"kind"`
	InsertText string `json:"insertText"`
	Detail     string `json:"detail,omitempty"`
}

type textDocumentParams struct {
	TextDocument struct {
		URI  string `json:"uri"`
		Text string `json:"text"`
	} `json:"textDocument"`
	ContentChanges []struct {
		Text string `json:"text"`
	} `json:"contentChanges"`
}

type publishDiagnosticsParams struct {
	URI         string       `json:"uri"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// Completion item kinds.
const (
	kindVariable = 6
	kindKeyword  = 14
)

var keywords = []string{"MATCH", "RETURN", "true", "false", "null"}

// Server holds open documents and answers requests for them.
type Server struct {
	parser      *parser.Parser
	logger      logging.Logger
	compileOpts []cypher.Option

	mu   sync.Mutex
	docs map[string]string

	wmu sync.Mutex
	w   io.Writer
}

// Option configures a Server.
type Option func(*Server)

// WithParser shares an existing parser and its cache.
func WithParser(p *parser.Parser) Option {
	return func(s *Server) { s.parser = p }
}

// WithLogger routes server logs to logger. Logs must not go to the
// protocol stream.
func WithLogger(logger logging.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCompileOptions applies opts to every compile the server runs.
func WithCompileOptions(opts ...cypher.Option) Option {
	return func(s *Server) { s.compileOpts = append(s.compileOpts, opts...) }
}

func NewServer(opts ...Option) (*Server, error) {
	s := &Server{
		logger: &logging.NoOpLogger{},
		docs:   make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.ForCategory(s.logger, logging.CategoryLSP)
	if s.parser == nil {
		p, err := parser.New(parser.WithLogger(s.logger))
		if err != nil {
			return nil, err
		}
		s.parser = p
	}
	return s, nil
}

// Serve reads framed messages from r and writes replies to w until the
// client sends exit, r is exhausted or ctx is done.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	s.w = w
	s.logger.Info("starting cypher language server")
	tp := textproto.NewReader(bufio.NewReader(r))

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		msg, err := readMessage(tp)
		if errors.Is(err, io.EOF) {
			return nil
		}
		var rpcErr *Error
		if errors.As(err, &rpcErr) {
			if err := s.send(&Message{JsonRPC: "2.0", Error: rpcErr}); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}

		response, exit := s.handleMessage(msg)
		if response != nil {
			if err := s.send(response); err != nil {
				return err
			}
		}
		if exit {
			return nil
		}
	}
}

func (e *Error) Error() string { return e.Message }

func readMessage(tp *textproto.Reader) (*Message, error) {
	header, err := tp.ReadMIMEHeader()
	if err != nil {
		return nil, err
	}
	length, err := strconv.Atoi(header.Get("Content-Length"))
	if err != nil || length < 0 {
		return nil, fmt.Errorf("invalid Content-Length %q", header.Get("Content-Length"))
	}
	content := make([]byte, length)
	if _, err := io.ReadFull(tp.R, content); err != nil {
		return nil, err
	}

	var msg Message
	if err := json.Unmarshal(content, &msg); err != nil {
		return nil, &Error{Code: codeParseError, Message: err.Error()}
	}
	return &msg, nil
}

func (s *Server) send(msg *Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	s.wmu.Lock()
	defer s.wmu.Unlock()
	_, err = fmt.Fprintf(s.w, "Content-Length: %d\r\n\r\n%s", len(data), data)
	return err
}

func (s *Server) handleMessage(msg *Message) (*Message, bool) {
	s.logger.Debug("handling message", "method", msg.Method)

	switch msg.Method {
	case "initialize":
		return reply(msg.ID, InitializeResult{
			Capabilities: ServerCapabilities{
				TextDocumentSync:           1,
				HoverProvider:              true,
				DocumentFormattingProvider: true,
				CompletionProvider: &CompletionOptions{
					TriggerCharacters: []string{"(", ",", " "},
				},
			},
			ServerInfo: ServerInfo{Name: "cypherkit", Version: cypher.Version()},
		}), false
	case "initialized":
		return nil, false
	case "shutdown":
		return reply(msg.ID, nil), false
	case "exit":
		return nil, true
	}

	var params textDocumentParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return replyError(msg.ID, codeInvalidParams, err.Error()), false
		}
	}
	uri := params.TextDocument.URI

	switch msg.Method {
	case "textDocument/didOpen":
		return s.update(uri, params.TextDocument.Text), false
	case "textDocument/didChange":
		if n := len(params.ContentChanges); n > 0 {
			return s.update(uri, params.ContentChanges[n-1].Text), false
		}
		return nil, false
	case "textDocument/didClose":
		s.mu.Lock()
		delete(s.docs, uri)
		s.mu.Unlock()
		return publish(uri, []Diagnostic{}), false
	case "textDocument/hover":
		return reply(msg.ID, s.hover(uri)), false
	case "textDocument/completion":
		return reply(msg.ID, map[string]interface{}{
			"isIncomplete": false,
			"items":        s.completion(uri),
		}), false
	case "textDocument/formatting":
		return reply(msg.ID, s.formatting(uri)), false
	}

	if msg.ID != nil {
		return replyError(msg.ID, codeMethodNotFound, "method not found: "+msg.Method), false
	}
	return nil, false
}

func reply(id interface{}, result interface{}) *Message {
	data, err := json.Marshal(result)
	if err != nil {
		return replyError(id, codeInvalidParams, err.Error())
	}
	return &Message{JsonRPC: "2.0", ID: id, Result: data}
}

func replyError(id interface{}, code int, message string) *Message {
	return &Message{JsonRPC: "2.0", ID: id, Error: &Error{Code: code, Message: message}}
}

func publish(uri string, diagnostics []Diagnostic) *Message {
	params, _ := json.Marshal(publishDiagnosticsParams{URI: uri, Diagnostics: diagnostics})
	return &Message{JsonRPC: "2.0", Method: "textDocument/publishDiagnostics", Params: params}
}

func (s *Server) document(uri string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	text, ok := s.docs[uri]
	return text, ok
}

func (s *Server) update(uri, text string) *Message {
	s.mu.Lock()
	s.docs[uri] = text
	s.mu.Unlock()
	return publish(uri, s.diagnose(text))
}

func (s *Server) compile(text string) (*cypher.Result, error) {
	q, err := s.parser.Parse(text)
	if err != nil {
		return nil, err
	}
	return cypher.Compile(q, s.compileOpts...)
}

// diagnose reports the first error in text. Positions are zero-based; an
// error without a position is reported at the start of the document.
func (s *Server) diagnose(text string) []Diagnostic {
	if strings.TrimSpace(text) == "" {
		return []Diagnostic{}
	}
	_, err := s.compile(text)
	if err == nil {
		return []Diagnostic{}
	}

	d := Diagnostic{Severity: 1, Source: "cypherkit", Message: err.Error()}
	var perr participle.Error
	if errors.As(err, &perr) {
		d.Message = perr.Message()
		if pos := perr.Position(); pos.Line > 0 {
			start := Position{Line: pos.Line - 1, Character: max(pos.Column-1, 0)}
			d.Range = Range{Start: start, End: Position{Line: start.Line, Character: start.Character + 1}}
		}
	}
	return []Diagnostic{d}
}

func (s *Server) hover(uri string) interface{} {
	text, ok := s.document(uri)
	if !ok {
		return nil
	}
	res, err := s.compile(text)
	if err != nil {
		return markdown("**Invalid Cypher**\n\n" + err.Error())
	}

	var b strings.Builder
	b.WriteString("```cypher\n" + res.Text + "\n```\n")
	if len(res.Names) > 0 {
		b.WriteString("\n| variable | entity |\n|---|---|\n")
		for _, name := range res.Names {
			entity := ""
			if e, ok := res.Entity(name); ok {
				entity = e.Key()
			}
			fmt.Fprintf(&b, "| `%s` | %s |\n", name, entity)
		}
	}
	return markdown(b.String())
}

func markdown(value string) map[string]interface{} {
	return map[string]interface{}{
		"contents": map[string]interface{}{
			"kind":  "markdown",
			"value": value,
		},
	}
}

// completion offers keywords, plus the document's variables once it
// compiles.
func (s *Server) completion(uri string) []CompletionItem {
	items := make([]CompletionItem, 0, len(keywords))
	for _, keyword := range keywords {
		items = append(items, CompletionItem{Label: keyword, Kind: kindKeyword, InsertText: keyword})
	}

	text, ok := s.document(uri)
	if !ok {
		return items
	}
	res, err := s.compile(text)
	if err != nil {
		return items
	}
	for _, name := range res.Names {
		item := CompletionItem{Label: name, Kind: kindVariable, InsertText: name}
		if e, ok := res.Entity(name); ok {
			item.Detail = e.Key()
		}
		items = append(items, item)
	}
	return items
}

// formatting replaces the whole document with its canonical form. Documents
// that do not compile are left alone.
func (s *Server) formatting(uri string) []TextEdit {
	text, ok := s.document(uri)
	if !ok {
		return []TextEdit{}
	}
	res, err := s.compile(text)
	if err != nil {
		s.logger.Debug("formatting skipped", "uri", uri, "error", err)
		return []TextEdit{}
	}
	formatted := res.Text + "\n"
	if formatted == text {
		return []TextEdit{}
	}
	return []TextEdit{{Range: Range{End: endOf(text)}, NewText: formatted}}
}

func endOf(text string) Position {
	line := strings.Count(text, "\n")
	last := text[strings.LastIndex(text, "\n")+1:]
	return Position{Line: line, Character: len(last)}
}
