package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/mgomes/simplelex/lexer"
)

func TestRunCLIStartsLSPAndExitsOnEOF(t *testing.T) {
	origStdin := os.Stdin
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close write pipe: %v", err)
	}
	os.Stdin = r
	defer func() {
		os.Stdin = origStdin
		_ = r.Close()
	}()

	if err := runCLI([]string{"simplelex", "lsp"}); err != nil {
		t.Fatalf("runCLI lsp failed: %v", err)
	}
}

func TestDiagnosticsForSourceWithoutErrors(t *testing.T) {
	diags := diagnosticsForSource("int a = 1;\n", zap.NewNop())
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %d", len(diags))
	}
}

func TestDiagnosticsForSourceWithUnrecognizedCharacters(t *testing.T) {
	diags := diagnosticsForSource("a = 1;\nb = $ + %;\n", zap.NewNop())
	if len(diags) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(diags))
	}
	first := diags[0]
	if first["severity"] != 1 {
		t.Fatalf("expected severity 1, got %#v", first["severity"])
	}
	start := first["range"].(map[string]any)["start"].(map[string]any)
	if start["line"] != 1 || start["character"] != 4 {
		t.Fatalf("unexpected diagnostic start %#v", start)
	}
	if first["message"] != "unrecognized character '$'" {
		t.Fatalf("unexpected message %#v", first["message"])
	}
}

func TestCompletionItemsAreSortedKeywords(t *testing.T) {
	items := completionItems()
	labels := make([]string, 0, len(items))
	for _, item := range items {
		label, ok := item["label"].(string)
		if !ok {
			t.Fatalf("unexpected completion label: %#v", item["label"])
		}
		if item["kind"] != 14 || item["detail"] != "keyword" {
			t.Fatalf("unexpected completion item %#v", item)
		}
		labels = append(labels, label)
	}
	if !slices.Equal(labels, lexer.DefaultKeywords()) {
		t.Fatalf("unexpected labels %v", labels)
	}
}

func TestTokenAtPosition(t *testing.T) {
	source := "int age = 45;\nage >= 3;"
	cases := []struct {
		line, char int
		want       string
		ok         bool
	}{
		{0, 0, "int", true},
		{0, 2, "int", true},
		{0, 3, "", false},
		{0, 5, "age", true},
		{1, 4, ">=", true},
		{1, 5, ">=", true},
		{2, 0, "", false},
		{-1, 0, "", false},
	}
	for _, tc := range cases {
		tok, ok := tokenAtPosition(source, tc.line, tc.char)
		if ok != tc.ok || tok.Literal() != tc.want {
			t.Fatalf("position %d:%d: expected %q/%v, got %q/%v", tc.line, tc.char, tc.want, tc.ok, tok.Literal(), ok)
		}
	}
}

func TestHandleMessageDidOpenPublishesDiagnostics(t *testing.T) {
	server := newLSPServer(strings.NewReader(""), new(bytes.Buffer), zap.NewNop())
	params := map[string]any{
		"textDocument": map[string]any{
			"uri":  "file:///tmp/test.sl",
			"text": "a = 1 ? 2;\n",
		},
	}
	payload, err := json.Marshal(params)
	if err != nil {
		t.Fatalf("marshal params: %v", err)
	}

	messages := server.handleMessage(lspInboundMessage{
		JSONRPC: "2.0",
		Method:  "textDocument/didOpen",
		Params:  payload,
	})
	if len(messages) != 1 {
		t.Fatalf("expected one publishDiagnostics notification, got %d", len(messages))
	}
	if messages[0].Method != "textDocument/publishDiagnostics" {
		t.Fatalf("unexpected method: %q", messages[0].Method)
	}
	published := messages[0].Params.(map[string]any)
	if diags := published["diagnostics"].([]map[string]any); len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}
	if server.docs["file:///tmp/test.sl"] != "a = 1 ? 2;\n" {
		t.Fatalf("document not stored")
	}
}

func TestHandleMessageHoverDescribesToken(t *testing.T) {
	server := newLSPServer(strings.NewReader(""), new(bytes.Buffer), zap.NewNop())
	server.docs["file:///tmp/test.sl"] = "int age = 45;"
	id := json.RawMessage("7")
	params := `{"textDocument":{"uri":"file:///tmp/test.sl"},"position":{"line":0,"character":1}}`

	messages := server.handleMessage(lspInboundMessage{
		JSONRPC: "2.0",
		ID:      &id,
		Method:  "textDocument/hover",
		Params:  json.RawMessage(params),
	})
	if len(messages) != 1 {
		t.Fatalf("expected one response, got %d", len(messages))
	}
	result := messages[0].Result.(map[string]any)
	value := result["contents"].(map[string]any)["value"].(string)
	if value != "`int`\n\nInt (keyword)" {
		t.Fatalf("unexpected hover value %q", value)
	}
}

func TestServeRoundTrip(t *testing.T) {
	var in bytes.Buffer
	for _, body := range []string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`,
		`{"jsonrpc":"2.0","id":2,"method":"textDocument/definition","params":{}}`,
		`{"jsonrpc":"2.0","method":"exit"}`,
	} {
		fmt.Fprintf(&in, "Content-Length: %d\r\n\r\n%s", len(body), body)
	}
	var out bytes.Buffer
	server := newLSPServer(&in, &out, zap.NewNop())
	if err := server.serve(); err != nil {
		t.Fatalf("serve: %v", err)
	}
	got := out.String()
	if strings.Count(got, "Content-Length:") != 2 {
		t.Fatalf("expected two responses, got %q", got)
	}
	if !strings.Contains(got, `"hoverProvider":true`) {
		t.Fatalf("missing initialize capabilities in %q", got)
	}
	if !strings.Contains(got, `"method not found"`) {
		t.Fatalf("missing method not found error in %q", got)
	}
}
