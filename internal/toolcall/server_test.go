package toolcall

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallybook-dev/tallybook/internal/ledger"
)

// runSession feeds newline-delimited requests through a fresh server and
// returns one decoded response per line written.
func runSession(t *testing.T, book *ledger.Ledger, input string) []Response {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	var out bytes.Buffer
	srv := NewServer(book, logger, strings.NewReader(input), &out)
	require.NoError(t, srv.Run())

	var responses []Response
	dec := json.NewDecoder(&out)
	for dec.More() {
		var resp Response
		require.NoError(t, dec.Decode(&resp))
		responses = append(responses, resp)
	}
	return responses
}

func newTestBook(t *testing.T) *ledger.Ledger {
	t.Helper()
	book, err := ledger.New(ledger.DefaultChart())
	require.NoError(t, err)
	return book
}

func request(t *testing.T, id any, method string, params any) string {
	t.Helper()
	req := map[string]any{"jsonrpc": "2.0", "id": id, "method": method}
	if params != nil {
		req["params"] = params
	}
	data, err := json.Marshal(req)
	require.NoError(t, err)
	return string(data) + "\n"
}

func toolCall(t *testing.T, id any, name string, args any) string {
	t.Helper()
	return request(t, id, "tools/call", map[string]any{"name": name, "arguments": args})
}

func resultMap(t *testing.T, resp Response) map[string]any {
	t.Helper()
	require.Nil(t, resp.Error, "unexpected rpc error: %+v", resp.Error)
	m, ok := resp.Result.(map[string]any)
	require.True(t, ok, "result is not an object: %#v", resp.Result)
	return m
}

func TestInitialize(t *testing.T) {
	responses := runSession(t, newTestBook(t), request(t, 1, "initialize", nil))
	require.Len(t, responses, 1)
	result := resultMap(t, responses[0])
	assert.Equal(t, protocolVersion, result["protocolVersion"])
	info, ok := result["serverInfo"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "tallybook", info["name"])
}

func TestToolsList(t *testing.T) {
	responses := runSession(t, newTestBook(t), request(t, 1, "tools/list", nil))
	require.Len(t, responses, 1)
	result := resultMap(t, responses[0])
	tools, ok := result["tools"].([]any)
	require.True(t, ok)
	require.Len(t, tools, 5)

	names := make([]string, 0, len(tools))
	for _, raw := range tools {
		tool, ok := raw.(map[string]any)
		require.True(t, ok)
		names = append(names, tool["name"].(string))
		assert.NotEmpty(t, tool["description"])
		assert.NotNil(t, tool["inputSchema"])
	}
	assert.ElementsMatch(t, []string{
		"create_journal_entry",
		"get_account_balance",
		"list_accounts",
		"generate_balance_sheet",
		"generate_income_statement",
	}, names)
}

func TestCreateEntryAndBalanceFlow(t *testing.T) {
	input := toolCall(t, 1, "create_journal_entry", map[string]any{
		"date":        "2024-01-15",
		"description": "Cash sale",
		"lines": []map[string]any{
			{"accountCode": "100", "debitAmount": 250},
			{"accountCode": "400", "creditAmount": 250},
		},
	}) + toolCall(t, 2, "get_account_balance", map[string]any{
		"accountCode": "100",
	})

	responses := runSession(t, newTestBook(t), input)
	require.Len(t, responses, 2)

	created := resultMap(t, responses[0])
	assert.Equal(t, true, created["success"])
	assert.NotNil(t, created["journalEntry"])

	balance := resultMap(t, responses[1])
	assert.Equal(t, true, balance["success"])
	assert.Equal(t, "Cash", balance["accountName"])
	assert.Equal(t, "250", balance["balance"])
}

func TestBusinessFailuresStayInResult(t *testing.T) {
	t.Run("unbalanced entry", func(t *testing.T) {
		input := toolCall(t, 1, "create_journal_entry", map[string]any{
			"date":        "2024-01-15",
			"description": "off by ten",
			"lines": []map[string]any{
				{"accountCode": "100", "debitAmount": 100},
				{"accountCode": "400", "creditAmount": 90},
			},
		})
		responses := runSession(t, newTestBook(t), input)
		require.Len(t, responses, 1)
		result := resultMap(t, responses[0])
		assert.Equal(t, false, result["success"])
		assert.NotEmpty(t, result["error"])
	})

	t.Run("unknown account code", func(t *testing.T) {
		input := toolCall(t, 1, "get_account_balance", map[string]any{
			"accountCode": "999",
		})
		responses := runSession(t, newTestBook(t), input)
		require.Len(t, responses, 1)
		result := resultMap(t, responses[0])
		assert.Equal(t, false, result["success"])
	})
}

func TestListAccountsTool(t *testing.T) {
	input := toolCall(t, 1, "list_accounts", map[string]any{"type": "expense"})
	responses := runSession(t, newTestBook(t), input)
	result := resultMap(t, responses[0])
	assert.Equal(t, true, result["success"])
	accounts, ok := result["accounts"].([]any)
	require.True(t, ok)
	assert.Len(t, accounts, 4)

	input = toolCall(t, 2, "list_accounts", map[string]any{"type": "sideways"})
	responses = runSession(t, newTestBook(t), input)
	result = resultMap(t, responses[0])
	assert.Equal(t, false, result["success"])
}

func TestReportsTools(t *testing.T) {
	input := toolCall(t, 1, "create_journal_entry", map[string]any{
		"date":        "2024-03-01",
		"description": "Service income",
		"lines": []map[string]any{
			{"accountCode": "100", "debitAmount": 1200},
			{"accountCode": "410", "creditAmount": 1200},
		},
	}) + toolCall(t, 2, "generate_balance_sheet", map[string]any{
		"asOfDate": "2024-12-31",
	}) + toolCall(t, 3, "generate_income_statement", map[string]any{
		"startDate": "2024-01-01",
		"endDate":   "2024-12-31",
	})

	responses := runSession(t, newTestBook(t), input)
	require.Len(t, responses, 3)

	bs := resultMap(t, responses[1])
	assert.Equal(t, true, bs["success"])
	assert.NotNil(t, bs["balanceSheet"])

	is := resultMap(t, responses[2])
	assert.Equal(t, true, is["success"])
	stmt, ok := is["incomeStatement"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "1200", stmt["netIncome"])
}

func TestProtocolErrors(t *testing.T) {
	t.Run("parse error", func(t *testing.T) {
		responses := runSession(t, newTestBook(t), "{not json}\n")
		require.Len(t, responses, 1)
		require.NotNil(t, responses[0].Error)
		assert.Equal(t, codeParseError, responses[0].Error.Code)
	})

	t.Run("unknown method", func(t *testing.T) {
		responses := runSession(t, newTestBook(t), request(t, 7, "prompts/list", nil))
		require.Len(t, responses, 1)
		require.NotNil(t, responses[0].Error)
		assert.Equal(t, codeMethodNotFound, responses[0].Error.Code)
		assert.Equal(t, float64(7), responses[0].ID)
	})

	t.Run("unknown tool", func(t *testing.T) {
		responses := runSession(t, newTestBook(t), toolCall(t, 8, "burn_ledger", nil))
		require.Len(t, responses, 1)
		require.NotNil(t, responses[0].Error)
		assert.Equal(t, codeMethodNotFound, responses[0].Error.Code)
	})

	t.Run("missing tool name", func(t *testing.T) {
		responses := runSession(t, newTestBook(t), request(t, 9, "tools/call", map[string]any{}))
		require.Len(t, responses, 1)
		require.NotNil(t, responses[0].Error)
		assert.Equal(t, codeInvalidParams, responses[0].Error.Code)
	})

	t.Run("missing method", func(t *testing.T) {
		responses := runSession(t, newTestBook(t), `{"jsonrpc":"2.0","id":10}`+"\n")
		require.Len(t, responses, 1)
		require.NotNil(t, responses[0].Error)
		assert.Equal(t, codeInvalidRequest, responses[0].Error.Code)
	})
}

func TestResetMethod(t *testing.T) {
	book := newTestBook(t)
	input := toolCall(t, 1, "create_journal_entry", map[string]any{
		"date":        "2024-01-15",
		"description": "pre-reset",
		"lines": []map[string]any{
			{"accountCode": "100", "debitAmount": 50},
			{"accountCode": "400", "creditAmount": 50},
		},
	}) + request(t, 2, "test/reset", nil)

	responses := runSession(t, book, input)
	require.Len(t, responses, 2)
	result := resultMap(t, responses[1])
	assert.Equal(t, true, result["success"])

	assert.Empty(t, book.Entries(ledger.EntryFilter{}))
}

func TestLastLineWithoutNewline(t *testing.T) {
	responses := runSession(t, newTestBook(t), `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)
	require.Len(t, responses, 1)
	assert.Nil(t, responses[0].Error)
}
