package toolcall

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/tallybook-dev/tallybook/internal/ledger"
	"github.com/tallybook-dev/tallybook/internal/model"
)

// ToolDef describes one callable tool with a JSON-Schema input descriptor.
type ToolDef struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

func toolDefs() []ToolDef {
	dateProp := map[string]any{"type": "string", "description": "Calendar date in YYYY-MM-DD format"}
	return []ToolDef{
		{
			Name:        "create_journal_entry",
			Description: "Record a balanced double-entry journal entry. Debits must equal credits.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"date":        dateProp,
					"description": map[string]any{"type": "string"},
					"lines": map[string]any{
						"type":     "array",
						"minItems": 2,
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"accountCode":  map[string]any{"type": "string"},
								"debitAmount":  map[string]any{"type": "number"},
								"creditAmount": map[string]any{"type": "number"},
							},
							"required": []string{"accountCode"},
						},
					},
				},
				"required": []string{"date", "description", "lines"},
			},
		},
		{
			Name:        "get_account_balance",
			Description: "Get an account's balance by account code, optionally as of a date.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"accountCode": map[string]any{"type": "string"},
					"asOfDate":    dateProp,
				},
				"required": []string{"accountCode"},
			},
		},
		{
			Name:        "list_accounts",
			Description: "List the chart of accounts, optionally filtered by account type.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"type": map[string]any{
						"type": "string",
						"enum": []string{"asset", "liability", "equity", "revenue", "expense"},
					},
				},
			},
		},
		{
			Name:        "generate_balance_sheet",
			Description: "Generate a balance sheet, optionally as of a date.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"asOfDate": dateProp,
				},
			},
		},
		{
			Name:        "generate_income_statement",
			Description: "Generate an income statement for an inclusive date range.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"startDate": dateProp,
					"endDate":   dateProp,
				},
				"required": []string{"startDate", "endDate"},
			},
		},
	}
}

func failure(err error) map[string]any {
	return map[string]any{"success": false, "error": err.Error()}
}

// dispatch runs the named tool. The second return is false when the tool
// name is unknown (a protocol-level failure, not a business one).
func (s *Server) dispatch(name string, args json.RawMessage) (any, bool) {
	switch name {
	case "create_journal_entry":
		return s.createJournalEntry(args), true
	case "get_account_balance":
		return s.getAccountBalance(args), true
	case "list_accounts":
		return s.listAccounts(args), true
	case "generate_balance_sheet":
		return s.generateBalanceSheet(args), true
	case "generate_income_statement":
		return s.generateIncomeStatement(args), true
	}
	return nil, false
}

type toolLine struct {
	AccountCode string          `json:"accountCode"`
	Debit       decimal.Decimal `json:"debitAmount"`
	Credit      decimal.Decimal `json:"creditAmount"`
}

type createEntryArgs struct {
	Date        model.Date `json:"date"`
	Description string     `json:"description"`
	Lines       []toolLine `json:"lines"`
}

func (s *Server) createJournalEntry(args json.RawMessage) any {
	var in createEntryArgs
	if err := json.Unmarshal(args, &in); err != nil {
		return failure(err)
	}

	lines := make([]ledger.LineInput, 0, len(in.Lines))
	for _, tl := range in.Lines {
		acct, err := s.ledger.AccountByCode(tl.AccountCode)
		if err != nil {
			return failure(err)
		}
		lines = append(lines, ledger.LineInput{
			AccountID: acct.ID,
			Debit:     tl.Debit,
			Credit:    tl.Credit,
		})
	}

	entry, err := s.ledger.CreateEntry(ledger.EntryInput{
		Date:        in.Date,
		Description: in.Description,
		Lines:       lines,
	})
	if err != nil {
		return failure(err)
	}
	return map[string]any{"success": true, "journalEntry": entry}
}

type balanceArgs struct {
	AccountCode string     `json:"accountCode"`
	AsOfDate    model.Date `json:"asOfDate"`
}

func (s *Server) getAccountBalance(args json.RawMessage) any {
	var in balanceArgs
	if err := json.Unmarshal(args, &in); err != nil {
		return failure(err)
	}
	acct, err := s.ledger.AccountByCode(in.AccountCode)
	if err != nil {
		return failure(err)
	}
	balance, err := s.ledger.AccountBalance(acct.ID, in.AsOfDate)
	if err != nil {
		return failure(err)
	}
	return map[string]any{
		"success":     true,
		"accountCode": acct.Code,
		"accountName": acct.Name,
		"accountType": acct.Type,
		"balance":     balance,
	}
}

type listAccountsArgs struct {
	Type string `json:"type"`
}

func (s *Server) listAccounts(args json.RawMessage) any {
	var in listAccountsArgs
	if len(args) > 0 {
		if err := json.Unmarshal(args, &in); err != nil {
			return failure(err)
		}
	}
	filter := ledger.AccountFilter{}
	if in.Type != "" {
		at := model.AccountType(in.Type)
		if !at.Valid() {
			return map[string]any{"success": false, "error": "unknown account type: " + in.Type}
		}
		filter.Type = at
	}
	return map[string]any{"success": true, "accounts": s.ledger.Accounts(filter)}
}

type asOfArgs struct {
	AsOfDate model.Date `json:"asOfDate"`
}

func (s *Server) generateBalanceSheet(args json.RawMessage) any {
	var in asOfArgs
	if len(args) > 0 {
		if err := json.Unmarshal(args, &in); err != nil {
			return failure(err)
		}
	}
	return map[string]any{"success": true, "balanceSheet": s.ledger.ComputeBalanceSheet(in.AsOfDate)}
}

type rangeArgs struct {
	StartDate model.Date `json:"startDate"`
	EndDate   model.Date `json:"endDate"`
}

func (s *Server) generateIncomeStatement(args json.RawMessage) any {
	var in rangeArgs
	if err := json.Unmarshal(args, &in); err != nil {
		return failure(err)
	}
	is, err := s.ledger.ComputeIncomeStatement(in.StartDate, in.EndDate)
	if err != nil {
		return failure(err)
	}
	return map[string]any{"success": true, "incomeStatement": is}
}
