package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tallybook-dev/tallybook/internal/ledger"
	"github.com/tallybook-dev/tallybook/internal/model"
)

// ChartFile is the YAML document describing a seed chart of accounts.
type ChartFile struct {
	Accounts []ChartAccount `yaml:"accounts"`
}

// ChartAccount is one account in a chart file.
type ChartAccount struct {
	Code     string `yaml:"code"`
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Category string `yaml:"category"`
}

// LoadChart reads a YAML chart-of-accounts file into registry seed inputs.
func LoadChart(path string) ([]ledger.AccountInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading chart file: %w", err)
	}
	var file ChartFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing chart file: %w", err)
	}
	if len(file.Accounts) == 0 {
		return nil, fmt.Errorf("chart file %s declares no accounts", path)
	}

	seed := make([]ledger.AccountInput, 0, len(file.Accounts))
	for i, a := range file.Accounts {
		t := model.AccountType(a.Type)
		if !t.Valid() {
			return nil, fmt.Errorf("chart account %d (%s): unknown type %q", i, a.Code, a.Type)
		}
		seed = append(seed, ledger.AccountInput{
			Code:     a.Code,
			Name:     a.Name,
			Type:     t,
			Category: a.Category,
		})
	}
	return seed, nil
}

// SaveChart writes seed inputs as a YAML chart file.
func SaveChart(path string, seed []ledger.AccountInput) error {
	file := ChartFile{Accounts: make([]ChartAccount, 0, len(seed))}
	for _, in := range seed {
		file.Accounts = append(file.Accounts, ChartAccount{
			Code:     in.Code,
			Name:     in.Name,
			Type:     string(in.Type),
			Category: in.Category,
		})
	}
	data, err := yaml.Marshal(&file)
	if err != nil {
		return fmt.Errorf("marshaling chart: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing chart file: %w", err)
	}
	return nil
}
