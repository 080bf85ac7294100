package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/bombbusters/bombbusters-server-go/internal/game/model"
	"github.com/bombbusters/bombbusters-server-go/internal/game/rules"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(w io.Writer, header table.Row) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(header)
	return tw
}

type verdict struct {
	Legal   bool       `json:"legal"`
	Code    rules.Code `json:"code,omitempty"`
	Message string     `json:"message,omitempty"`
}

func (a *app) printVerdict(lerr *rules.LegalityError) error {
	v := verdict{Legal: lerr == nil}
	if lerr != nil {
		v.Code = lerr.Code
		v.Message = lerr.Message
	}
	if a.jsonOutput() {
		return printJSON(a.out, v)
	}
	if v.Legal {
		fmt.Fprintln(a.out, "legal")
		return nil
	}
	fmt.Fprintf(a.out, "illegal: %s: %s\n", v.Code, v.Message)
	return nil
}

// readState loads a game state from a JSON file.
func readState(path string) (*model.GameState, error) {
	if path == "" {
		return nil, fmt.Errorf("--state is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}
	var state model.GameState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode state %s: %w", path, err)
	}
	return &state, nil
}
