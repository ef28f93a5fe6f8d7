package session

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/NUSSETO/Graduate-Survival/internal/game"
	"github.com/NUSSETO/Graduate-Survival/internal/upgrade"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

var ErrInvalidCommand = errors.New("invalid command")

type CommandType string

const (
	CommandAction   CommandType = "action"
	CommandPurchase CommandType = "purchase"
)

type Command struct {
	Type CommandType `json:"type"`
	ID   string      `json:"id,omitempty"`
}

// compileCommandSchema builds the inbound command schema. The id enum comes
// from the catalog, so only known upgrades pass.
func compileCommandSchema(cat upgrade.Catalog) (*jsonschema.Schema, error) {
	ids := make([]string, 0, len(cat))
	for _, id := range cat.IDs() {
		ids = append(ids, string(id))
	}
	doc := map[string]any{
		"$schema":              "https://json-schema.org/draft/2020-12/schema",
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"type"},
		"properties": map[string]any{
			"type": map[string]any{"enum": []string{string(CommandAction), string(CommandPurchase)}},
			"id":   map[string]any{"enum": ids},
		},
		"if": map[string]any{
			"properties": map[string]any{"type": map[string]any{"const": string(CommandPurchase)}},
		},
		"then": map[string]any{"required": []string{"id"}},
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return jsonschema.CompileString("command.schema.json", string(b))
}

// ParseCommand decodes raw JSON and checks it against the command schema.
// Every failure wraps ErrInvalidCommand.
func (s *Session) ParseCommand(raw []byte) (Command, error) {
	var doc any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return Command{}, fmt.Errorf("%w: %v", ErrInvalidCommand, err)
	}
	if err := s.commands.Validate(doc); err != nil {
		return Command{}, fmt.Errorf("%w: %v", ErrInvalidCommand, err)
	}

	var cmd Command
	if err := json.Unmarshal(raw, &cmd); err != nil {
		return Command{}, fmt.Errorf("%w: %v", ErrInvalidCommand, err)
	}
	return cmd, nil
}

// Reason maps a command error to the short code clients switch on.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, game.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, game.ErrInsufficientEnergy):
		return "insufficient_energy"
	case errors.Is(err, ErrInvalidCommand):
		return "invalid_command"
	default:
		return "internal"
	}
}
