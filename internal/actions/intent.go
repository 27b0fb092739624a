// Package actions defines the structured intents the assistant can emit and
// the dispatcher that applies them to the roster.
package actions

import (
	"errors"
	"fmt"
	"strings"

	"clubfin/internal/core"
)

// Kind discriminates the four supported intents. The values are the
// function names declared to the assistant.
type Kind string

const (
	KindAddPlayers       Kind = "addMultiplePlayers"
	KindRegisterPayments Kind = "registerMultiplePayments"
	KindGenerateReport   Kind = "generateMonthlyReport"
	KindDeletePlayer     Kind = "deletePlayer"
)

var (
	ErrUnknownAction = errors.New("unknown action name")
	ErrBadPayload    = errors.New("malformed action payload")
)

type (
	AddPlayersArgs struct {
		PlayerNames []string
	}

	RegisterPaymentsArgs struct {
		PlayerNames []string
		Month       string
		Method      core.PaymentMethod
	}

	DeletePlayerArgs struct {
		PlayerName string
	}

	// Intent is the tagged union of the four supported actions. Exactly the
	// payload matching Kind is non-nil; GenerateReport carries none.
	Intent struct {
		Kind             Kind
		AddPlayers       *AddPlayersArgs
		RegisterPayments *RegisterPaymentsArgs
		DeletePlayer     *DeletePlayerArgs
	}
)

// ParseIntent validates the loose (name, args) shape coming back from the
// assistant into a typed Intent. It rejects unknown names, missing player
// names, months outside the fixed calendar, and non-settlement methods
// before anything reaches the dispatcher.
func ParseIntent(name string, args map[string]any) (Intent, error) {
	switch Kind(name) {
	case KindAddPlayers:
		names, err := stringSlice(args, "playerNames")
		if err != nil {
			return Intent{}, err
		}
		if len(names) == 0 {
			return Intent{}, fmt.Errorf("%w: %s", ErrBadPayload, core.ErrNoPlayerNames)
		}
		return Intent{Kind: KindAddPlayers, AddPlayers: &AddPlayersArgs{PlayerNames: names}}, nil

	case KindRegisterPayments:
		names, err := stringSlice(args, "playerNames")
		if err != nil {
			return Intent{}, err
		}
		if len(names) == 0 {
			return Intent{}, fmt.Errorf("%w: %s", ErrBadPayload, core.ErrNoPlayerNames)
		}
		month, _ := args["month"].(string)
		if core.MonthIndex(month) < 0 {
			return Intent{}, fmt.Errorf("%w: %s %q", ErrBadPayload, core.ErrInvalidMonth, month)
		}
		rawMethod, _ := args["method"].(string)
		method, err := core.ParseMethod(rawMethod)
		if err != nil || !method.IsSettlement() {
			return Intent{}, fmt.Errorf("%w: %s %q", ErrBadPayload, core.ErrInvalidMethod, rawMethod)
		}
		return Intent{Kind: KindRegisterPayments, RegisterPayments: &RegisterPaymentsArgs{
			PlayerNames: names,
			Month:       strings.TrimSpace(month),
			Method:      method,
		}}, nil

	case KindGenerateReport:
		return Intent{Kind: KindGenerateReport}, nil

	case KindDeletePlayer:
		playerName, _ := args["playerName"].(string)
		if strings.TrimSpace(playerName) == "" {
			return Intent{}, fmt.Errorf("%w: %s", ErrBadPayload, core.ErrEmptyName)
		}
		return Intent{Kind: KindDeletePlayer, DeletePlayer: &DeletePlayerArgs{PlayerName: strings.TrimSpace(playerName)}}, nil

	default:
		return Intent{}, fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
}

// stringSlice extracts a []string arg that may arrive as []any from JSON.
func stringSlice(args map[string]any, key string) ([]string, error) {
	raw, ok := args[key]
	if !ok {
		return nil, fmt.Errorf("%w: missing %q", ErrBadPayload, key)
	}
	switch v := raw.(type) {
	case []string:
		return trimNonEmpty(v), nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %q contains a non-string entry", ErrBadPayload, key)
			}
			out = append(out, s)
		}
		return trimNonEmpty(out), nil
	default:
		return nil, fmt.Errorf("%w: %q is not a list", ErrBadPayload, key)
	}
}

func trimNonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
