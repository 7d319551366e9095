package httpapi

import (
	"context"
	"net/http"
	"sort"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/nilosmferreira/damasios-ai/internal/usecase"
)

// command is one intent of an actions endpoint. Each intent decodes into its own struct.
type command interface {
	intent() string
}

// intentHeader carries the discriminator so strict decoding accepts it.
type intentHeader struct {
	Intent string `json:"intent" validate:"required"`
}

func (h intentHeader) intent() string {
	return h.Intent
}

type commandRegistry map[string]func() command

func (c commandRegistry) names() []string {
	out := make([]string, 0, len(c))
	for name := range c {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// decodeCommand reads the intent tag, then decodes and validates the full body into the
// struct registered for it.
func (h *Handler) decodeCommand(ctx context.Context, w http.ResponseWriter, r *http.Request, registry commandRegistry) (command, error) {
	ctx, span := startSpan(ctx, "httpapi.Handler.decodeCommand")
	defer span.End()

	body, err := readBody(w, r)
	if err != nil {
		return nil, err
	}

	var header intentHeader
	if err := sonic.Unmarshal(body, &header); err != nil {
		return nil, usecase.InvalidField("intent", "request body must be a JSON object with an intent")
	}
	tag := strings.TrimSpace(header.Intent)
	if tag == "" {
		return nil, usecase.InvalidField("intent", "intent is required")
	}
	newCommand, ok := registry[tag]
	if !ok {
		return nil, usecase.InvalidField("intent", "unknown intent "+tag+", expected one of: "+strings.Join(registry.names(), ", "))
	}

	cmd := newCommand()
	if err := decodeStrict(body, cmd); err != nil {
		return nil, err
	}
	if err := h.validateRequest(ctx, cmd); err != nil {
		return nil, err
	}
	return cmd, nil
}

type createAthleteCommand struct {
	intentHeader
	Name               string   `json:"name"`
	Email              string   `json:"email"`
	BillingType        string   `json:"billingType"`
	PreferredPositions []string `json:"preferredPositions"`
	IsActive           *bool    `json:"isActive"`
	CreateUser         bool     `json:"createUser"`
	UserEmail          string   `json:"userEmail" validate:"required_if=CreateUser true"`
	UserPassword       string   `json:"userPassword" validate:"required_if=CreateUser true"`
}

type updateAthleteCommand struct {
	intentHeader
	ID                 string   `json:"id" validate:"required"`
	Name               *string  `json:"name"`
	Email              *string  `json:"email"`
	BillingType        *string  `json:"billingType"`
	PreferredPositions []string `json:"preferredPositions"`
	IsActive           *bool    `json:"isActive"`
}

type toggleAthleteStatusCommand struct {
	intentHeader
	ID string `json:"id" validate:"required"`
}

var athleteCommands = commandRegistry{
	"create":       func() command { return &createAthleteCommand{} },
	"update":       func() command { return &updateAthleteCommand{} },
	"toggleStatus": func() command { return &toggleAthleteStatusCommand{} },
}

type createMatchCommand struct {
	intentHeader
	Date    string `json:"date"`
	Time    string `json:"time"`
	PlaceID string `json:"placeId"`
}

type updateMatchCommand struct {
	intentHeader
	ID      string `json:"id" validate:"required"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	PlaceID string `json:"placeId"`
}

type togglePresenceCommand struct {
	intentHeader
	AthleteID string `json:"athleteId" validate:"required"`
	MatchID   string `json:"matchId" validate:"required"`
}

var matchCommands = commandRegistry{
	"create":         func() command { return &createMatchCommand{} },
	"update":         func() command { return &updateMatchCommand{} },
	"togglePresence": func() command { return &togglePresenceCommand{} },
}

type createPendingCommand struct {
	intentHeader
	AthleteID   string      `json:"athleteId" validate:"required"`
	Amount      decimalText `json:"amount"`
	DueDate     string      `json:"dueDate"`
	Description string      `json:"description" validate:"max=500"`
}

type updatePendingCommand struct {
	intentHeader
	ID          string       `json:"id" validate:"required"`
	Amount      *decimalText `json:"amount"`
	DueDate     *string      `json:"dueDate"`
	Description *string      `json:"description" validate:"omitempty,max=500"`
	Status      *string      `json:"status"`
	PaymentDate *string      `json:"paymentDate"`
}

type markPaidCommand struct {
	intentHeader
	ID          string `json:"id" validate:"required"`
	PaymentDate string `json:"paymentDate"`
}

type createCashFlowCommand struct {
	intentHeader
	Description string      `json:"description" validate:"max=500"`
	Amount      decimalText `json:"amount"`
	Type        string      `json:"type"`
	Date        string      `json:"date"`
}

var financeCommands = commandRegistry{
	"createPending":  func() command { return &createPendingCommand{} },
	"updatePending":  func() command { return &updatePendingCommand{} },
	"markPaid":       func() command { return &markPaidCommand{} },
	"createCashFlow": func() command { return &createCashFlowCommand{} },
}

type createUserCommand struct {
	intentHeader
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

var userCommands = commandRegistry{
	"create": func() command { return &createUserCommand{} },
}
