package domain

import (
	"sort"

	"github.com/yndnr/canikit-go/pkg/principal"
)

// ActionKind tags the variant carried by an ActionValue.
type ActionKind string

const (
	ActionNone      ActionKind = "None"
	ActionString    ActionKind = "String"
	ActionNumber    ActionKind = "Number"
	ActionPrincipal ActionKind = "Principal"
	ActionAccount   ActionKind = "Account"
	ActionBytes     ActionKind = "Bytes"
	ActionBool      ActionKind = "Bool"
	ActionTime      ActionKind = "Time"
	ActionUnknown   ActionKind = "Unknown"
)

// ActionValue is a loosely typed value recorded in an audit log change.
type ActionValue struct {
	Kind      ActionKind           `json:"kind"`
	String    string               `json:"string,omitempty"`
	Number    uint64               `json:"number,omitempty"`
	Principal *principal.Principal `json:"principal,omitempty"`
	Account   *principal.Account   `json:"account,omitempty"`
	Bytes     []byte               `json:"bytes,omitempty"`
	Bool      bool                 `json:"bool,omitempty"`
}

func StringValue(s string) ActionValue { return ActionValue{Kind: ActionString, String: s} }
func NumberValue(n uint64) ActionValue { return ActionValue{Kind: ActionNumber, Number: n} }
func BoolValue(b bool) ActionValue     { return ActionValue{Kind: ActionBool, Bool: b} }
func TimeValue(t uint64) ActionValue   { return ActionValue{Kind: ActionTime, Number: t} }
func BytesValue(b []byte) ActionValue  { return ActionValue{Kind: ActionBytes, Bytes: b} }

func PrincipalValue(p principal.Principal) ActionValue {
	return ActionValue{Kind: ActionPrincipal, Principal: &p}
}

func AccountValue(a principal.Account) ActionValue {
	return ActionValue{Kind: ActionAccount, Account: &a}
}

// ChangeValues is the before/after pair of one field.
type ChangeValues struct {
	Initial *ActionValue `json:"initial,omitempty"`
	New     ActionValue  `json:"new"`
}

// Change is a flattened ChangeValues for responses.
type Change struct {
	Action  string       `json:"action"`
	Initial *ActionValue `json:"initial,omitempty"`
	New     ActionValue  `json:"new"`
}

// Log is an audit entry stored in the log region.
type Log struct {
	Action      string                  `json:"action"`
	Changes     map[string]ChangeValues `json:"changes"`
	InitiatedBy principal.Principal     `json:"initiated_by"`
	CreatedAt   uint64                  `json:"created_at"`
}

// LogResponse is the public view of a stored Log.
type LogResponse struct {
	ID          uint64              `json:"id"`
	Action      string              `json:"action"`
	Changes     []Change            `json:"changes"`
	InitiatedBy principal.Principal `json:"initiated_by"`
	CreatedAt   uint64              `json:"created_at"`
}

// NewLog creates an audit entry for action.
func NewLog(action string, initiatedBy principal.Principal, createdAt uint64) Log {
	return Log{
		Action:      action,
		Changes:     make(map[string]ChangeValues),
		InitiatedBy: initiatedBy,
		CreatedAt:   createdAt,
	}
}

// AddChange records the change of key and returns the log for chaining.
func (l Log) AddChange(key string, initial *ActionValue, next ActionValue) Log {
	changes := make(map[string]ChangeValues, len(l.Changes)+1)
	for k, v := range l.Changes {
		changes[k] = v
	}
	changes[key] = ChangeValues{Initial: initial, New: next}
	l.Changes = changes
	return l
}

// ToResponse builds the response for the log stored under id. Changes are
// ordered by key.
func (l Log) ToResponse(id uint64) LogResponse {
	keys := make([]string, 0, len(l.Changes))
	for k := range l.Changes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	changes := make([]Change, 0, len(keys))
	for _, k := range keys {
		c := l.Changes[k]
		changes = append(changes, Change{Action: k, Initial: c.Initial, New: c.New})
	}

	return LogResponse{
		ID:          id,
		Action:      l.Action,
		Changes:     changes,
		InitiatedBy: l.InitiatedBy,
		CreatedAt:   l.CreatedAt,
	}
}
