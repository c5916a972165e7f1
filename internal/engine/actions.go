package engine

import (
	"fmt"

	"github.com/mesh-intelligence/payroll/pkg/types"
)

// Action names a user action delegated to the caller.
type Action string

// Actions, in display order.
const (
	ActionAdd    Action = "add"
	ActionView   Action = "view"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// Callbacks are the caller's handlers for user actions. Each is optional;
// a nil handler makes the action unavailable. Errors returned by a handler
// are passed back unchanged to whoever dispatched the action.
type Callbacks struct {
	OnAdd    func() error
	OnView   func(rec types.Record) error
	OnEdit   func(rec types.Record) error
	OnDelete func(rec types.Record) error
}

// Available lists the actions that have a handler.
func (c Callbacks) Available() []Action {
	var out []Action
	if c.OnAdd != nil {
		out = append(out, ActionAdd)
	}
	if c.OnView != nil {
		out = append(out, ActionView)
	}
	if c.OnEdit != nil {
		out = append(out, ActionEdit)
	}
	if c.OnDelete != nil {
		out = append(out, ActionDelete)
	}
	return out
}

// Dispatch invokes the handler for action with rec. rec is ignored for
// ActionAdd. The engine neither inspects nor recovers from the handler's
// result.
func (e *Engine) Dispatch(action Action, rec types.Record) error {
	cb := e.opts.Callbacks
	var err error
	switch action {
	case ActionAdd:
		if cb.OnAdd == nil {
			return fmt.Errorf("%w: %s", types.ErrActionUnavailable, action)
		}
		err = cb.OnAdd()
	case ActionView:
		if cb.OnView == nil {
			return fmt.Errorf("%w: %s", types.ErrActionUnavailable, action)
		}
		err = cb.OnView(rec)
	case ActionEdit:
		if cb.OnEdit == nil {
			return fmt.Errorf("%w: %s", types.ErrActionUnavailable, action)
		}
		err = cb.OnEdit(rec)
	case ActionDelete:
		if cb.OnDelete == nil {
			return fmt.Errorf("%w: %s", types.ErrActionUnavailable, action)
		}
		err = cb.OnDelete(rec)
	default:
		return fmt.Errorf("%w: %q", types.ErrActionUnavailable, action)
	}
	return err
}
