package apiclient

import (
	"fmt"
	"strings"
)

// Display selects which view-change events a call emits around itself.
type Display int

const (
	// DisplayNone emits nothing; interceptor rules may still emit.
	DisplayNone Display = iota
	// DisplayToast shows a progress dialog while in flight, dismisses it when
	// the call ends and reports failures as a Toast.
	DisplayToast
	// DisplayReplace replaces the content with Loading while in flight, then
	// restores it or swaps it for an Empty or NetworkError state.
	DisplayReplace
)

func (d Display) String() string {
	switch d {
	case DisplayNone:
		return "none"
	case DisplayToast:
		return "toast"
	case DisplayReplace:
		return "replace"
	default:
		return fmt.Sprintf("display(%d)", int(d))
	}
}

// ParseDisplay accepts none, toast or replace.
func ParseDisplay(s string) (Display, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "null":
		return DisplayNone, nil
	case "toast":
		return DisplayToast, nil
	case "replace":
		return DisplayReplace, nil
	default:
		return DisplayNone, fmt.Errorf("unknown display %q", s)
	}
}

// Messages are the texts of events the client builds itself.
type Messages struct {
	Network string
	Timeout string
	Empty   string
	// Business is used when an unhandled business error carries no message.
	Business string
}

// DefaultMessages returns the built-in texts.
func DefaultMessages() Messages {
	return Messages{
		Network:  "Network error, please retry",
		Timeout:  "Request timed out, please retry",
		Empty:    "No data",
		Business: "Request failed",
	}
}

func (m *Messages) applyDefaults() {
	def := DefaultMessages()
	if m.Network == "" {
		m.Network = def.Network
	}
	if m.Timeout == "" {
		m.Timeout = def.Timeout
	}
	if m.Empty == "" {
		m.Empty = def.Empty
	}
	if m.Business == "" {
		m.Business = def.Business
	}
}
