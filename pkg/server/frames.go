package server

import (
	"github.com/callmeskyy111/wayfind/pkg/nav"
)

// Server-to-client frame types.
const (
	// FrameHello is the first frame on a new connection. It carries the
	// assigned client ID and the session state at connect time.
	FrameHello = "hello"

	// FrameNav announces a committed session change.
	FrameNav = "nav"

	// FrameError reports a rejected command. The connection stays open.
	FrameError = "error"
)

// Client-to-server command types.
const (
	// CmdNavigate pushes (or replaces with) a new location.
	CmdNavigate = "navigate"

	// CmdBack moves the cursor one entry back.
	CmdBack = "back"

	// CmdForward moves the cursor one entry forward.
	CmdForward = "forward"

	// CmdGo moves the cursor by a signed delta.
	CmdGo = "go"
)

// Frame is a server-to-client message. One struct covers all frame types;
// Type selects which fields are meaningful.
type Frame struct {
	// Type is one of FrameHello, FrameNav, or FrameError.
	Type string `json:"type"`

	// ClientID is the ID assigned to the connection. Hello frames only.
	ClientID string `json:"client_id,omitempty"`

	// Action names the session operation (push, replace, pop).
	// Nav frames only.
	Action string `json:"action,omitempty"`

	// Location is the entry at the cursor. Hello and nav frames.
	Location *nav.Location `json:"location,omitempty"`

	// Cursor is the cursor position. Hello and nav frames.
	Cursor int `json:"cursor"`

	// Length is the history length. Hello and nav frames.
	Length int `json:"length,omitempty"`

	// Code is the registry error code. Error frames only.
	Code string `json:"code,omitempty"`

	// Message is the registry error message. Error frames only.
	Message string `json:"message,omitempty"`

	// Detail names the rejected input. Error frames only.
	Detail string `json:"detail,omitempty"`
}

// Command is a client-to-server message.
type Command struct {
	// Type is one of CmdNavigate, CmdBack, CmdForward, or CmdGo.
	Type string `json:"type"`

	// Path is the navigation target, with optional query string.
	// Navigate commands only.
	Path string `json:"path,omitempty"`

	// Replace overwrites the current entry instead of pushing.
	// Navigate commands only.
	Replace bool `json:"replace,omitempty"`

	// State is an opaque value carried with the new entry.
	// Navigate commands only.
	State any `json:"state,omitempty"`

	// Delta is the signed cursor movement. Go commands only.
	Delta int `json:"delta,omitempty"`
}
