// Package ipc carries commands from surfaces and tools to the controller and
// pushes window snapshots back, as JSON lines over a unix socket.
package ipc

import (
	"github.com/google/uuid"

	"github.com/bnema/casement/internal/application/controller"
	"github.com/bnema/casement/internal/domain/entity"
)

// MessageType identifies the type of message.
type MessageType string

const (
	MsgHello    MessageType = "hello"    // client -> server: announce role and window
	MsgCommand  MessageType = "command"  // client -> server
	MsgResult   MessageType = "result"   // server -> client, echoes the command id
	MsgSnapshot MessageType = "snapshot" // server -> surface
	MsgNotice   MessageType = "notice"   // server -> surface
	MsgClosed   MessageType = "closed"   // server -> surface: window destroyed
	MsgPing     MessageType = "ping"
	MsgPong     MessageType = "pong"
)

// Roles announced in hello.
const (
	RoleSurface = "surface"
	RoleCtl     = "ctl"
)

// Message is the single envelope for every line on the socket.
type Message struct {
	Type     MessageType            `json:"type"`
	ID       string                 `json:"id,omitempty"`
	Role     string                 `json:"role,omitempty"`
	WindowID entity.WindowID        `json:"window_id,omitempty"`
	Command  *controller.Command    `json:"command,omitempty"`
	Result   *controller.Result     `json:"result,omitempty"`
	Snapshot *entity.WindowSnapshot `json:"snapshot,omitempty"`
	Notice   string                 `json:"notice,omitempty"`
	Error    *Error                 `json:"error,omitempty"`
}

// NewID returns a fresh message id.
func NewID() string {
	return uuid.NewString()
}

const maxLineBytes = 4 << 20
