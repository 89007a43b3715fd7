package requests

import (
	"context"
)

const (
	logMessageNotification = "window/logMessage"
)

// logMessage forwards one server log line to the client's log channel.
// It is fire-and-forget; delivery problems surface on the local log
// only, never back through this path.
func logMessage(ctx context.Context, conn Conn, params *LogMessageParams) {
	conn.Notify(ctx, logMessageNotification, params)
}
