package logger

import "log/slog"

// Standard field keys, kept small and specific to this client's domain
// (connection/request/dispatch) rather than a generic grab-bag.
const (
	KeyConnection   = "connection"
	KeyRequestID    = "request_id"
	KeyDefinitionID = "definition_id"
	KeyEventID      = "event_id"
	KeyGroupID      = "group_id"
	KeyMessageType  = "message_type"
	KeyDurationMs   = "duration_ms"
	KeyError        = "error"
	KeySendID       = "send_id"
)

func Connection(name string) slog.Attr   { return slog.String(KeyConnection, name) }
func RequestID(id uint32) slog.Attr      { return slog.Any(KeyRequestID, id) }
func DefinitionID(id uint32) slog.Attr   { return slog.Any(KeyDefinitionID, id) }
func EventID(id uint32) slog.Attr        { return slog.Any(KeyEventID, id) }
func GroupID(id uint32) slog.Attr        { return slog.Any(KeyGroupID, id) }
func MessageType(t string) slog.Attr     { return slog.String(KeyMessageType, t) }
func DurationMsAttr(ms float64) slog.Attr { return slog.Float64(KeyDurationMs, ms) }
func SendID(id uint32) slog.Attr         { return slog.Any(KeySendID, id) }

// Err returns a slog.Attr for an error, or a zero Attr for nil.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}
