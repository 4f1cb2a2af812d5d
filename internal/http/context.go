package http

import (
	"context"
	"log/slog"

	"github.com/example/placement-scheduler/internal/application"
	"github.com/example/placement-scheduler/internal/logging"
)

type contextKey string

const (
	principalContextKey     contextKey = "principal"
	roomIDContextKey        contextKey = "room_id"
	participantIDContextKey contextKey = "participant_id"
	scheduleIDContextKey    contextKey = "schedule_id"
	operatorIDContextKey    contextKey = "operator_id"
)

// ContextWithPrincipal returns a derived context containing the authenticated principal.
func ContextWithPrincipal(ctx context.Context, principal application.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, principal)
}

// PrincipalFromContext extracts the authenticated principal from context if available.
func PrincipalFromContext(ctx context.Context) (application.Principal, bool) {
	principal, ok := ctx.Value(principalContextKey).(application.Principal)
	return principal, ok
}

// ContextWithRoomID injects the room identifier resolved from the request path.
func ContextWithRoomID(ctx context.Context, roomID string) context.Context {
	return context.WithValue(ctx, roomIDContextKey, roomID)
}

// RoomIDFromContext extracts a room identifier previously associated with the context.
func RoomIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(roomIDContextKey).(string)
	return id, ok
}

// ContextWithParticipantID injects the participant identifier resolved from the request path.
func ContextWithParticipantID(ctx context.Context, participantID string) context.Context {
	return context.WithValue(ctx, participantIDContextKey, participantID)
}

// ParticipantIDFromContext extracts a participant identifier previously associated with the context.
func ParticipantIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(participantIDContextKey).(string)
	return id, ok
}

// ContextWithScheduleID injects the schedule identifier resolved from the request path.
func ContextWithScheduleID(ctx context.Context, scheduleID string) context.Context {
	return context.WithValue(ctx, scheduleIDContextKey, scheduleID)
}

// ScheduleIDFromContext extracts a schedule identifier previously associated with the context.
func ScheduleIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(scheduleIDContextKey).(string)
	return id, ok
}

// ContextWithOperatorID injects the operator identifier resolved from the request path.
func ContextWithOperatorID(ctx context.Context, operatorID string) context.Context {
	return context.WithValue(ctx, operatorIDContextKey, operatorID)
}

// OperatorIDFromContext extracts an operator identifier previously associated with the context.
func OperatorIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(operatorIDContextKey).(string)
	return id, ok
}

// ContextWithLogger attaches a request scoped logger to the context.
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return logging.ContextWithLogger(ctx, logger)
}

// LoggerFromContext retrieves a request scoped logger if one was attached.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx)
}
