package llm

import "context"

type contextKey string

const (
	purposeKey contextKey = "llm_purpose"
	sessionKey contextKey = "llm_session"
	userKey    contextKey = "llm_user"
)

// WithPurpose attaches a purpose label to the context for event logging.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom extracts the purpose label from the context.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok {
		return v
	}
	return "unknown"
}

// WithSession attaches the session ID and username to the context so
// request events can be tied back to a learning session.
func WithSession(ctx context.Context, sessionID, user string) context.Context {
	ctx = context.WithValue(ctx, sessionKey, sessionID)
	return context.WithValue(ctx, userKey, user)
}

// SessionFrom extracts the session ID and username from the context.
func SessionFrom(ctx context.Context) (sessionID, user string) {
	if v, ok := ctx.Value(sessionKey).(string); ok {
		sessionID = v
	}
	if v, ok := ctx.Value(userKey).(string); ok {
		user = v
	}
	return sessionID, user
}
