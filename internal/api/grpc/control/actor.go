package control

import (
	"context"

	"google.golang.org/grpc/metadata"

	domain "github.com/oshokin/daylight/internal/domain/alarm"
)

// Metadata keys carrying the caller identity.
const (
	MetadataHostname = "x-actor-hostname"
	MetadataUsername = "x-actor-username"
)

// WithActor attaches the actor to outgoing call metadata.
func WithActor(ctx context.Context, actor *domain.Actor) context.Context {
	if actor == nil {
		return ctx
	}

	return metadata.AppendToOutgoingContext(ctx,
		MetadataHostname, actor.Hostname,
		MetadataUsername, actor.Username,
	)
}

// ActorFromContext extracts the caller identity from incoming metadata, nil when absent.
func ActorFromContext(ctx context.Context) *domain.Actor {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return nil
	}

	hostname := first(md.Get(MetadataHostname))
	username := first(md.Get(MetadataUsername))

	if hostname == "" && username == "" {
		return nil
	}

	return &domain.Actor{
		Hostname: hostname,
		Username: username,
	}
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}

	return values[0]
}
