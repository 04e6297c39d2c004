package service

import (
	"context"

	"github.com/google/uuid"
)

// Actor identifica al operador autenticado detrás de una petición. El
// middleware de autenticación lo inyecta en el contexto; los servicios lo
// leen para auditoría y para el campo RegistradoPor del libro financiero.
type Actor struct {
	ID       *uuid.UUID
	Username string
}

type actorKey struct{}

func ConActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

// ActorDe returns the actor stored in ctx, or a zero Actor with username
// "sistema" for background jobs and crons.
func ActorDe(ctx context.Context) Actor {
	if a, ok := ctx.Value(actorKey{}).(Actor); ok {
		return a
	}
	return Actor{Username: "sistema"}
}
