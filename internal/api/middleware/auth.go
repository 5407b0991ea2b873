// Package middleware holds the mux middlewares: identity headers,
// request id and HTTP metrics.
package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/condohub/reservation-service/internal/api/handlers"
	"github.com/condohub/reservation-service/internal/domain"
)

// Cabeçalhos confiáveis preenchidos pelo gateway
const (
	HeaderUserID  = "X-User-ID"
	HeaderRole    = "X-User-Role"
	HeaderCondoID = "X-Condo-ID"
)

const (
	msgMissingIdentity = "cabeçalhos de identidade ausentes ou inválidos"
	msgMissingCondo    = "cabeçalho X-Condo-ID ausente ou inválido"
)

// Actor identidade extraída dos cabeçalhos
type Actor struct {
	UserID  int64
	Role    string
	CondoID int64
}

type actorContextKey struct{}
type condoContextKey struct{}

// Auth exige os três cabeçalhos de identidade e guarda o ator no
// contexto. A autenticação em si é problema do gateway; aqui os
// cabeçalhos são confiáveis.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.Header.Get(HeaderUserID), 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgMissingIdentity)
			return
		}

		role := r.Header.Get(HeaderRole)
		if role != domain.RoleManager && role != domain.RoleResident {
			handlers.RespondUnauthorized(w, msgMissingIdentity)
			return
		}

		condoID, err := strconv.ParseInt(r.Header.Get(HeaderCondoID), 10, 64)
		if err != nil || condoID <= 0 {
			handlers.RespondUnauthorized(w, msgMissingIdentity)
			return
		}

		actor := Actor{UserID: userID, Role: role, CondoID: condoID}
		ctx := context.WithValue(r.Context(), actorContextKey{}, actor)
		ctx = context.WithValue(ctx, condoContextKey{}, condoID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CondoScope exige apenas o X-Condo-ID. Usado nas rotas públicas, que
// não pedem identidade mas continuam escopadas por condomínio.
func CondoScope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		condoID, err := strconv.ParseInt(r.Header.Get(HeaderCondoID), 10, 64)
		if err != nil || condoID <= 0 {
			handlers.RespondBadRequest(w, msgMissingCondo)
			return
		}

		ctx := context.WithValue(r.Context(), condoContextKey{}, condoID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ActorFromContext devolve o ator guardado pelo Auth
func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorContextKey{}).(Actor)
	return actor, ok
}

// CondoFromContext devolve o condomínio guardado pelo Auth/CondoScope
func CondoFromContext(ctx context.Context) (int64, bool) {
	condoID, ok := ctx.Value(condoContextKey{}).(int64)
	return condoID, ok
}
