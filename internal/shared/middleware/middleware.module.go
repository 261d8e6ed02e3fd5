package middleware

import (
	"go.uber.org/fx"

	"ecmis-core/internal/shared/middleware/auth"
)

// Module regroupe tous les providers des middlewares
var Module = fx.Options(
	// Middleware d'identité et de permissions
	fx.Provide(auth.NewPermissionMiddleware),
)
