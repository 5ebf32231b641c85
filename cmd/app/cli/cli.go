package cli

import (
	"context"

	"go.uber.org/fx"

	"xuanxin.dev/backend-next/internal/app"
	"xuanxin.dev/backend-next/internal/app/appcontext"
)

func Start(module fx.Option) error {
	return app.New(appcontext.Declare(appcontext.EnvCLI), module).Start(context.Background())
}

// DepsFn defers building the fx graph until a command actually runs, so
// commands that need no infrastructure never connect to it.
func DepsFn[T any]() func() (T, error) {
	return func() (T, error) {
		var deps T
		err := Start(fx.Populate(&deps))
		return deps, err
	}
}
