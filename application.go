package cavia

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/lo"
	"github.com/xraph/go-utils/log"
)

// Application is a compiled object graph together with its lifecycle.
type Application struct {
	container *Container
	logger    log.Logger
}

// NewApplication wraps an already-built container.
func NewApplication(c *Container) *Application {
	return &Application{container: c, logger: c.logger}
}

// Container returns the container holding the object graph.
func (a *Application) Container() *Container {
	return a.container
}

// Boot invokes OnApplicationBoot on every participating instance.
func (a *Application) Boot(ctx context.Context) error {
	return a.runHook(ctx, HookBoot, "")
}

// Listen invokes OnApplicationListen on every participating instance.
func (a *Application) Listen(ctx context.Context) error {
	return a.runHook(ctx, HookListen, "")
}

// Shutdown invokes OnApplicationShutdown on every participating instance.
func (a *Application) Shutdown(ctx context.Context, signal string) error {
	return a.runHook(ctx, HookShutdown, signal)
}

// Run boots the application, starts listening, then waits for ctx to be
// done or one of signals to arrive and shuts down. Without signals, SIGINT
// and SIGTERM are watched.
func (a *Application) Run(ctx context.Context, signals ...os.Signal) error {
	if len(signals) == 0 {
		signals = []os.Signal{os.Interrupt, syscall.SIGTERM}
	}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, signals...)
	defer signal.Stop(ch)

	if err := a.Boot(ctx); err != nil {
		return err
	}

	if err := a.Listen(ctx); err != nil {
		return err
	}

	var received string

	select {
	case sig := <-ch:
		received = sig.String()
		a.logger.Info("shutdown signal received", log.String("signal", received))
	case <-ctx.Done():
	}

	return a.Shutdown(context.WithoutCancel(ctx), received)
}

// participants returns the providers whose instances take part in lifecycle
// phases: type and class providers, one per token (the one that won
// resolution), in provider-list order.
func (a *Application) participants() []Provider {
	effective := lo.UniqBy(a.container.providers, func(p Provider) Token {
		return ProviderToken(p)
	})

	return lo.Filter(effective, func(p Provider, _ int) bool {
		return IsConstructed(p)
	})
}

// runHook invokes hook on each participant sequentially. The first failure
// aborts the phase.
func (a *Application) runHook(ctx context.Context, hook Hook, signal string) error {
	participants := a.participants()

	instances, err := a.container.resolveAll(ctx, participants)
	if err != nil {
		return err
	}

	a.logger.Info("running lifecycle phase", log.String("hook", string(hook)), log.Int("participants", len(participants)))

	chain := a.container.middleware

	for i, instance := range instances {
		if !hook.implementedBy(instance) {
			continue
		}

		token := ProviderToken(participants[i])

		if err := chain.beforeHook(ctx, hook, token); err != nil {
			return err
		}

		hookErr := hook.invoke(ctx, instance, signal)

		if mwErr := chain.afterHook(ctx, hook, token, hookErr); mwErr != nil {
			return mwErr
		}

		if hookErr != nil {
			return NewLifecycleError(hook, TokenName(token), hookErr)
		}
	}

	return nil
}
