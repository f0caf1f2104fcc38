package cavia

import "context"

// Hook names a lifecycle phase.
type Hook string

const (
	// HookBoot runs once the object graph is built.
	HookBoot Hook = "boot"

	// HookListen runs when the application starts serving.
	HookListen Hook = "listen"

	// HookShutdown runs when the application stops.
	HookShutdown Hook = "shutdown"
)

// OnApplicationBoot is implemented by instances that take part in boot.
type OnApplicationBoot interface {
	OnApplicationBoot(ctx context.Context) error
}

// OnApplicationListen is implemented by instances that take part in listen.
type OnApplicationListen interface {
	OnApplicationListen(ctx context.Context) error
}

// OnApplicationShutdown is implemented by instances that take part in
// shutdown. signal is the name of the OS signal that triggered it, or empty.
type OnApplicationShutdown interface {
	OnApplicationShutdown(ctx context.Context, signal string) error
}

// implementedBy reports whether instance implements the hook.
func (h Hook) implementedBy(instance any) bool {
	switch h {
	case HookBoot:
		_, ok := instance.(OnApplicationBoot)
		return ok
	case HookListen:
		_, ok := instance.(OnApplicationListen)
		return ok
	case HookShutdown:
		_, ok := instance.(OnApplicationShutdown)
		return ok
	default:
		return false
	}
}

// invoke calls the hook on instance. Instances not implementing the hook
// are skipped.
func (h Hook) invoke(ctx context.Context, instance any, signal string) error {
	switch h {
	case HookBoot:
		if v, ok := instance.(OnApplicationBoot); ok {
			return v.OnApplicationBoot(ctx)
		}
	case HookListen:
		if v, ok := instance.(OnApplicationListen); ok {
			return v.OnApplicationListen(ctx)
		}
	case HookShutdown:
		if v, ok := instance.(OnApplicationShutdown); ok {
			return v.OnApplicationShutdown(ctx, signal)
		}
	}

	return nil
}
