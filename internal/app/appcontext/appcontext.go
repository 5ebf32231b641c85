package appcontext

// Env is the kind of process the fx graph is assembled for.
type Env int

const (
	EnvServer Env = iota
	EnvWorker
	EnvCLI
)

var envNames = [...]string{"server", "worker", "cli"}

func (e Env) String() string {
	if e < 0 || int(e) >= len(envNames) {
		return "unknown"
	}
	return envNames[e]
}

type Ctx struct {
	Env Env
}

func Declare(env Env) Ctx {
	return Ctx{
		Env: env,
	}
}

// ServesHTTP reports whether the process exposes the HTTP surface.
func (c Ctx) ServesHTTP() bool {
	return c.Env == EnvServer
}

// RunsWorkers reports whether archive consumers are spawned.
func (c Ctx) RunsWorkers() bool {
	return c.Env == EnvServer || c.Env == EnvWorker
}
