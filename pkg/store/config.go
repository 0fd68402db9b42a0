package store

// Storage drivers understood by Open.
const (
	DriverDiskv  = "diskv"
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

// Config describes where durable state lives.
type Config interface {
	Driver() string
	BasePath() string
	RedisAddr() string
}

// StaticConfig is a Config with fixed values.
type StaticConfig struct {
	DriverName string
	Path       string
	Addr       string
}

func (c StaticConfig) Driver() string    { return c.DriverName }
func (c StaticConfig) BasePath() string  { return c.Path }
func (c StaticConfig) RedisAddr() string { return c.Addr }
