package configuration

import (
	"net"
	"time"
)

type Properties struct {
	App       AppConfigurationProperties       `yaml:"app"`
	Storage   StorageConfigurationProperties   `yaml:"storage"`
	Transport TransportConfigurationProperties `yaml:"transport"`
	Metrics   MetricsConfigurationProperties   `yaml:"metrics"`
}

type AppConfigurationProperties struct {
	Profile  string `yaml:"profile"`
	LogLevel string `yaml:"log-level"`
}

// StorageConfigurationProperties configures the state log. An empty Dir keeps
// state in memory only.
type StorageConfigurationProperties struct {
	Dir       string `yaml:"dir"`
	NoSync    bool   `yaml:"no-sync"`
	SnapCount uint64 `yaml:"snap-count"`
}

type TransportConfigurationProperties struct {
	Network              string `yaml:"network"`
	Address              string `yaml:"address"`
	Port                 string `yaml:"port"`
	Timeout              uint64 `yaml:"timeout"`
	MaxConcurrentStreams uint32 `yaml:"max-concurrent-streams"`
}

type MetricsConfigurationProperties struct {
	Enabled bool   `yaml:"enabled"`
	Address string `yaml:"address"`
}

func (c *TransportConfigurationProperties) Addr() string {
	return net.JoinHostPort(c.Address, c.Port)
}

// TimeoutDuration is the per-call deadline; anything below a second is raised to one.
func (c *TransportConfigurationProperties) TimeoutDuration() time.Duration {
	if c.Timeout == 0 {
		return time.Second
	}
	return time.Duration(c.Timeout) * time.Second
}
