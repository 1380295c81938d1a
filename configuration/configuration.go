package configuration

import (
	"github.com/fulldump/telesync/align"
)

type Configuration struct {
	HttpAddr   string `usage:"HTTP address"`
	Dir        string `usage:"data directory"`
	Version    bool   `usage:"show version and exit"`
	ShowBanner bool   `usage:"show big banner"`
	ShowConfig bool   `usage:"print config"`
	AccessLog  bool   `usage:"log every http request"`

	Workers      int     `usage:"alignment workers per batch"`
	Tolerance    float64 `usage:"max hit distance per coordinate to consider two hits correlated"`
	BadTriggers  int     `usage:"consecutive uncorrelated triggers that break the correlation"`
	SearchRadius int     `usage:"max offset, in hits, tried to restore the correlation"`
	GoodTriggers int     `usage:"consecutive correlated triggers needed to accept an offset"`

	MaxBins     int `usage:"max bins of a histogram requested to the tools api"`
	MaxCapacity int `usage:"max output capacity of a union requested to the tools api"`
}

func Default() *Configuration {
	p := align.DefaultParams()
	return &Configuration{
		HttpAddr:     "127.0.0.1:8080",
		Dir:          "data",
		ShowBanner:   true,
		AccessLog:    true,
		Workers:      4,
		Tolerance:    p.Tolerance,
		BadTriggers:  p.BadTriggers,
		SearchRadius: p.SearchRadius,
		GoodTriggers: p.GoodTriggers,
		MaxBins:      1 << 24,
		MaxCapacity:  1 << 24,
	}
}

// Params are the alignment defaults for jobs that do not carry their own.
func (c *Configuration) Params() align.Params {
	return align.Params{
		Tolerance:    c.Tolerance,
		BadTriggers:  c.BadTriggers,
		SearchRadius: c.SearchRadius,
		GoodTriggers: c.GoodTriggers,
	}
}
