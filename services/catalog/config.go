package catalog

import (
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

type Mode string

const (
	ModeRemote Mode = "remote"
	ModeLocal  Mode = "local"
)

const (
	catalogModeFlag             = "catalog-mode"
	catalogSubmitOnEnterFlag    = "catalog-submit-on-enter"
	catalogLiveSearchFlag       = "catalog-live-search"
	catalogRecommendedIndexFlag = "catalog-recommended-index"
)

// RecommendedSize is the maximum size of the recommended set.
const RecommendedSize = 6

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.StringFlag{
			Name:   catalogModeFlag + ", mode",
			Usage:  "catalog data source mode (remote or local)",
			EnvVar: "CATALOG_MODE",
			Value:  string(ModeRemote),
		},
		cli.BoolTFlag{
			Name:   catalogSubmitOnEnterFlag,
			Usage:  "run search on enter",
			EnvVar: "CATALOG_SUBMIT_ON_ENTER",
		},
		cli.BoolTFlag{
			Name:   catalogLiveSearchFlag,
			Usage:  "run search on every keystroke",
			EnvVar: "CATALOG_LIVE_SEARCH",
		},
		cli.IntSliceFlag{
			Name:   catalogRecommendedIndexFlag,
			Usage:  "catalog indexes recommended in local mode (defaults to the first entries)",
			EnvVar: "CATALOG_RECOMMENDED_INDEX",
		},
	)
}

type Config struct {
	Mode          Mode
	SubmitOnEnter bool
	LiveSearch    bool
	// RecommendedIndex selects the local recommended set, empty means the first RecommendedSize entries.
	RecommendedIndex []int
}

func DefaultConfig() *Config {
	return &Config{
		Mode:          ModeRemote,
		SubmitOnEnter: true,
		LiveSearch:    true,
	}
}

func NewConfig(c *cli.Context) (*Config, error) {
	m := Mode(c.String(catalogModeFlag))
	if m != ModeRemote && m != ModeLocal {
		return nil, errors.Errorf("wrong catalog mode %v", m)
	}
	return &Config{
		Mode:             m,
		SubmitOnEnter:    c.BoolT(catalogSubmitOnEnterFlag),
		LiveSearch:       c.BoolT(catalogLiveSearchFlag),
		RecommendedIndex: c.IntSlice(catalogRecommendedIndexFlag),
	}, nil
}
