package main

import (
	"net/http"

	"github.com/urfave/cli"
	"github.com/webtor-io/movie-ui/services/catalog"
	"github.com/webtor-io/movie-ui/services/recommend"
)

func configureCatalog(f []cli.Flag) []cli.Flag {
	f = catalog.RegisterFlags(f)
	f = recommend.RegisterFlags(f)
	return f
}

// makeCatalog returns catalog config and factory of per-session controllers.
// Recommendation api is set only in remote mode.
func makeCatalog(c *cli.Context, cl *http.Client) (*catalog.Config, *recommend.Api, func() *catalog.Controller, error) {
	cfg, err := catalog.NewConfig(c)
	if err != nil {
		return nil, nil, nil, err
	}
	var api *recommend.Api
	if cfg.Mode == catalog.ModeRemote {
		api = recommend.New(c, cl)
	}
	factory := func() *catalog.Controller {
		if api == nil {
			return catalog.New(cfg, nil)
		}
		return catalog.New(cfg, api)
	}
	return cfg, api, factory, nil
}
