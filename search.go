package main

import (
	"context"
	"net/http"
	"os"

	"github.com/urfave/cli"
	"github.com/webtor-io/movie-ui/models"
	"github.com/webtor-io/movie-ui/services/catalog"
)

const (
	searchQueryFlag = "query"
	searchGenreFlag = "genre"
)

func makeSearchCMD() cli.Command {
	searchCMD := cli.Command{
		Name:    "search",
		Aliases: []string{"q"},
		Usage:   "Searches catalog and prints results",
		Action:  search,
	}
	configureSearch(&searchCMD)
	return searchCMD
}

func configureSearch(c *cli.Command) {
	c.Flags = append(c.Flags,
		cli.StringFlag{
			Name:  searchQueryFlag,
			Usage: "search query, empty prints recommended movies",
		},
		cli.StringFlag{
			Name:  searchGenreFlag,
			Usage: "genre filter",
			Value: models.GenreAll,
		},
	)
	c.Flags = configureCatalog(c.Flags)
}

func search(c *cli.Context) error {
	_, api, factory, err := makeCatalog(c, http.DefaultClient)
	if err != nil {
		return err
	}
	if api != nil {
		defer api.Close()
	}
	ctx := context.Background()
	ctrl := factory()
	ctrl.Load(ctx)

	v := catalog.NewTextView(os.Stdout)
	if c.String(searchQueryFlag) == "" {
		ctrl.RenderRecommended(v)
		return nil
	}
	v.SetValue(catalog.ElementSearchInput, c.String(searchQueryFlag))
	v.SetValue(catalog.ElementFilter, c.String(searchGenreFlag))
	ctrl.Search(ctx, v)
	return nil
}
