package main

import (
	"net/http"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	cs "github.com/webtor-io/common-services"

	"github.com/webtor-io/movie-ui/handlers/common"
	wi "github.com/webtor-io/movie-ui/handlers/index"
	wp "github.com/webtor-io/movie-ui/handlers/poster"
	ws "github.com/webtor-io/movie-ui/handlers/search"
	sess "github.com/webtor-io/movie-ui/handlers/session"
	wst "github.com/webtor-io/movie-ui/handlers/state"
	"github.com/webtor-io/movie-ui/services/omdb"
	ss "github.com/webtor-io/movie-ui/services/session"
	"github.com/webtor-io/movie-ui/services/template"
	w "github.com/webtor-io/movie-ui/services/web"
	"github.com/webtor-io/movie-ui/templates"
)

func makeServeCMD() cli.Command {
	serveCMD := cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Serves web server",
		Action:  serve,
	}
	configureServe(&serveCMD)
	return serveCMD
}

func configureServe(c *cli.Command) {
	c.Flags = cs.RegisterProbeFlags(c.Flags)
	c.Flags = cs.RegisterPprofFlags(c.Flags)
	c.Flags = cs.RegisterS3ClientFlags(c.Flags)
	c.Flags = omdb.RegisterFlags(c.Flags)
	c.Flags = w.RegisterFlags(c.Flags)
	c.Flags = sess.RegisterFlags(c.Flags)
	c.Flags = wp.RegisterFlags(c.Flags)
	c.Flags = configureCatalog(c.Flags)
}

func serve(c *cli.Context) error {
	// Setting HTTP Client
	cl := http.DefaultClient

	// Setting Catalog
	cfg, api, factory, err := makeCatalog(c, cl)
	if err != nil {
		return err
	}
	if api != nil {
		defer api.Close()
	}

	// Setting template renderer
	re := multitemplate.NewRenderer()

	// Setting TemplateManager
	tm := template.NewManager(re, templates.FS).
		WithFuncs(common.Funcs())

	var servers []cs.Servable
	// Setting Probe
	probe := cs.NewProbe(c)
	if probe != nil {
		servers = append(servers, probe)
		defer probe.Close()
	}

	// Setting Pprof
	pprof := cs.NewPprof(c)
	if pprof != nil {
		servers = append(servers, pprof)
		defer pprof.Close()
	}

	// Setting Page Sessions
	reg := ss.NewRegistry(c, factory)

	// Setting Gin
	r := gin.Default()
	r.RedirectTrailingSlash = false
	r.HTMLRender = re

	// Setting Web
	web, err := w.New(c, r)
	if err != nil {
		return err
	}
	servers = append(servers, web)
	defer web.Close()

	// Setting Sessions
	err = sess.RegisterHandler(c, r, reg)
	if err != nil {
		return err
	}

	// Setting S3 Client
	s3Cl := cs.NewS3Client(c, cl)

	// Setting OMDB
	om := omdb.New(c, cl)

	// Setting IndexHandler
	wi.RegisterHandler(r, tm, cfg)

	// Setting SearchHandler
	ws.RegisterHandler(r, cfg)

	// Setting StateHandler
	wst.RegisterHandler(r)

	// Setting PosterHandler
	wp.RegisterHandler(c, r, cl, s3Cl, om)

	// Render templates
	err = tm.Init()
	if err != nil {
		return err
	}

	// Setting Serve
	serve := cs.NewServe(servers...)

	// And SERVE!
	err = serve.Serve()
	if err != nil {
		log.WithError(err).Error("got server error")
	}
	return err
}
