package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/landingpages/internal/config"
	"github.com/landingpages/internal/router"
	"github.com/landingpages/internal/service"
	"github.com/landingpages/internal/store"
	"github.com/landingpages/internal/view"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:   "landing-pages",
		Usage:  "Serve the static site and generate landing pages",
		Action: runServer,
		Commands: []*cli.Command{
			serveCmd,
			renderCmd,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("%v", err)
	}
}

var serveCmd = &cli.Command{
	Name:   "serve",
	Usage:  "Start the HTTP server (default)",
	Action: runServer,
}

var renderCmd = &cli.Command{
	Name:  "render",
	Usage: "Render one landing page to stdout or into the pages directory",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "title", Required: true, Usage: "page title"},
		&cli.StringFlag{Name: "content", Usage: "article body"},
		&cli.StringFlag{Name: "credits", Usage: "release credits, one per line"},
		&cli.StringFlag{Name: "intro", Usage: "release introduction"},
		&cli.StringFlag{Name: "link1", Usage: "first outbound link"},
		&cli.StringFlag{Name: "link2", Usage: "second outbound link"},
		&cli.StringFlag{Name: "cover", Usage: "cover image url"},
		&cli.StringFlag{Name: "theme", Usage: "release or article, defaults to PAGE_THEME"},
		&cli.StringFlag{Name: "out", Usage: "filename to write into the pages directory; stdout when empty"},
	},
	Action: func(cctx *cli.Context) error {
		cfg := config.Load()
		themeName := cfg.PageTheme
		if cctx.IsSet("theme") {
			themeName = cctx.String("theme")
		}

		renderer, err := newRenderer(cfg, themeName)
		if err != nil {
			return err
		}

		html, err := renderer.Render(view.Fields{
			Title:         cctx.String("title"),
			Content:       cctx.String("content"),
			Credits:       cctx.String("credits"),
			Intro:         cctx.String("intro"),
			Link1:         cctx.String("link1"),
			Link2:         cctx.String("link2"),
			CoverImageURL: cctx.String("cover"),
		})
		if err != nil {
			return err
		}

		out := cctx.String("out")
		if out == "" {
			_, err := fmt.Fprint(cctx.App.Writer, html)
			return err
		}

		pages := store.NewPageStore(cfg.PagesDir)
		if err := pages.EnsureDirectory(); err != nil {
			return err
		}
		if err := pages.Write(out, html); err != nil {
			return err
		}
		log.Printf("[pages] wrote %s", out)
		return nil
	},
}

func runServer(cctx *cli.Context) error {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	renderer, err := newRenderer(cfg, cfg.PageTheme)
	if err != nil {
		return err
	}

	// 启动时确保页面目录存在
	pages := store.NewPageStore(cfg.PagesDir)
	if err := pages.EnsureDirectory(); err != nil {
		return fmt.Errorf("failed to prepare pages directory: %w", err)
	}

	r := router.SetupRouter(cfg, service.NewPageService(renderer, pages, cfg.PagesURLPath))

	log.Printf("Server running on port %s", cfg.Port)
	if err := r.Run(cfg.ListenAddr); err != nil {
		return fmt.Errorf("failed to run server: %w", err)
	}
	return nil
}

func newRenderer(cfg config.AppConfig, themeName string) (*view.Renderer, error) {
	theme, err := view.ParseTheme(themeName)
	if err != nil {
		return nil, err
	}
	return view.New(theme, view.Options{
		SanitizeFields:  cfg.SanitizeFields,
		ArticleMarkdown: cfg.ArticleMarkdown,
	})
}
