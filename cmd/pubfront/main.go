package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eringen/pubfront"
	"github.com/eringen/pubfront/views"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(os.Args[2:])
	case "posts":
		err = runPosts(os.Args[2:])
	case "resolve":
		err = runResolve(os.Args[2:])
	case "version":
		fmt.Printf("pubfront %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(fs *flag.FlagSet, args []string) (pubfront.SiteConfig, error) {
	path := fs.String("config", "", "path to a YAML config file (default $CONFIG_PATH)")
	if err := fs.Parse(args); err != nil {
		return pubfront.SiteConfig{}, err
	}
	return pubfront.LoadConfig(*path)
}

func runServe(args []string) error {
	cfg, err := loadConfig(flag.NewFlagSet("serve", flag.ExitOnError), args)
	if err != nil {
		return err
	}
	app := pubfront.New(cfg, views.New(cfg).Funcs())

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop
		if err := app.Close(); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
	return nil
}

// runPosts walks the published listing page by page and prints one line
// per post.
func runPosts(args []string) error {
	fs := flag.NewFlagSet("posts", flag.ExitOnError)
	ref := fs.String("ref", "", "release ref to read (default master)")
	limit := fs.Int("pages", 0, "stop after this many pages (0 = all)")
	cfg, err := loadConfig(fs, args)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	content, err := pubfront.New(cfg, pubfront.ViewFuncs{}).Content()
	if err != nil {
		return err
	}
	first, err := content.FirstPage(ctx, *ref)
	if err != nil {
		return err
	}
	l := pubfront.NewListing(first)
	for pages := 1; l.HasMore() && (*limit == 0 || pages < *limit); pages++ {
		if _, err := l.LoadMore(ctx, content); err != nil {
			return err
		}
	}
	for _, p := range l.Posts() {
		date := pubfront.FormatDate(p.FirstPublicationDate, cfg.DateLocale)
		if date == "" {
			date = "-"
		}
		fmt.Printf("%-12s %-40s %s\n", date, p.Link(), p.Data.Title)
	}
	if next := l.NextPage(); next != "" {
		fmt.Printf("next: %s\n", next)
	}
	return nil
}

// runResolve runs the preview handshake lookup without starting a session.
func runResolve(args []string) error {
	fs := flag.NewFlagSet("resolve", flag.ExitOnError)
	token := fs.String("token", "", "preview token")
	documentID := fs.String("document", "", "previewed document ID")
	cfg, err := loadConfig(fs, args)
	if err != nil {
		return err
	}
	if *token == "" {
		return errors.New("-token is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.UpstreamTimeout)
	defer cancel()

	client, err := pubfront.New(cfg, pubfront.ViewFuncs{}).Client(nil)
	if err != nil {
		return err
	}
	u, err := client.PreviewResolver(*token, *documentID).Resolve(ctx, pubfront.ResolveLink, "/")
	if err != nil {
		return err
	}
	if u == "" {
		return errors.New("invalid token")
	}
	fmt.Println(u)
	return nil
}

func printUsage() {
	fmt.Println(`pubfront - A Prismic-backed blog front-end built with Go, Echo, and templ

Usage:
  pubfront <command> [arguments]

Commands:
  serve                          Start the web server
  posts [-ref R] [-pages N]      List published posts
  resolve -token T -document D   Print the URL a preview link lands on
  version                        Print the pubfront version
  help                           Show this help message

Every command except version and help accepts -config <file>; without it
configuration is read from $CONFIG_PATH or the environment.

Examples:
  PRISMIC_API_ENDPOINT=https://repo.cdn.prismic.io/api/v2 SESSION_SECRET=... pubfront serve
  pubfront posts -config config.yml -pages 3`)
}
