package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/keyran/recipekit"
	"github.com/keyran/recipekit/crawl"
	rkhttp "github.com/keyran/recipekit/http"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	Extractors recipekit.ExtractorRegistry
	Parser     recipekit.RecipeParser
	Store      recipekit.RecipeStore
	Entries    recipekit.EntryService
	Importer   *crawl.Importer
	Server     *rkhttp.Server
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	Parse  ParseCmd  `cmd:"" help:"Extract the recipe at a URL"`
	Serve  ServeCmd  `cmd:"" help:"Run the recipe extraction HTTP API"`
	Import ImportCmd `cmd:"" help:"Extract and store every recipe URL listed in a file"`
	List   ListCmd   `cmd:"" help:"List stored recipes"`
	Show   ShowCmd   `cmd:"" help:"Print a stored recipe"`
	Delete DeleteCmd `cmd:"" help:"Remove a recipe from the index"`
	Sites  SitesCmd  `cmd:"" help:"List supported recipe sites"`
}

// ParseCmd is the "parse" subcommand.
type ParseCmd struct {
	URL     string `arg:"" help:"Recipe URL"`
	Output  string `short:"o" type:"path" help:"Write the recipe JSON to FILE"`
	Dir     string `short:"d" type:"path" help:"Store the recipe and its images under DIR"`
	Browser bool   `help:"Render the page in headless Chrome"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr    string `default:":9541" env:"RECIPEKIT_ADDR" help:"Listen address"`
	Dir     string `type:"path" env:"RECIPEKIT_DIR" help:"Recipe directory for save requests"`
	Browser bool   `help:"Render pages in headless Chrome"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	File        string  `arg:"" type:"existingfile" help:"File with one recipe URL per line"`
	Concurrency int     `short:"c" default:"4" help:"Concurrent fetch limit"`
	RPS         float64 `name:"rps" default:"1" help:"Requests per second per domain (0 disables limiting)"`
	Dir         string  `short:"d" type:"path" env:"RECIPEKIT_DIR" help:"Recipe directory"`
	Browser     bool    `help:"Render pages in headless Chrome"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Name  string `short:"n" help:"Only list recipes whose name contains NAME"`
	Limit int    `short:"l" help:"Maximum number of recipes to list"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	URL string `arg:"" help:"Recipe URL"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	URL string `arg:"" help:"Recipe URL"`
}

// SitesCmd is the "sites" subcommand.
type SitesCmd struct{}
