package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"
	"github.com/justsurfingit/jobhunt/internal/app"
	"github.com/justsurfingit/jobhunt/internal/config"
)

func main() {
	link := flag.String("link", "", "jobs listing page to process (prompted for when empty)")
	configPath := flag.String("config", "", "YAML config file (default jobhunt.yaml)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [user profile]\n\nFind suitable jobs on a listings page, write cover letters and record them in a spreadsheet.\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file loaded, using the process environment")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}
	profile := cfg.UserProfile
	if p := strings.TrimSpace(strings.Join(flag.Args(), " ")); p != "" {
		profile = p
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to initialize: ", err)
	}

	target := *link
	if err := validateLink(target); err != nil {
		target, err = promptLink(os.Stdin, os.Stdout, target)
		if err != nil {
			log.Fatal("Unable to read link: ", err)
		}
	}

	result, err := a.Pipeline.Run(ctx, target, profile)
	if result != nil {
		fmt.Println(renderSummary(result))
	}
	if err != nil {
		log.Fatal("Run failed: ", err)
	}
}
