package main

import (
	"os"
	"time"

	"github.com/kr/pretty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/dancojocaru2000/new-infofer-scraper/pkg/api"
	"github.com/dancojocaru2000/new-infofer-scraper/pkg/datamanager"
	"github.com/dancojocaru2000/new-infofer-scraper/pkg/database"

	_ "time/tzdata"
)

func main() {
	if os.Getenv("SCRAPER_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	if os.Getenv("SCRAPER_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:        "scraper",
		Description: "Scrapes Romanian railway schedules and serves them over a web API",

		Commands: []*cli.Command{
			api.RegisterCLI(),
			scrapeCLI(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}

// scrapeCLI runs one scrape and dumps the result, for poking at the source
// site without the API or the database.
func scrapeCLI() *cli.Command {
	dateFlag := &cli.TimestampFlag{
		Name:   "date",
		Usage:  "day to scrape (YYYY-MM-DD), defaults to today",
		Layout: "2006-01-02",
	}

	newManager := func() (*datamanager.DataManager, error) {
		if err := database.Connect(); err != nil {
			return nil, err
		}
		return datamanager.New()
	}

	return &cli.Command{
		Name:  "scrape",
		Usage: "Run a single scrape and print the result",
		Subcommands: []*cli.Command{
			{
				Name:      "train",
				Usage:     "scrape one train by number",
				ArgsUsage: "<number>",
				Flags:     []cli.Flag{dateFlag},
				Action: func(c *cli.Context) error {
					manager, err := newManager()
					if err != nil {
						return err
					}
					result, err := manager.FetchTrain(c.Args().First(), c.Timestamp("date"))
					if err != nil {
						return err
					}
					_, err = pretty.Println(result)
					return err
				},
			},
			{
				Name:      "station",
				Usage:     "scrape one station by name",
				ArgsUsage: "<name>",
				Flags:     []cli.Flag{dateFlag},
				Action: func(c *cli.Context) error {
					manager, err := newManager()
					if err != nil {
						return err
					}
					result, err := manager.FetchStation(c.Args().First(), c.Timestamp("date"))
					if err != nil {
						return err
					}
					_, err = pretty.Println(result)
					return err
				},
			},
			{
				Name:      "route",
				Usage:     "scrape the itineraries between two stations",
				ArgsUsage: "<from> <to>",
				Flags:     []cli.Flag{dateFlag},
				Action: func(c *cli.Context) error {
					manager, err := newManager()
					if err != nil {
						return err
					}
					result, err := manager.FetchItineraries(c.Args().Get(0), c.Args().Get(1), c.Timestamp("date"))
					if err != nil {
						return err
					}
					_, err = pretty.Println(result)
					return err
				},
			},
		},
	}
}
