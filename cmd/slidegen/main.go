// Command slidegen pregenerates daily puzzles into a local sqlite
// archive, one certified puzzle per calendar date.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
	"golang.org/x/sync/errgroup"

	"github.com/slideout-game/server/internal/archive"
	"github.com/slideout-game/server/internal/sliding"
)

var log = logrus.New()

func newLogger(logFile string, verbose bool) error {
	log.SetOutput(os.Stderr)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	if logFile == "" {
		return nil
	}
	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   logFile,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Level:      logrus.InfoLevel,
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		return err
	}
	log.AddHook(hook)
	return nil
}

func main() {
	var (
		fromDate = flag.String("from", time.Now().UTC().Format("2006-01-02"), "first date to generate (YYYY-MM-DD)")
		days     = flag.Int("days", 7, "number of consecutive dates to generate")
		dbPath   = flag.String("db", "puzzles.db", "path to the sqlite puzzle archive")
		workers  = flag.Int("workers", 4, "concurrent generation workers")
		logFile  = flag.String("log-file", "", "rotating JSON log file (optional)")
		force    = flag.Bool("force", false, "regenerate dates already present in the archive")
		verbose  = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if err := newLogger(*logFile, *verbose); err != nil {
		log.WithError(err).Fatal("failed to set up logging")
	}

	start, err := time.Parse("2006-01-02", *fromDate)
	if err != nil {
		log.WithError(err).Fatal("invalid -from date")
	}
	if *days < 1 {
		log.Fatal("-days must be positive")
	}

	arc, err := archive.Open(*dbPath)
	if err != nil {
		log.WithError(err).Fatal("failed to open puzzle archive")
	}
	defer arc.Close()

	began := time.Now()

	var g errgroup.Group
	g.SetLimit(*workers)
	for i := 0; i < *days; i++ {
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		g.Go(func() error {
			if !*force {
				if _, err := arc.Get(date); err == nil {
					log.WithField("date", date).Debug("already archived, skipping")
					return nil
				}
			}

			seed := sliding.DailySeed(date)
			puzzle, err := sliding.Generate(seed, sliding.DefaultConfig())
			if err != nil {
				log.WithError(err).WithField("date", date).Error("generation failed")
				return err
			}
			puzzle.Date = date

			if err := arc.Put(puzzle); err != nil {
				log.WithError(err).WithField("date", date).Error("archive write failed")
				return err
			}

			log.WithFields(logrus.Fields{
				"date":          date,
				"seed":          seed,
				"optimal_moves": puzzle.OptimalMoves,
			}).Info("puzzle archived")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.WithError(err).Fatal("pregeneration failed")
	}

	count, err := arc.Count()
	if err != nil {
		log.WithError(err).Fatal("failed to count archive")
	}
	log.WithFields(logrus.Fields{
		"archived": count,
		"took":     time.Since(began).Round(time.Millisecond).String(),
	}).Info("done")
}
