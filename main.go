package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/printcolor/api/api"
	"github.com/printcolor/api/datastore"
	"github.com/printcolor/api/iccinfo"
	"github.com/printcolor/api/migrations"
	"github.com/printcolor/api/pantone"
	"github.com/printcolor/api/scheduler"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	var c Config
	if err := envconfig.Process("PRINTCOLOR", &c); err != nil {
		log.Fatalln(err)
	}
	if err := c.Validate(); err != nil {
		log.Fatalln(err)
	}

	// The catalog must be complete before the first request is served
	catalog, err := pantone.Embedded()
	if err != nil {
		log.Fatalf("Failed to load Pantone catalog: %v", err)
	}
	log.Printf("Loaded %d Pantone reference colors", catalog.Len())

	metric, _ := c.Metric()
	policy, _ := c.ResolverPolicy()
	searcher := pantone.NewSearcher(catalog, metric)

	var invocationRepo datastore.InvocationRepository
	switch c.DatabaseType {
	case "postgres":
		connStr := datastore.BuildDBConnStr(c.DatabasePassword, c.DatabaseUser, c.DatabaseHost, c.DatabaseName, c.SSLMode)
		dbConn, dbErr := datastore.NewDB("postgres", connStr)
		if dbErr != nil {
			log.Fatalf("Failed to connect to database: %v", dbErr)
		}
		defer dbConn.Close()

		if err := migrations.RunMigrations(dbConn); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}

		repo, repoErr := datastore.NewInvocationDatabase(dbConn)
		if repoErr != nil {
			log.Fatalf("Failed to create invocation repository: %v", repoErr)
		}
		invocationRepo = repo
	default:
		log.Println("Using in-memory invocation journal")
		invocationRepo = datastore.NewInvocationMemory()
	}

	app := &api.Application{
		Config:         c.MakeAPIConfig(),
		Metric:         metric,
		Catalog:        catalog,
		Resolver:       pantone.NewResolver(catalog, policy),
		Searcher:       searcher,
		Classifier:     pantone.NewClassifier(searcher, c.ClassifierPolicy()),
		InvocationRepo: invocationRepo,
		Profiles:       iccinfo.NewLibrary(c.ICCProfileDir),
	}
	log.Printf("Reading ICC profiles from %s", app.Profiles.Dir())

	// Prune the invocation journal once a day
	journalScheduler := scheduler.NewScheduler(invocationRepo, c.RetentionDays)
	journalScheduler.Start()
	defer journalScheduler.Stop()

	mux := http.NewServeMux()

	log.Println("Print Color API Starting...")
	if err := app.Serve(mux); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
