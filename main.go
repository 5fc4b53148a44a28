package main

import (
	"flag"
	"log"

	cron "gopkg.in/robfig/cron.v2"

	"bitbucket.org/jayflux/mypodcasts_library/api"
	"bitbucket.org/jayflux/mypodcasts_library/config"
	"bitbucket.org/jayflux/mypodcasts_library/library"
	"bitbucket.org/jayflux/mypodcasts_library/logger"
)

var (
	runSync    = flag.Bool("sync", false, "Run one library synchronization and exit")
	updater    = flag.Bool("cron", false, "Run the periodic synchronizer")
	apiFlag    = flag.Bool("api", false, "Start the HTTP API")
	configPath = flag.String("config", "", "Path to config.json (defaults to the viper search path)")
)

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger.Init(cfg.LogFile)
	log.Println("application started")

	if *runSync {
		library.Synchronize(cfg)
		return
	}

	if *updater {
		c := cron.New()
		c.AddFunc("@every 2h", func() { library.Synchronize(cfg) })
		c.Start()
		// First cycle right away, the schedule only covers the steady state.
		go library.Synchronize(cfg)
	}

	if *apiFlag {
		log.Fatal(api.Serve(cfg))
	}

	if *updater {
		select {}
	}
}

func loadConfig() (*config.Config, error) {
	if *configPath != "" {
		return config.LoadFrom(*configPath)
	}
	return config.Load()
}
