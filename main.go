package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"time"

	"github.com/JTH10/fantasy-football-rankings-webapp/controller"
	"github.com/JTH10/fantasy-football-rankings-webapp/db"
	"github.com/JTH10/fantasy-football-rankings-webapp/platforms/fantasypros"
	"github.com/JTH10/fantasy-football-rankings-webapp/platforms/nfl"
	"github.com/JTH10/fantasy-football-rankings-webapp/platforms/rotopat"
	"github.com/JTH10/fantasy-football-rankings-webapp/web"
	"github.com/itbasis/go-clock"
	"github.com/joho/godotenv"
)

func main() {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	// A Postgres connection string selects the network store; without one
	// the roster lives in a local sqlite file.
	connString := os.Getenv("DATABASE_URL")
	sqlitePath := os.Getenv("SQLITE_PATH")
	if sqlitePath == "" {
		sqlitePath = "players.db"
	}

	portNum := 5050 // 5050 is the default
	port := os.Getenv("PORT")
	if port != "" {
		portNum, err = strconv.Atoi(port)
		if err != nil {
			log.Fatalf("error parsing port number: %v", err)
		}
	}

	clock := clock.New()
	db, err := db.New(context.Background(), connString, sqlitePath, clock)
	if err != nil {
		log.Fatalf("cannot open player store: %v", err)
	}
	defer db.Close()

	nflClient, err := nfl.New()
	if err != nil {
		log.Fatalf("error creating nfl client: %v", err)
	}

	rotopatClient, err := rotopat.New()
	if err != nil {
		log.Fatalf("error creating rotopat client: %v", err)
	}

	fantasyprosClient, err := fantasypros.New()
	if err != nil {
		log.Fatalf("error creating fantasypros client: %v", err)
	}

	ctrl, err := controller.New(clock, db, nflClient, rotopatClient, fantasyprosClient)
	if err != nil {
		log.Fatalf("error creating a new controller: %v", err)
	}

	server, err := web.NewServer(portNum, ctrl)
	if err != nil {
		log.Fatalf("error creating new web server: %v", err)
	}

	shutdown := make(chan bool)
	wg := &sync.WaitGroup{}

	// Setup a handler to catch ctrl-c signals and properly shutdown everything.
	intChannel := make(chan os.Signal, 2)
	signal.Notify(intChannel, os.Interrupt)
	go func() {
		<-intChannel
		close(shutdown)

		if err := waitTimeout(wg, 10*time.Second); err != nil {
			log.Printf("timed out waiting for proper shutdown")
			os.Exit(255)
		}
	}()

	// Start the web server
	wg.Add(1)
	go server.ListenAndServe(shutdown, wg)

	// Wait for everything to stop.
	wg.Wait()
	log.Printf("server shutdown")
}

func waitTimeout(wg *sync.WaitGroup, timeout time.Duration) error {
	c := make(chan any)
	go func() {
		defer close(c)
		wg.Wait()
	}()

	select {
	case <-c:
		return nil // completed normally
	case <-time.After(timeout):
		return errors.New("timed out waiting")
	}
}
