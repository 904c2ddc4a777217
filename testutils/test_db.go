package testutils

import (
	"context"
	"log"
	"time"

	"github.com/JTH10/fantasy-football-rankings-webapp/containers"
	"github.com/JTH10/fantasy-football-rankings-webapp/db"
	"github.com/JTH10/fantasy-football-rankings-webapp/model"
	"github.com/itbasis/go-clock"
)

var (
	TestQB  = &model.Player{Name: "Jalen Hurts", Position: model.POS_QB}
	TestWR  = &model.Player{Name: "CeeDee Lamb", Position: model.POS_WR}
	TestRB  = &model.Player{Name: "Breece Hall", Position: model.POS_RB}
	TestTE  = &model.Player{Name: "T.J. Hockenson", Position: model.POS_TE}
	TestDEF = &model.Player{Name: "Buffalo Bills", Position: model.POS_DEF}
)

type TestDB struct {
	container *containers.DBContainer
	DB        db.DB
	Clock     clock.Clock
}

// NewTestDB spins up a Postgres container and connects a store to it. The
// default roster seeded by db.New is cleared so each test starts empty.
func NewTestDB() *TestDB {
	container := containers.NewDBContainer()
	clock := clock.New()

	db, err := db.New(context.Background(), container.ConnectionString(), "", clock)
	if err != nil {
		log.Fatalf("error connecting to db in test container: %v", err)
	}

	if err := ClearRoster(db); err != nil {
		log.Fatalf("error clearing seeded roster in test container: %v", err)
	}

	return &TestDB{
		container: container,
		DB:        db,
		Clock:     clock,
	}
}

func (db *TestDB) Shutdown() {
	db.DB.Close()
	db.container.Shutdown()
}

// ClearRoster empties the store through its public API.
func ClearRoster(d db.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	players, err := d.ListPlayers(ctx)
	if err != nil {
		return err
	}
	for _, p := range players {
		if err := d.DeletePlayer(ctx, p.Name); err != nil {
			return err
		}
	}
	return nil
}

// InsertTestPlayers populates the store with one player per position group
// used by the tests.
func InsertTestPlayers(d db.DB) error {
	players := []*model.Player{
		TestQB,
		TestWR,
		TestRB,
		TestTE,
		TestDEF,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, p := range players {
		if err := d.AddPlayer(ctx, p); err != nil {
			return err
		}
	}

	return nil
}
