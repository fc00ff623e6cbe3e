package mockapi_test

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"

	"github.com/chesstrail/chesstrail/internal/adapters/lichess"
	"github.com/chesstrail/chesstrail/internal/mockapi"
	"github.com/chesstrail/chesstrail/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(logger.WithWriter(&bytes.Buffer{})); err != nil {
		panic(err)
	}
}

func TestServer(t *testing.T) {
	ctx := context.Background()

	Convey("Given a mock upstream with ten players", t, func() {
		mock := mockapi.NewServer(&mockapi.Config{
			Players:    10,
			Seed:       42,
			Discipline: "Classical",
		})
		srv := httptest.NewServer(mock.Handler())
		defer srv.Close()

		client := lichess.New(lichess.WithBaseURL(srv.URL))

		Convey("When fetching the top five", func() {
			players, err := client.TopPlayers(ctx, 5, "classical")

			Convey("Then five players come back", func() {
				So(err, ShouldBeNil)
				So(players, ShouldHaveLength, 5)
			})

			Convey("And each player's history serves the tracked discipline", func() {
				So(err, ShouldBeNil)
				hist, err := client.RatingHistory(ctx, players[0].Username)
				So(err, ShouldBeNil)
				points, err := lichess.DisciplinePoints(hist, "Classical")
				So(err, ShouldBeNil)
				for _, p := range points {
					So(p, ShouldHaveLength, 4)
				}
			})
		})

		Convey("When asking for more players than exist", func() {
			players, err := client.TopPlayers(ctx, 50, "classical")

			Convey("Then the board is capped at the fixture size", func() {
				So(err, ShouldBeNil)
				So(players, ShouldHaveLength, 10)
			})
		})

		Convey("When fetching history for an unknown player", func() {
			_, err := client.RatingHistory(ctx, "nobody")

			Convey("Then the client surfaces the status error", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestServer_SeedReproducibility(t *testing.T) {
	ctx := context.Background()

	boardFor := func(seed int64) []lichess.Player {
		mock := mockapi.NewServer(&mockapi.Config{
			Players:    10,
			Seed:       seed,
			Discipline: "Classical",
		})
		srv := httptest.NewServer(mock.Handler())
		defer srv.Close()

		client := lichess.New(lichess.WithBaseURL(srv.URL))
		players, err := client.TopPlayers(ctx, 10, "classical")
		So(err, ShouldBeNil)
		return players
	}

	Convey("Given two servers built from the same seed", t, func() {
		first := boardFor(42)
		second := boardFor(42)

		Convey("Then they serve identical boards, usernames included", func() {
			So(second, ShouldResemble, first)
		})
	})

	Convey("Given two servers built from different seeds", t, func() {
		first := boardFor(42)
		second := boardFor(43)

		Convey("Then the boards differ", func() {
			So(second, ShouldNotResemble, first)
		})
	})
}
