package lichess_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/chesstrail/chesstrail/internal/adapters/lichess"
	. "github.com/smartystreets/goconvey/convey"
)

const leaderboardBody = `{"users":[
	{"id":"drnykterstein","username":"DrNykterstein"},
	{"id":"rebeccaharris","username":"RebeccaHarris"}
]}`

const historyBody = `[
	{"name":"Bullet","points":[[2025,0,5,3200]]},
	{"name":"Classical","points":[[2025,0,5,2843],[2025,1,2,2851]]}
]`

func TestClient_TopPlayers(t *testing.T) {
	Convey("Given a server that returns a leaderboard", t, func() {
		var gotPath string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(leaderboardBody))
		}))
		defer srv.Close()

		client := lichess.New(lichess.WithBaseURL(srv.URL))

		Convey("When fetching the top players", func() {
			players, err := client.TopPlayers(context.Background(), 50, "classical")

			Convey("Then the players decode in leaderboard order", func() {
				So(err, ShouldBeNil)
				So(gotPath, ShouldEqual, "/api/player/top/50/classical")
				So(players, ShouldHaveLength, 2)
				So(players[0].Username, ShouldEqual, "DrNykterstein")
				So(players[1].Username, ShouldEqual, "RebeccaHarris")
			})
		})
	})

	Convey("Given a server that returns a non-success status", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
		}))
		defer srv.Close()

		client := lichess.New(lichess.WithBaseURL(srv.URL))

		Convey("When fetching the top players", func() {
			players, err := client.TopPlayers(context.Background(), 50, "classical")

			Convey("Then the error wraps the status sentinel", func() {
				So(players, ShouldBeNil)
				So(errors.Is(err, lichess.ErrStatus), ShouldBeTrue)
			})
		})
	})
}

func TestClient_RatingHistory(t *testing.T) {
	Convey("Given a server that returns a rating history", t, func() {
		var gotPath string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(historyBody))
		}))
		defer srv.Close()

		client := lichess.New(lichess.WithBaseURL(srv.URL))

		Convey("When fetching a player's history", func() {
			hist, err := client.RatingHistory(context.Background(), "DrNykterstein")

			Convey("Then all discipline blocks decode", func() {
				So(err, ShouldBeNil)
				So(gotPath, ShouldEqual, "/api/user/DrNykterstein/rating-history")
				So(hist, ShouldHaveLength, 2)
				So(hist[1].Name, ShouldEqual, "Classical")
				So(hist[1].Points, ShouldHaveLength, 2)
				So(hist[1].Points[0], ShouldResemble, []int{2025, 0, 5, 2843})
			})
		})
	})

	Convey("Given a cancelled context", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(historyBody))
		}))
		defer srv.Close()

		client := lichess.New(lichess.WithBaseURL(srv.URL))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		Convey("When fetching a player's history", func() {
			_, err := client.RatingHistory(ctx, "DrNykterstein")

			Convey("Then the call fails with the context error", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})
	})
}

func TestClient_WithTimeout(t *testing.T) {
	Convey("Given a server slower than the configured timeout", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write([]byte(leaderboardBody))
		}))
		defer srv.Close()

		shared := &http.Client{}

		Convey("When the timeout option comes after the client option", func() {
			client := lichess.New(
				lichess.WithBaseURL(srv.URL),
				lichess.WithHTTPClient(shared),
				lichess.WithTimeout(20*time.Millisecond),
			)
			_, err := client.TopPlayers(context.Background(), 50, "classical")

			Convey("Then the request times out", func() {
				So(err, ShouldNotBeNil)
			})

			Convey("And the shared client is left untouched", func() {
				So(shared.Timeout, ShouldEqual, 0)
			})
		})

		Convey("When the timeout option comes before the client option", func() {
			client := lichess.New(
				lichess.WithBaseURL(srv.URL),
				lichess.WithTimeout(20*time.Millisecond),
				lichess.WithHTTPClient(shared),
			)
			_, err := client.TopPlayers(context.Background(), 50, "classical")

			Convey("Then the timeout still applies", func() {
				So(err, ShouldNotBeNil)
			})

			Convey("And the shared client is left untouched", func() {
				So(shared.Timeout, ShouldEqual, 0)
			})
		})
	})
}

func TestDisciplinePoints(t *testing.T) {
	hist := []lichess.PerfHistory{
		{Name: "Bullet", Points: [][]int{{2025, 0, 5, 3200}}},
		{Name: "Classical", Points: [][]int{{2025, 0, 5, 2843}}},
	}

	Convey("Given a history containing the tracked discipline", t, func() {
		Convey("When selecting its points", func() {
			points, err := lichess.DisciplinePoints(hist, "Classical")

			Convey("Then the matching block's points are returned", func() {
				So(err, ShouldBeNil)
				So(points, ShouldResemble, [][]int{{2025, 0, 5, 2843}})
			})
		})
	})

	Convey("Given a history without the tracked discipline", t, func() {
		Convey("When selecting its points", func() {
			points, err := lichess.DisciplinePoints(hist, "Blitz")

			Convey("Then the error wraps the missing-discipline sentinel", func() {
				So(points, ShouldBeNil)
				So(errors.Is(err, lichess.ErrNoDiscipline), ShouldBeTrue)
			})
		})
	})
}
