package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/chesstrail/chesstrail/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoad_Defaults(t *testing.T) {
	Convey("Given no file and no env overrides", t, func() {
		t.Setenv("CHESSTRAIL_CONFIG", "")

		Convey("When loading", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then the defaults apply", func() {
				So(err, ShouldBeNil)
				So(cfg.TopCount, ShouldEqual, 50)
				So(cfg.PerfType, ShouldEqual, "classical")
				So(cfg.Discipline, ShouldEqual, "Classical")
				So(cfg.BaseURL, ShouldEqual, "https://lichess.org")
				So(cfg.OutputFile, ShouldEqual, "top_50_classical_players_ratings.csv")
				So(cfg.MetricsAddr, ShouldBeEmpty)
			})
		})
	})
}

func TestLoad_EnvOverrides(t *testing.T) {
	Convey("Given env overrides", t, func() {
		t.Setenv("CHESSTRAIL_CONFIG", "")
		t.Setenv("CHESSTRAIL_TOP_COUNT", "10")
		t.Setenv("CHESSTRAIL_OUTPUT_FILE", "out.csv")
		t.Setenv("CHESSTRAIL_LOG_LEVEL", "debug")

		Convey("When loading", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then env values win over defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.TopCount, ShouldEqual, 10)
				So(cfg.OutputFile, ShouldEqual, "out.csv")
				So(cfg.LogLevel, ShouldEqual, "debug")
			})
		})
	})
}

func TestLoad_File(t *testing.T) {
	Convey("Given a YAML config file", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "chesstrail.yaml")
		body := "top_count: 25\ndiscipline: Rapid\nperf_type: rapid\n"
		So(os.WriteFile(path, []byte(body), 0o600), ShouldBeNil)
		t.Setenv("CHESSTRAIL_CONFIG", path)

		Convey("When loading", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then file values win over defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.TopCount, ShouldEqual, 25)
				So(cfg.Discipline, ShouldEqual, "Rapid")
				So(cfg.PerfType, ShouldEqual, "rapid")
			})
		})

		Convey("When env overrides the file", func() {
			t.Setenv("CHESSTRAIL_TOP_COUNT", "5")
			cfg, err := config.Load(context.Background())

			Convey("Then env wins over the file", func() {
				So(err, ShouldBeNil)
				So(cfg.TopCount, ShouldEqual, 5)
				So(cfg.Discipline, ShouldEqual, "Rapid")
			})
		})
	})

	Convey("Given a missing config file path", t, func() {
		t.Setenv("CHESSTRAIL_CONFIG", "/does/not/exist.yaml")

		Convey("When loading", func() {
			_, err := config.Load(context.Background())

			Convey("Then the load sentinel is wrapped", func() {
				So(errors.Is(err, config.ErrLoadConfig), ShouldBeTrue)
			})
		})
	})
}

func TestLoad_Validation(t *testing.T) {
	Convey("Given an invalid override", t, func() {
		t.Setenv("CHESSTRAIL_CONFIG", "")

		Convey("When top_count is not positive", func() {
			t.Setenv("CHESSTRAIL_TOP_COUNT", "0")
			_, err := config.Load(context.Background())

			Convey("Then validation fails with the invalid sentinel", func() {
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})
		})

		Convey("When base_url is emptied", func() {
			// The env provider loads set-but-empty vars, so a blanked
			// base_url reaches validation rather than falling back.
			t.Setenv("CHESSTRAIL_BASE_URL", "")
			_, err := config.Load(context.Background())

			Convey("Then validation rejects it", func() {
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})
		})
	})
}
