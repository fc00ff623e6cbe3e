package logger_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/chesstrail/chesstrail/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	ctx := context.Background()

	Convey("Given an initialized logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		err := logger.Init(logger.WithWriter(&buf))
		So(err, ShouldBeNil)

		Convey("When logging at info level", func() {
			logger.Get().Info(ctx, "batch complete", logger.Int("players", 50))

			Convey("Then the message and fields appear in the output", func() {
				So(buf.String(), ShouldContainSubstring, "batch complete")
				So(buf.String(), ShouldContainSubstring, "players=50")
			})
		})

		Convey("When logging below the configured level", func() {
			So(logger.SetLevelString("warn"), ShouldBeNil)
			logger.Get().Info(ctx, "hidden message")

			Convey("Then nothing is emitted", func() {
				So(buf.String(), ShouldNotContainSubstring, "hidden message")
			})

			// Restore for other tests sharing the global.
			So(logger.SetLevelString("info"), ShouldBeNil)
		})

		Convey("When logging an error field", func() {
			logger.Get().Error(ctx, "fetch failed", logger.Error(errors.New("boom")))

			Convey("Then the error value is rendered", func() {
				So(buf.String(), ShouldContainSubstring, "boom")
			})
		})

		Convey("When using a named logger", func() {
			logger.Named("orchestrator").Info(ctx, "starting", logger.String("run", "abc"))

			Convey("Then fields are grouped under the name", func() {
				So(buf.String(), ShouldContainSubstring, "orchestrator.run=abc")
			})
		})
	})

	Convey("Given an invalid level string", t, func() {
		Convey("When setting the level", func() {
			err := logger.SetLevelString("loud")

			Convey("Then an error is returned", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
