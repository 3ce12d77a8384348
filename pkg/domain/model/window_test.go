package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/oakmoss-dev/ghrecap/pkg/domain/model"
)

func TestNewTimeWindow(t *testing.T) {
	now := time.Date(2024, 1, 8, 12, 30, 0, 0, time.UTC)

	t.Run("trailing seven days by default", func(t *testing.T) {
		w := model.NewTimeWindow(now, 7)
		gt.Equal(t, w.End, now)
		gt.Equal(t, w.Start, time.Date(2024, 1, 1, 12, 30, 0, 0, time.UTC))
	})

	t.Run("non-positive days falls back to seven", func(t *testing.T) {
		w := model.NewTimeWindow(now, 0)
		gt.Equal(t, w.Start, now.Add(-7*24*time.Hour))
	})

	t.Run("normalizes to UTC", func(t *testing.T) {
		jst := time.FixedZone("JST", 9*3600)
		w := model.NewTimeWindow(now.In(jst), 7)
		gt.Equal(t, w.End.Location(), time.UTC)
		gt.Equal(t, w.End, now)
	})
}

func TestTimeWindowContains(t *testing.T) {
	w := model.TimeWindow{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
	}

	t.Run("bounds are inclusive", func(t *testing.T) {
		gt.B(t, w.Contains(w.Start)).True()
		gt.B(t, w.Contains(w.End)).True()
	})

	t.Run("outside the window", func(t *testing.T) {
		gt.B(t, w.Contains(w.Start.Add(-time.Second))).False()
		gt.B(t, w.Contains(w.End.Add(time.Second))).False()
	})

	t.Run("converts the probe to UTC", func(t *testing.T) {
		jst := time.FixedZone("JST", 9*3600)
		inside := time.Date(2024, 1, 3, 1, 0, 0, 0, jst)
		gt.B(t, w.Contains(inside)).True()
	})
}

func TestTimeWindowNaming(t *testing.T) {
	w := model.TimeWindow{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
	}

	gt.Equal(t, w.Label(), "2024-01-01–2024-01-08")
	gt.Equal(t, w.Title(), "Weekly Recap: 2024-01-01–2024-01-08")
	gt.Equal(t, w.FilePath(), "recap/2024-01-01–2024-01-08.md")
}
