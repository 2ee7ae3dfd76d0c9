package progress

import (
	"math"
	"time"

	"github.com/alexanderramin/coursepulse/internal/domain"
)

// DefaultWrapAfter is the number of cells per row in wrap mode.
const DefaultWrapAfter = 16

type LayoutConfig struct {
	OrderBy   domain.OrderBy
	Mode      domain.BarMode
	WrapAfter int
	ShowNow   bool
	// Simple requests the reduced rendering used in overviews: every linked
	// cell is clickable and no now marker is drawn.
	Simple bool
	RTL    bool
}

func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		OrderBy:   domain.OrderByTime,
		Mode:      domain.BarSqueeze,
		WrapAfter: DefaultWrapAfter,
		ShowNow:   true,
	}
}

type ProgressCell struct {
	Activity domain.Activity
	State    domain.CompletionState
	Class    domain.CellClass
	Link     string
	HasLink  bool
	LinkMode domain.LinkMode
}

// NowMarker locates "today" among time-ordered cells. StopIndex is the index
// of the first cell not yet due; the marker is drawn inside HostCell.
type NowMarker struct {
	StopIndex  int
	HostCell   int
	Placement  domain.MarkerPlacement
	Arrow      domain.ArrowDirection
	LabelFirst bool
}

type ProgressBar struct {
	Cells        []ProgressCell
	Mode         domain.BarMode
	Rows         int
	CellWidthPct float64
	NowMarker    *NowMarker
	RTL          bool
}

type LayoutInput struct {
	Activities  []domain.Activity
	Completions Completions
	// Links overrides the target of individual cells, keyed by activity id.
	// Activities without an entry link to their own URL.
	Links map[int64]string
}

// Layout turns ordered activities and their resolved states into a bar. The
// now marker is only placed for time-ordered bars that are not configured to
// wrap, even when a wrap bar fits on one row.
func Layout(in LayoutInput, cfg LayoutConfig, now time.Time) ProgressBar {
	n := len(in.Activities)
	byTime := cfg.OrderBy != domain.OrderByCourse

	bar := ProgressBar{
		Cells: make([]ProgressCell, 0, n),
		Mode:  EffectiveMode(cfg, n),
		Rows:  1,
		RTL:   cfg.RTL,
	}

	if bar.Mode == domain.BarWrap {
		wrap := normalizeWrapAfter(cfg.WrapAfter)
		bar.Rows = int(math.Ceil(float64(n) / float64(wrap)))
		perRow := math.Ceil(float64(n) / float64(bar.Rows))
		bar.CellWidthPct = 100 / perRow
	} else if n > 0 {
		bar.CellWidthPct = 100 / float64(n)
	}

	for _, a := range in.Activities {
		state := in.Completions.State(a.ID)
		link := a.URL
		if override, ok := in.Links[a.ID]; ok {
			link = override
		}
		bar.Cells = append(bar.Cells, ProgressCell{
			Activity: a,
			State:    state,
			Class:    ClassifyCell(a, state, byTime, now),
			Link:     link,
			HasLink:  link != "",
			LinkMode: linkMode(link, a.Available, cfg.Simple),
		})
	}

	if byTime && cfg.Mode != domain.BarWrap && cfg.ShowNow && !cfg.Simple && n > 0 {
		bar.NowMarker = placeNowMarker(in.Activities, now, cfg.RTL)
	}

	return bar
}

// EffectiveMode returns the mode actually used for count cells. Wrap falls
// back to squeeze when everything fits on one row; unknown modes squeeze.
func EffectiveMode(cfg LayoutConfig, count int) domain.BarMode {
	switch cfg.Mode {
	case domain.BarScroll:
		return domain.BarScroll
	case domain.BarWrap:
		if count <= normalizeWrapAfter(cfg.WrapAfter) {
			return domain.BarSqueeze
		}
		return domain.BarWrap
	default:
		return domain.BarSqueeze
	}
}

// ClassifyCell maps a resolved state to a cell class. A failed activity is
// always flagged; an overdue incomplete one only when ordering by time.
func ClassifyCell(a domain.Activity, state domain.CompletionState, byTime bool, now time.Time) domain.CellClass {
	switch {
	case state == domain.CompletionSubmitted:
		return domain.CellSubmittedNotComplete
	case state == domain.CompletionComplete || state == domain.CompletionCompletePass:
		return domain.CellCompleted
	case state == domain.CompletionCompleteFail:
		return domain.CellNotCompleted
	case byTime && a.HasExpected() && a.ExpectedAt.Before(now):
		return domain.CellNotCompleted
	default:
		return domain.CellFutureNotCompleted
	}
}

// NowIndex returns the index of the first activity whose expected time is
// absent or not before now.
func NowIndex(activities []domain.Activity, now time.Time) int {
	i := 0
	for i < len(activities) && activities[i].HasExpected() && activities[i].ExpectedAt.Before(now) {
		i++
	}
	return i
}

func placeNowMarker(activities []domain.Activity, now time.Time, rtl bool) *NowMarker {
	stop := NowIndex(activities, now)
	m := &NowMarker{StopIndex: stop}

	switch {
	case stop == 0:
		m.HostCell = 0
		m.Placement = domain.MarkerFirst
		m.Arrow = domain.ArrowLeft
	case float64(stop) < float64(len(activities))/2:
		m.HostCell = stop - 1
		m.Placement = domain.MarkerFirstHalf
		m.Arrow = domain.ArrowLeft
	default:
		m.HostCell = stop - 1
		m.Placement = domain.MarkerLastHalf
		m.Arrow = domain.ArrowRight
		m.LabelFirst = true
	}

	if rtl {
		m.Arrow = mirror(m.Arrow)
	}
	return m
}

func mirror(d domain.ArrowDirection) domain.ArrowDirection {
	if d == domain.ArrowLeft {
		return domain.ArrowRight
	}
	return domain.ArrowLeft
}

func linkMode(link string, available, simple bool) domain.LinkMode {
	switch {
	case link == "":
		return domain.LinkNone
	case available || simple:
		return domain.LinkDirect
	default:
		return domain.LinkRestricted
	}
}

func normalizeWrapAfter(n int) int {
	if n == 0 {
		return DefaultWrapAfter
	}
	if n < 1 {
		return 1
	}
	return n
}
