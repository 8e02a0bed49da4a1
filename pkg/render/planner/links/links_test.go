package links

import (
	"testing"
	"time"

	"github.com/matzehuels/weekplan/pkg/errors"
	"github.com/matzehuels/weekplan/pkg/render/planner/config"
	"github.com/matzehuels/weekplan/pkg/render/planner/draw"
	"github.com/matzehuels/weekplan/pkg/render/planner/layout"
)

func renderWeek(t *testing.T) []layout.Result {
	t.Helper()
	e := layout.New(config.Default())
	week := layout.Week(time.Date(2025, 7, 7, 0, 0, 0, 0, time.UTC))

	specs := []layout.PageSpec{layout.NewWeeklySpec(e.Config(), week, nil)}
	for d := range layout.DaysPerWeek {
		specs = append(specs, layout.NewDailySpec(e.Config(), week, d, nil))
	}
	results := make([]layout.Result, len(specs))
	for i, s := range specs {
		res, err := e.Render(s)
		if err != nil {
			t.Fatalf("Render(%d) error = %v", i, err)
		}
		results[i] = res
	}
	return results
}

func TestBuild(t *testing.T) {
	regions, err := Build(renderWeek(t))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	byPage := ByPage(regions, PageCount)
	if n := len(byPage[OverviewPage]); n != layout.DaysPerWeek {
		t.Errorf("weekly regions = %d, want %d", n, layout.DaysPerWeek)
	}
	for d, r := range byPage[OverviewPage] {
		if r.TargetPageIndex != DayPage(d) {
			t.Errorf("day header %d targets page %d, want %d", d, r.TargetPageIndex, DayPage(d))
		}
	}
	for _, r := range regions {
		if r.TargetPageIndex < 0 || r.TargetPageIndex >= PageCount {
			t.Errorf("region %+v is dangling", r)
		}
	}
	if n := len(byPage[DayPage(0)]); n != 3 {
		t.Errorf("first day regions = %d, want 3", n)
	}
	if n := len(byPage[DayPage(3)]); n != 4 {
		t.Errorf("mid-week regions = %d, want 4", n)
	}
}

func TestBuildFailures(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func([]layout.Result) []layout.Result
		wantPage int
		wantRole string
	}{
		{
			name: "target past the week",
			mutate: func(rs []layout.Result) []layout.Result {
				rs[0].Anchors[6].Target = layout.DayTarget(9)
				return rs
			},
			wantPage: 0,
			wantRole: layout.RoleDayHeader,
		},
		{
			name: "duplicate day header",
			mutate: func(rs []layout.Result) []layout.Result {
				rs[0].Anchors[6].Target = layout.DayTarget(5)
				return rs
			},
			wantPage: 0,
			wantRole: layout.RoleDayHeader,
		},
		{
			name: "missing overview link",
			mutate: func(rs []layout.Result) []layout.Result {
				var kept []layout.Anchor
				for _, a := range rs[2].Anchors {
					if a.Role != layout.RoleOverview {
						kept = append(kept, a)
					}
				}
				rs[2].Anchors = kept
				return rs
			},
			wantPage: 2,
			wantRole: layout.RoleOverview,
		},
		{
			name: "next points backwards",
			mutate: func(rs []layout.Result) []layout.Result {
				for i, a := range rs[4].Anchors {
					if a.Role == layout.RoleNext {
						rs[4].Anchors[i].Target = layout.DayTarget(0)
					}
				}
				return rs
			},
			wantPage: 4,
			wantRole: layout.RoleNext,
		},
		{
			name: "anchor over a card",
			mutate: func(rs []layout.Result) []layout.Result {
				rs[1].Cards = append(rs[1].Cards, layout.Card{EventID: "x", Rect: rs[1].Anchors[0].Rect})
				return rs
			},
			wantPage: 1,
			wantRole: layout.RoleOverview,
		},
		{
			name: "empty region",
			mutate: func(rs []layout.Result) []layout.Result {
				rs[3].Anchors[0].Rect = draw.Rect{}
				return rs
			},
			wantPage: 3,
			wantRole: layout.RoleOverview,
		},
		{
			name: "pages out of order",
			mutate: func(rs []layout.Result) []layout.Result {
				rs[1], rs[2] = rs[2], rs[1]
				return rs
			},
			wantPage: 1,
		},
		{
			name: "missing page",
			mutate: func(rs []layout.Result) []layout.Result {
				return rs[:7]
			},
			wantPage: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.mutate(renderWeek(t)))
			if !errors.Is(err, errors.ErrCodeLinkResolutionFailure) {
				t.Fatalf("Build() error = %v, want LINK_RESOLUTION_FAILURE", err)
			}
			le := err.(*errors.LinkError)
			if le.PageIndex != tt.wantPage {
				t.Errorf("PageIndex = %d, want %d", le.PageIndex, tt.wantPage)
			}
			if le.Anchor != tt.wantRole {
				t.Errorf("Anchor = %q, want %q", le.Anchor, tt.wantRole)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		target layout.Target
		want   int
		ok     bool
	}{
		{layout.Overview(), 0, true},
		{layout.DayTarget(0), 1, true},
		{layout.DayTarget(6), 7, true},
		{layout.DayTarget(7), -1, false},
		{layout.DayTarget(-1), -1, false},
	}
	for _, tt := range tests {
		got, ok := Resolve(tt.target)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Resolve(%v) = %d, %v, want %d, %v", tt.target, got, ok, tt.want, tt.ok)
		}
	}
}
