package links

import (
	"fmt"

	"github.com/matzehuels/weekplan/pkg/errors"
	"github.com/matzehuels/weekplan/pkg/render/planner/draw"
	"github.com/matzehuels/weekplan/pkg/render/planner/layout"
)

// OverviewPage is the index of the weekly page.
const OverviewPage = 0

// PageCount is the number of pages in a document.
const PageCount = 1 + layout.DaysPerWeek

// Region is a clickable rectangle on one page.
type Region struct {
	PageIndex       int       `json:"page"`
	Rect            draw.Rect `json:"rect"`
	TargetPageIndex int       `json:"target"`
	Role            string    `json:"role"`
}

// DayPage returns the page index of day d.
func DayPage(d int) int { return 1 + d }

// Resolve maps a local target to a page index.
func Resolve(t layout.Target) (int, bool) {
	switch t.Kind {
	case layout.TargetOverview:
		return OverviewPage, true
	case layout.TargetDay:
		if t.Day >= 0 && t.Day < layout.DaysPerWeek {
			return DayPage(t.Day), true
		}
	}
	return -1, false
}

// Build resolves the anchors of results, which must be in document order,
// and validates the resulting graph. Regions are returned grouped by page in
// anchor order.
func Build(results []layout.Result) ([]Region, error) {
	if len(results) != PageCount {
		return nil, &errors.LinkError{PageIndex: -1, Reason: fmt.Sprintf("document has %d pages, want %d", len(results), PageCount)}
	}
	if err := checkOrder(results); err != nil {
		return nil, err
	}

	var regions []Region
	for i, res := range results {
		for _, a := range res.Anchors {
			target, ok := Resolve(a.Target)
			if !ok {
				return nil, &errors.LinkError{PageIndex: i, Anchor: a.Role, Target: a.Target.String(), Reason: "no page for target"}
			}
			if a.Rect.Empty() {
				return nil, &errors.LinkError{PageIndex: i, Anchor: a.Role, Target: a.Target.String(), Reason: "empty link region"}
			}
			for _, c := range res.Cards {
				if a.Rect.Intersects(c.Rect) {
					return nil, &errors.LinkError{PageIndex: i, Anchor: a.Role, Target: a.Target.String(),
						Reason: fmt.Sprintf("link region overlaps card %s", c.EventID)}
				}
			}
			regions = append(regions, Region{PageIndex: i, Rect: a.Rect, TargetPageIndex: target, Role: a.Role})
		}
	}

	if err := Validate(regions); err != nil {
		return nil, err
	}
	return regions, nil
}

func checkOrder(results []layout.Result) error {
	if k := results[0].Spec.Kind; k != layout.Weekly {
		return &errors.LinkError{PageIndex: 0, Reason: fmt.Sprintf("page is %s, want weekly", k)}
	}
	for d := range layout.DaysPerWeek {
		s := results[DayPage(d)].Spec
		if s.Kind != layout.Daily || s.Day != d {
			return &errors.LinkError{PageIndex: DayPage(d), Reason: fmt.Sprintf("page is %s day %d, want daily day %d", s.Kind, s.Day, d)}
		}
	}
	return nil
}

// Validate checks the navigation rules over a complete set of regions.
func Validate(regions []Region) error {
	byPage := ByPage(regions, PageCount)

	headers := make(map[int]int)
	for _, r := range byPage[OverviewPage] {
		if r.Role != layout.RoleDayHeader {
			continue
		}
		if r.TargetPageIndex == OverviewPage {
			return &errors.LinkError{PageIndex: OverviewPage, Anchor: r.Role, Target: "overview", Reason: "day header links to the overview"}
		}
		headers[r.TargetPageIndex]++
	}
	for d := range layout.DaysPerWeek {
		if n := headers[DayPage(d)]; n != 1 {
			return &errors.LinkError{PageIndex: OverviewPage, Anchor: layout.RoleDayHeader, Target: layout.DayTarget(d).String(),
				Reason: fmt.Sprintf("found %d day headers, want 1", n)}
		}
	}

	for d := range layout.DaysPerWeek {
		page := DayPage(d)
		var overview, prev, next int
		for _, r := range byPage[page] {
			switch r.Role {
			case layout.RoleOverview:
				if r.TargetPageIndex != OverviewPage {
					return linkMismatch(r, OverviewPage)
				}
				overview++
			case layout.RolePrev:
				if r.TargetPageIndex != page-1 || d == 0 {
					return linkMismatch(r, page-1)
				}
				prev++
			case layout.RoleNext:
				if r.TargetPageIndex != page+1 || d == layout.DaysPerWeek-1 {
					return linkMismatch(r, page+1)
				}
				next++
			}
		}
		if overview == 0 {
			return &errors.LinkError{PageIndex: page, Anchor: layout.RoleOverview, Target: "overview", Reason: "page has no link back to the overview"}
		}
		if d > 0 && prev != 1 {
			return &errors.LinkError{PageIndex: page, Anchor: layout.RolePrev, Target: layout.DayTarget(d - 1).String(),
				Reason: fmt.Sprintf("found %d previous-day links, want 1", prev)}
		}
		if d < layout.DaysPerWeek-1 && next != 1 {
			return &errors.LinkError{PageIndex: page, Anchor: layout.RoleNext, Target: layout.DayTarget(d + 1).String(),
				Reason: fmt.Sprintf("found %d next-day links, want 1", next)}
		}
	}

	for _, r := range regions {
		if r.TargetPageIndex < 0 || r.TargetPageIndex >= PageCount {
			return &errors.LinkError{PageIndex: r.PageIndex, Anchor: r.Role, Target: fmt.Sprintf("page %d", r.TargetPageIndex), Reason: "dangling link"}
		}
	}
	return nil
}

func linkMismatch(r Region, want int) error {
	return &errors.LinkError{PageIndex: r.PageIndex, Anchor: r.Role, Target: fmt.Sprintf("page %d", r.TargetPageIndex),
		Reason: fmt.Sprintf("want page %d", want)}
}

// ByPage groups regions by page index. Regions on pages at or beyond n are
// dropped.
func ByPage(regions []Region, n int) [][]Region {
	out := make([][]Region, n)
	for _, r := range regions {
		if r.PageIndex >= 0 && r.PageIndex < n {
			out[r.PageIndex] = append(out[r.PageIndex], r)
		}
	}
	return out
}
