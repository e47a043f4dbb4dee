package scraper

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// ProblemRecord is one parsed row of the hub page.
type ProblemRecord struct {
	Name      string
	Result    int
	SolveDate *time.Time
	// Pos is the document order of the row's last occurrence, kept so that
	// downstream sorting can break ties in encounter order.
	Pos int
}

// ErrNoData reports that the page contained no recognizable structure at all.
// Upstream this is indistinguishable from a user with no problems, so callers
// must treat the (empty) result as "no update"; the sentinel only aids
// diagnosis.
var ErrNoData = errors.New("no sets or problem rows found in page")

// RowError is a fatal classification failure for a single problem row.
type RowError struct {
	ProblemID int
	Status    string
	Reason    string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("problem %d: %s (status %q)", e.ProblemID, e.Reason, e.Status)
}

const solveDateLayout = "Mon 02 Jan 2006"

var (
	problemIDRe = regexp.MustCompile(`problemid=([0-9]+)`)
	scoreRe     = regexp.MustCompile(`^([0-9]+)%`)
	dateRe      = regexp.MustCompile(`^Finished on ([^,]+),`)
)

// Parse extracts per-problem records from the authenticated "expand all" view
// of the hub page. It is a pure function of the input text. A later row for
// the same problem id overwrites an earlier one.
func Parse(html string) (map[int]ProblemRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("unreadable page: %w", err)
	}

	setCount := doc.Find(".expfirst a[name]").Length()

	records := make(map[int]ProblemRecord)
	pos := 0
	var rowErr error
	doc.Find(`a[href*="problem.pl"]`).EachWithBreak(func(_ int, link *goquery.Selection) bool {
		href, _ := link.Attr("href")
		m := problemIDRe.FindStringSubmatch(href)
		if m == nil {
			return true
		}
		id, err := strconv.Atoi(m[1])
		if err != nil {
			return true
		}

		statusCell := link.Parent().Next()
		if !statusCell.HasClass("exp") {
			return true
		}
		status := strings.TrimSpace(statusCell.Text())

		result, solveDate, err := classifyStatus(status)
		if err != nil {
			rowErr = &RowError{ProblemID: id, Status: status, Reason: err.Error()}
			return false
		}

		records[id] = ProblemRecord{
			Name:      link.Text(),
			Result:    result,
			SolveDate: solveDate,
			Pos:       pos,
		}
		pos++
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}

	if len(records) == 0 && setCount == 0 {
		return records, ErrNoData
	}
	return records, nil
}

// classifyStatus maps a raw status cell to a result percentage and an
// optional solve date. Finished rows must carry a parseable date and partial
// rows a leading percentage; anything else is fatal for the row.
func classifyStatus(status string) (int, *time.Time, error) {
	switch {
	case strings.HasPrefix(status, "Finished"):
		m := dateRe.FindStringSubmatch(status)
		if m == nil {
			return 0, nil, errors.New("finished row without a solve date")
		}
		date, err := time.Parse(solveDateLayout, m[1])
		if err != nil {
			return 0, nil, fmt.Errorf("unparseable solve date %q", m[1])
		}
		return 100, &date, nil
	case strings.HasPrefix(status, "New"), strings.HasPrefix(status, "Viewed"):
		return 0, nil, nil
	default:
		m := scoreRe.FindStringSubmatch(status)
		if m == nil {
			return 0, nil, errors.New("status without a leading percentage")
		}
		score, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, nil, fmt.Errorf("unparseable percentage %q", m[1])
		}
		return score, nil, nil
	}
}
