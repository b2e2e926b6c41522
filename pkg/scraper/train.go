package scraper

import (
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/dancojocaru2000/new-infofer-scraper/pkg/scraper/model"
)

// ScrapeTrain fetches the schedule of one train. It returns nil (and no
// error) when the source has never heard of the train, ErrTrainNotThisDay
// when the train exists but has no run on the requested day, and a full
// result otherwise. A nil date means "today" as decided by the source.
func (s *Scraper) ScrapeTrain(trainNumber string, date *time.Time) (*model.TrainScrapeResult, error) {
	query := url.Values{}
	if date != nil {
		query.Set("Date", s.formatQueryDate(*date))
	}

	document, err := s.fetchResultDocument([]string{"Tren", trainNumber}, query, "Trains", "TrainsResult")
	if err != nil {
		return nil, err
	}

	return parseTrainDocument(document, s.loc)
}

// parseTrainDocument navigates the results page. The page's top-level
// layout is positional: body>div[0] is the train info header and
// body>div[3] holds the per-group results.
func parseTrainDocument(document *goquery.Document, loc *time.Location) (*model.TrainScrapeResult, error) {
	bodyDivs := document.Find("body").ChildrenFiltered("div")
	if bodyDivs.Length() == 0 {
		// No info region at all: the train does not exist.
		return nil, nil
	}
	if bodyDivs.Length() < 4 {
		return nil, ErrTrainNotThisDay
	}

	infoDiv := childDivs(childDivs(bodyDivs.Eq(0))).First()

	rank, number, date, err := parseTrainInfo(collapsedText(infoDiv.ChildrenFiltered("h2")))
	if err != nil {
		return nil, err
	}
	operator, err := parseOperator(collapsedText(infoDiv.ChildrenFiltered("p")))
	if err != nil {
		return nil, err
	}
	year, month, day, err := parseDateDDMMYYYY(date)
	if err != nil {
		return nil, err
	}

	result := &model.TrainScrapeResult{
		Rank:     rank,
		Number:   number,
		Date:     date,
		Operator: operator,
		Groups:   []model.TrainGroup{},
	}

	var parseErr error
	childDivs(bodyDivs.Eq(3)).EachWithBreak(func(_ int, groupDiv *goquery.Selection) bool {
		group, err := parseTrainGroup(groupDiv, year, month, day, loc)
		if err != nil {
			parseErr = err
			return false
		}
		result.Groups = append(result.Groups, *group)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return result, nil
}

func parseTrainGroup(groupDiv *goquery.Selection, year int, month time.Month, day int, loc *time.Location) (*model.TrainGroup, error) {
	statusDiv := childDivs(groupDiv).First()

	route, err := parseRoute(collapsedText(statusDiv.ChildrenFiltered("h4")))
	if err != nil {
		return nil, err
	}

	group := &model.TrainGroup{
		Route: route,
		// Live status is only rendered for trains currently reporting.
		Status:   parseStatusLine(collapsedText(childDivs(statusDiv).First())),
		Stations: []model.TrainStopDescription{},
	}

	// One sequencer per group: stop times are presented in traversal order
	// and may cross midnight.
	sequencer := NewDateTimeSequencer(year, month, day, loc)

	var parseErr error
	statusDiv.ChildrenFiltered("ul").ChildrenFiltered("li").EachWithBreak(func(_ int, stopLi *goquery.Selection) bool {
		stop, err := parseTrainStop(stopLi, sequencer, loc)
		if err != nil {
			parseErr = err
			return false
		}
		group.Stations = append(group.Stations, *stop)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return group, nil
}

func parseTrainStop(stopLi *goquery.Selection, sequencer *DateTimeSequencer, loc *time.Location) (*model.TrainStopDescription, error) {
	columns := childDivs(childDivs(stopLi))
	left, middle, right := columns.Eq(0), columns.Eq(1), columns.Eq(2)

	middleInner := childDivs(childDivs(childDivs(middle)))
	stopDetails, stopNotes := middleInner.Eq(0), middleInner.Eq(1)
	details := childDivs(stopDetails)

	stop := &model.TrainStopDescription{
		Name:     collapsedText(details.Eq(0)),
		LinkName: lastPathSegment(details.Eq(0).Find("a").First().AttrOr("href", "")),
		Notes:    []model.TrainStopNote{},
	}

	km, err := parseKm(collapsedText(details.Eq(1)))
	if err != nil {
		return nil, err
	}
	stop.Km = km

	stop.StoppingTime, err = parseStoppingTime(collapsedText(details.Eq(2)))
	if err != nil {
		return nil, err
	}

	stop.Platform = parsePlatform(collapsedText(details.Eq(3)))

	// Arrival before departure: the sequencer must see times in document
	// order. Either side may be missing (origin has no arrival, terminus
	// no departure).
	stop.Arrival, err = parseTrainStopTime(left, sequencer)
	if err != nil {
		return nil, err
	}
	stop.Departure, err = parseTrainStopTime(right, sequencer)
	if err != nil {
		return nil, err
	}

	childDivs(childDivs(stopNotes)).Each(func(_ int, noteDiv *goquery.Selection) {
		if note := parseStopNote(collapsedText(noteDiv), loc); note != nil {
			stop.Notes = append(stop.Notes, *note)
		}
	})

	return stop, nil
}

// parseTrainStopTime reads one side (arrival or departure) of a stop.
// An empty sub-structure means that side does not apply; that is not an
// error.
func parseTrainStopTime(side *goquery.Selection, sequencer *DateTimeSequencer) (*model.TrainStopArrDep, error) {
	parts := childDivs(childDivs(childDivs(side)))
	if parts.Length() == 0 {
		return nil, nil
	}

	hour, minute, err := parseHourMinute(collapsedText(parts.Eq(0)))
	if err != nil {
		return nil, err
	}
	arrDep := &model.TrainStopArrDep{ScheduleTime: sequencer.Next(hour, minute, 0)}

	if parts.Length() >= 2 {
		status, err := parseTrainArrDepStatus(collapsedText(parts.Eq(1)))
		if err != nil {
			return nil, err
		}
		arrDep.Status = status
	}

	return arrDep, nil
}

func lastPathSegment(href string) string {
	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	return segments[len(segments)-1]
}
