package scraper

import (
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/dancojocaru2000/new-infofer-scraper/pkg/scraper/model"
	"github.com/dancojocaru2000/new-infofer-scraper/pkg/util"
)

// ScrapeStation fetches the arrival and departure boards of one station.
// The station name is diacritic-folded and dash-joined to form the URL
// slug. Returns nil (and no error) when the station is unknown.
func (s *Scraper) ScrapeStation(stationName string, date *time.Time) (*model.StationScrapeResult, error) {
	slug := strings.Join(strings.Fields(util.FoldDiacritics(stationName)), "-")

	query := url.Values{}
	if date != nil {
		query.Set("Date", s.formatQueryDate(*date))
	}

	document, err := s.fetchResultDocument([]string{"Statie", slug}, query, "Stations", "StationsResult")
	if err != nil {
		return nil, err
	}

	return parseStationDocument(document, s.loc)
}

// parseStationDocument navigates the results page: body>div[0] is the
// station info header, body>div[2] the departures board, body>div[3] the
// arrivals board.
func parseStationDocument(document *goquery.Document, loc *time.Location) (*model.StationScrapeResult, error) {
	bodyDivs := document.Find("body").ChildrenFiltered("div")
	if bodyDivs.Length() == 0 {
		return nil, nil
	}
	if bodyDivs.Length() < 4 {
		return nil, newParseError("station results layout", document.Find("body").Text())
	}

	name, date, err := parseStationInfo(collapsedText(bodyDivs.Eq(0).ChildrenFiltered("h2")))
	if err != nil {
		return nil, err
	}
	year, month, day, err := parseDateDDMMYYYY(date)
	if err != nil {
		return nil, err
	}

	result := &model.StationScrapeResult{
		StationName: name,
		Date:        date,
	}

	// Departures and arrivals are independent time series; each board gets
	// its own sequencer anchored to the requested day.
	result.Departures, err = parseStationBoard(bodyDivs.Eq(2), year, month, day, loc)
	if err != nil {
		return nil, err
	}
	result.Arrivals, err = parseStationBoard(bodyDivs.Eq(3), year, month, day, loc)
	if err != nil {
		return nil, err
	}

	return result, nil
}

func parseStationBoard(boardDiv *goquery.Selection, year int, month time.Month, day int, loc *time.Location) ([]model.StationArrDep, error) {
	board := childDivs(boardDiv).ChildrenFiltered("ul")
	if board.Length() == 0 {
		// The board is genuinely absent for stations with no traffic that
		// day in one direction.
		return nil, nil
	}

	sequencer := NewDateTimeSequencer(year, month, day, loc)

	var entries []model.StationArrDep
	var parseErr error
	board.ChildrenFiltered("li").EachWithBreak(func(_ int, entryLi *goquery.Selection) bool {
		entry, err := parseStationBoardEntry(entryLi, sequencer, loc)
		if err != nil {
			parseErr = err
			return false
		}
		entries = append(entries, *entry)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return entries, nil
}

func parseStationBoardEntry(entryLi *goquery.Selection, sequencer *DateTimeSequencer, loc *time.Location) (*model.StationArrDep, error) {
	divs := childDivs(entryLi)
	dataDiv := divs.Eq(0)

	dataColumns := childDivs(dataDiv)
	mainDivs := childDivs(dataColumns.Eq(0))
	timeDiv, destDiv, trainDiv := mainDivs.Eq(0), mainDivs.Eq(1), mainDivs.Eq(2)
	detailDivs := childDivs(childDivs(dataColumns.Eq(1)))
	operatorDiv, routeDiv, stoppingTimeDiv := detailDivs.Eq(0), detailDivs.Eq(1), detailDivs.Eq(2)

	entry := &model.StationArrDep{}

	hour, minute, err := parseHourMinute(collapsedText(childDivs(childDivs(childDivs(timeDiv))).Eq(1)))
	if err != nil {
		return nil, err
	}
	entry.Time = sequencer.Next(hour, minute, 0)

	entry.StoppingTime = parseStationStoppingTime(
		collapsedText(childDivs(childDivs(stoppingTimeDiv)).Eq(1)))

	trainCell := childDivs(childDivs(childDivs(trainDiv))).Eq(1)
	entry.Train.Rank = collapsedText(trainCell.ChildrenFiltered("span"))
	trainLink := trainCell.ChildrenFiltered("a")
	entry.Train.Number = collapsedText(trainLink)
	entry.Train.DepartureDate, err = parseTrainURLDate(trainLink.AttrOr("href", ""), loc)
	if err != nil {
		return nil, err
	}

	entry.Train.Terminus = collapsedText(childDivs(childDivs(childDivs(destDiv))).Eq(1))
	entry.Train.Operator = collapsedText(childDivs(childDivs(operatorDiv)).Eq(1))

	entry.Train.Route = []string{}
	routeText := collapsedText(childDivs(childDivs(routeDiv)).Eq(1))
	for _, station := range strings.Split(routeText, " - ") {
		if station != "" {
			entry.Train.Route = append(entry.Train.Route, station)
		}
	}

	// The status column only exists once the source has live data for the
	// entry; without it delay/platform stay at their defaults.
	if divs.Length() < 2 {
		return entry, nil
	}
	statusComponents := childDivs(childDivs(divs.Eq(1)).Eq(0))

	if err := parseStationStatus(collapsedText(statusComponents.Eq(0)), &entry.Status); err != nil {
		return nil, err
	}

	// Platform shows up as a second status sub-region.
	if statusComponents.Length() >= 2 {
		entry.Status.Platform = parsePlatform(collapsedText(statusComponents.Eq(1)))
	}

	return entry, nil
}
