package scraper

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dancojocaru2000/new-infofer-scraper/pkg/scraper/model"
)

// All extractors operate on collapsed text (util.CollapseSpaces), so the
// patterns use plain spaces. The vocabulary is the Romanian phrasing of the
// source site; any change there surfaces as a ParseError.

const roLetters = `A-Za-zăâîșțĂÂÎȘȚ`

var (
	trainInfoRegexp = regexp.MustCompile(`^([A-Z-]+) ([0-9]+) în ([0-9.]+)$`)
	operatorRegexp  = regexp.MustCompile(`^Operat de (.+)$`)
	routeRegexp     = regexp.MustCompile(`^Parcurs tren ([` + roLetters + ` ]+)[-–]([` + roLetters + ` ]+)$`)

	statusLineRegexp = regexp.MustCompile(
		`^(?:Fără|([0-9]+) min) (întârziere|mai devreme) la (trecerea fără oprire prin|sosirea în|plecarea din) (.+)\.$`)

	kmRegexp           = regexp.MustCompile(`^km ([0-9]+)$`)
	stoppingTimeRegexp = regexp.MustCompile(`^([0-9]+) (min|sec) oprire$`)
	platformRegexp     = regexp.MustCompile(`^linia (.+)$`)

	trainArrDepStatusRegexp = regexp.MustCompile(
		`^(?:(la timp)|(?:([+-][0-9]+) min \((?:întârziere|mai devreme)\)))(\*?)$`)

	trainNumberChangeNoteRegexp = regexp.MustCompile(`^Trenul își schimbă numărul în ([A-Z-]+) ([0-9]+)$`)
	departsAsNoteRegexp         = regexp.MustCompile(`^Trenul pleacă cu numărul ([A-Z-]+) ([0-9]+) în ([0-9]{2})\.([0-9]{2})\.([0-9]{4})$`)
	receivingWagonsNoteRegexp   = regexp.MustCompile(`^Trenul primește vagoane de la (.+)\.$`)
	detachingWagonsNoteRegexp   = regexp.MustCompile(`^Trenul detașează vagoane pentru stația (.+)\.$`)

	stationInfoRegexp = regexp.MustCompile(`^([` + roLetters + `.0-9 ]+) în ([0-9.]+)$`)

	stationStoppingTimeRegexp = regexp.MustCompile(
		`^(necunoscută \(stație terminus\))|(?:([0-9]+) (min|sec) \((?:începând cu|până la) ([0-9]{1,2}:[0-9]{2})\))$`)

	stationStatusRegexp = regexp.MustCompile(
		`^(?:la timp|([+-]?[0-9]+) min \((?:întârziere|mai devreme)\))(\*?)$`)

	trainURLDateRegexp = regexp.MustCompile(`Date=([0-9]{2})\.([0-9]{2})\.([0-9]{4})`)

	depArrRegexp       = regexp.MustCompile(`^(Ple|Sos) ([0-9]+) ([a-z]+)\.? ([0-9]+):([0-9]+)$`)
	kmRankNumberRegexp = regexp.MustCompile(`^([0-9]+) km cu ([A-Z-]+) ([0-9]+)$`)
)

var statusLineStates = map[string]model.StatusKind{
	"trecerea fără oprire prin": model.StatusKindPassing,
	"sosirea în":                model.StatusKindArrival,
	"plecarea din":              model.StatusKindDeparture,
}

var months = map[string]time.Month{
	"ian": time.January,
	"feb": time.February,
	"mar": time.March,
	"apr": time.April,
	"mai": time.May,
	"iun": time.June,
	"iul": time.July,
	"aug": time.August,
	"sep": time.September,
	"oct": time.October,
	"noi": time.November,
	"dec": time.December,
}

// The word the site uses for a cancelled arrival or departure.
const cancelledText = "anulat"

func parseTrainInfo(text string) (rank, number, date string, err error) {
	m := trainInfoRegexp.FindStringSubmatch(text)
	if m == nil {
		return "", "", "", newParseError("train info header", text)
	}
	return m[1], m[2], m[3], nil
}

func parseOperator(text string) (string, error) {
	m := operatorRegexp.FindStringSubmatch(text)
	if m == nil {
		return "", newParseError("operator", text)
	}
	return m[1], nil
}

func parseRoute(text string) (model.TrainRoute, error) {
	m := routeRegexp.FindStringSubmatch(text)
	if m == nil {
		return model.TrainRoute{}, newParseError("train route", text)
	}
	return model.TrainRoute{
		From: strings.TrimSpace(m[1]),
		To:   strings.TrimSpace(m[2]),
	}, nil
}

// parseStatusLine extracts the live status ("5 min întârziere la sosirea în
// Ploiești Vest."). The line is absent for trains without live data, so a
// mismatch is not an error.
func parseStatusLine(text string) *model.TrainStatus {
	m := statusLineRegexp.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	delay := 0
	if m[1] != "" {
		delay, _ = strconv.Atoi(m[1])
		if m[2] == "mai devreme" {
			delay = -delay
		}
	}
	return &model.TrainStatus{
		Delay:   delay,
		Station: m[4],
		State:   statusLineStates[m[3]],
	}
}

func parseKm(text string) (int, error) {
	m := kmRegexp.FindStringSubmatch(text)
	if m == nil {
		return 0, newParseError("km", text)
	}
	return strconv.Atoi(m[1])
}

// parseStoppingTime turns "2 min oprire" or "30 sec oprire" into seconds.
// Empty input means the train does not stop; nil is returned.
func parseStoppingTime(text string) (*int, error) {
	if text == "" {
		return nil, nil
	}
	m := stoppingTimeRegexp.FindStringSubmatch(text)
	if m == nil {
		return nil, newParseError("stopping time", text)
	}
	seconds, _ := strconv.Atoi(m[1])
	if m[2] == "min" {
		seconds *= 60
	}
	return &seconds, nil
}

// parsePlatform is a strictly optional decoration; anything that does not
// look like "linia N" yields no platform.
func parsePlatform(text string) string {
	m := platformRegexp.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}

// parseTrainArrDepStatus handles the per-stop status: "la timp",
// "+5 min (întârziere)", "-2 min (mai devreme)" or "anulat". A trailing *
// marks the reading as an estimate rather than a report from the train.
func parseTrainArrDepStatus(text string) (*model.Status, error) {
	if text == cancelledText {
		return &model.Status{Cancelled: true}, nil
	}
	m := trainArrDepStatusRegexp.FindStringSubmatch(text)
	if m == nil {
		return nil, newParseError("arrival/departure status", text)
	}
	status := &model.Status{Real: m[3] == ""}
	if m[1] == "" {
		delay, err := strconv.Atoi(m[2])
		if err != nil {
			return nil, newParseError("arrival/departure status delay", text)
		}
		status.Delay = delay
	}
	return status, nil
}

// parseStopNote matches the four known note variants. Unknown notes are
// skipped rather than failing the stop.
func parseStopNote(text string, loc *time.Location) *model.TrainStopNote {
	if m := trainNumberChangeNoteRegexp.FindStringSubmatch(text); m != nil {
		return &model.TrainStopNote{
			Kind:   model.NoteKindTrainNumberChange,
			Rank:   m[1],
			Number: m[2],
		}
	}
	if m := departsAsNoteRegexp.FindStringSubmatch(text); m != nil {
		day, _ := strconv.Atoi(m[3])
		month, _ := strconv.Atoi(m[4])
		year, _ := strconv.Atoi(m[5])
		departure := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
		return &model.TrainStopNote{
			Kind:          model.NoteKindDepartsAs,
			Rank:          m[1],
			Number:        m[2],
			DepartureDate: &departure,
		}
	}
	if m := detachingWagonsNoteRegexp.FindStringSubmatch(text); m != nil {
		return &model.TrainStopNote{
			Kind:    model.NoteKindDetachingWagons,
			Station: m[1],
		}
	}
	if m := receivingWagonsNoteRegexp.FindStringSubmatch(text); m != nil {
		return &model.TrainStopNote{
			Kind:    model.NoteKindReceivingWagons,
			Station: m[1],
		}
	}
	return nil
}

func parseStationInfo(text string) (name, date string, err error) {
	m := stationInfoRegexp.FindStringSubmatch(text)
	if m == nil {
		return "", "", newParseError("station info header", text)
	}
	return m[1], m[2], nil
}

// parseStationStoppingTime reads "2 min (începând cu 08:10)" style fragments
// from station boards. Unknown or unmatched values yield nil.
func parseStationStoppingTime(text string) *int {
	m := stationStoppingTimeRegexp.FindStringSubmatch(text)
	if m == nil || m[1] != "" || m[2] == "" {
		return nil
	}
	seconds, _ := strconv.Atoi(m[2])
	if m[3] == "min" {
		seconds *= 60
	}
	return &seconds
}

// parseStationStatus fills delay/real/cancelled on a station board entry.
// The status region is required once present, so a mismatch is a hard error.
func parseStationStatus(text string, status *model.StationStatus) error {
	if text == cancelledText {
		status.Cancelled = true
		return nil
	}
	m := stationStatusRegexp.FindStringSubmatch(text)
	if m == nil {
		return newParseError("station status", text)
	}
	status.Real = m[2] == ""
	if m[1] != "" {
		delay, err := strconv.Atoi(m[1])
		if err != nil {
			return newParseError("station status delay", text)
		}
		status.Delay = delay
	}
	return nil
}

// parseTrainURLDate extracts the departure date from a train link's
// Date=DD.MM.YYYY query parameter.
func parseTrainURLDate(rawURL string, loc *time.Location) (time.Time, error) {
	m := trainURLDateRegexp.FindStringSubmatch(rawURL)
	if m == nil {
		return time.Time{}, newParseError("train link date", rawURL)
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc), nil
}

func parseHourMinute(text string) (hour, minute int, err error) {
	parts := strings.Split(text, ":")
	if len(parts) != 2 {
		return 0, 0, newParseError("time of day", text)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, newParseError("time of day", text)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, newParseError("time of day", text)
	}
	return hour, minute, nil
}

// parseDepArr reads a "Ple 14 mar. 08:15" / "Sos 14 mar. 11:02" fragment.
// The source prints no year; if the resulting date falls more than a day in
// the past it is assumed to belong to the next year. The heuristic is kept
// exactly as the source behaves, misfires included.
func parseDepArr(text string, now time.Time, loc *time.Location) (time.Time, error) {
	m := depArrRegexp.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, newParseError("departure/arrival fragment", text)
	}
	month, ok := months[m[3]]
	if !ok {
		return time.Time{}, newParseError("month abbreviation", m[3])
	}
	day, _ := strconv.Atoi(m[2])
	hour, _ := strconv.Atoi(m[4])
	minute, _ := strconv.Atoi(m[5])

	result := time.Date(now.Year(), month, day, hour, minute, 0, 0, loc)
	if result.Before(now.AddDate(0, 0, -1)) {
		result = result.AddDate(1, 0, 0)
	}
	return result, nil
}

// parseKmRankNumber reads "397 km cu IR 1581" fragments from itinerary legs.
func parseKmRankNumber(text string) (km int, rank, number string, err error) {
	m := kmRankNumberRegexp.FindStringSubmatch(text)
	if m == nil {
		return 0, "", "", newParseError("km/rank/number", text)
	}
	km, _ = strconv.Atoi(m[1])
	return km, m[2], m[3], nil
}

// parseDateDDMMYYYY splits the scraped DD.MM.YYYY date string.
func parseDateDDMMYYYY(text string) (year int, month time.Month, day int, err error) {
	parts := strings.Split(text, ".")
	if len(parts) != 3 {
		return 0, 0, 0, newParseError("date", text)
	}
	day, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, 0, newParseError("date", text)
	}
	monthNumber, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, 0, newParseError("date", text)
	}
	year, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, 0, newParseError("date", text)
	}
	return year, time.Month(monthNumber), day, nil
}
