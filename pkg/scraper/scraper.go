package scraper

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/dancojocaru2000/new-infofer-scraper/pkg/util"
)

const defaultBaseURL = "https://mersultrenurilor.infofer.ro/ro-RO/"

// The source publishes all times as local Romanian time.
const sourceTimezone = "Europe/Bucharest"

// Scraper drives the two-phase form interaction against the source site.
// Each entity kind gets its own instance; the cookie jar is required
// because the results endpoint validates the session started by the
// search page.
type Scraper struct {
	client  *http.Client
	baseURL *url.URL
	loc     *time.Location
}

func New() (*Scraper, error) {
	baseURL, err := url.Parse(defaultBaseURL)
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(sourceTimezone)
	if err != nil {
		return nil, fmt.Errorf("loading source timezone: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	transport := http.DefaultTransport
	env := util.GetEnvironmentVariables()
	if env["SCRAPER_PROXY_URL"] != "" {
		proxyURL, err := url.Parse(env["SCRAPER_PROXY_URL"])
		if err != nil {
			return nil, fmt.Errorf("parsing SCRAPER_PROXY_URL: %w", err)
		}
		transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
	}

	return &Scraper{
		client: &http.Client{
			Jar:       jar,
			Transport: transport,
			Timeout:   30 * time.Second,
		},
		baseURL: baseURL,
		loc:     loc,
	}, nil
}

// fetchResultDocument performs the shared protocol: GET the search page,
// harvest every named input under #form-search, POST the values to the
// results endpoint and parse the returned document. The two phases are
// strictly sequential; phase 2 replays what phase 1 harvested.
func (s *Scraper) fetchResultDocument(searchSegments []string, query url.Values, resultSegments ...string) (*goquery.Document, error) {
	searchURL := s.baseURL.JoinPath(searchSegments...)
	if len(query) > 0 {
		searchURL.RawQuery = query.Encode()
	}

	searchResponse, err := s.client.Get(searchURL.String())
	if err != nil {
		return nil, fmt.Errorf("fetching search page: %w", err)
	}
	defer searchResponse.Body.Close()

	searchDocument, err := goquery.NewDocumentFromReader(searchResponse.Body)
	if err != nil {
		return nil, fmt.Errorf("reading search page: %w", err)
	}

	form := searchDocument.Find("#form-search")
	if form.Length() == 0 {
		return nil, newParseError("search form", searchURL.String())
	}

	formValues := url.Values{}
	form.Find("input").Each(func(_ int, input *goquery.Selection) {
		name, hasName := input.Attr("name")
		if !hasName {
			return
		}
		formValues.Set(name, input.AttrOr("value", ""))
	})

	resultURL := s.baseURL.JoinPath(resultSegments...)
	resultResponse, err := s.client.PostForm(resultURL.String(), formValues)
	if err != nil {
		return nil, fmt.Errorf("fetching results page: %w", err)
	}
	defer resultResponse.Body.Close()

	resultDocument, err := goquery.NewDocumentFromReader(resultResponse.Body)
	if err != nil {
		return nil, fmt.Errorf("reading results page: %w", err)
	}

	return resultDocument, nil
}

// formatQueryDate renders a date the way the site's Date query parameter
// expects it: D.MM.YYYY, day without a leading zero.
func (s *Scraper) formatQueryDate(date time.Time) string {
	date = date.In(s.loc)
	return fmt.Sprintf("%d.%02d.%04d", date.Day(), int(date.Month()), date.Year())
}

func childDivs(sel *goquery.Selection) *goquery.Selection {
	return sel.ChildrenFiltered("div")
}

func collapsedText(sel *goquery.Selection) string {
	return util.CollapseSpaces(sel.Text())
}
