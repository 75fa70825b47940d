package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/job-radar/internal/model"
)

func testIndeedConfig() Config {
	return Config{
		MaxPages:             5,
		DelayBetweenRequests: time.Millisecond,
		RequestTimeout:       5 * time.Second,
		MaxRetries:           2,
		RatePerMinute:        10000,
		RespectRobots:        false,
		FetchDetails:         false,
	}
}

func jobCard(id, title, company, location, salary, snippet string) string {
	return fmt.Sprintf(`<div class="job_seen_beacon" data-jk="%s">
  <h2 class="jobTitle"><span>%s</span></h2>
  <span class="companyName">%s</span>
  <div class="companyLocation">%s</div>
  <div class="salary-snippet">%s</div>
  <div class="job-snippet">%s</div>
  <span class="date">3 days ago</span>
</div>`, id, title, company, location, salary, snippet)
}

func resultsPage(cards []string, nextLink bool) string {
	var b strings.Builder
	b.WriteString("<html><body><div id='resultsCol'>")
	for _, c := range cards {
		b.WriteString(c)
	}
	b.WriteString("</div>")
	if nextLink {
		b.WriteString(`<nav><a aria-label="Next Page" href="#">&rsaquo;</a></nav>`)
	}
	b.WriteString("</body></html>")
	return b.String()
}

func collect(t *testing.T, stream <-chan Result) ([]*model.Job, error) {
	t.Helper()
	var jobs []*model.Job
	for res := range stream {
		if res.Err != nil {
			return jobs, res.Err
		}
		jobs = append(jobs, res.Job)
	}
	return jobs, nil
}

func TestIndeedSearchEndToEnd(t *testing.T) {
	pageOne := make([]string, 0, 10)
	for i := 1; i <= 8; i++ {
		pageOne = append(pageOne, jobCard(
			fmt.Sprintf("jk%02d", i),
			fmt.Sprintf("Business Analyst %d", i),
			fmt.Sprintf("Company %d", i),
			"Austin, TX",
			"$90,000 - $110,000 a year",
			"Analyze business operations using SQL, Excel and Tableau. SQL reporting daily.",
		))
	}
	// Two reposts of the first two jobs under fresh platform IDs.
	pageOne = append(pageOne,
		jobCard("jk91", "Business Analyst 1", "Company 1", "Austin, TX", "", "Repost."),
		jobCard("jk92", "Business Analyst 2", "Company 2", "Austin, TX", "", "Repost."),
	)

	pageTwo := make([]string, 0, 5)
	for i := 11; i <= 15; i++ {
		pageTwo = append(pageTwo, jobCard(
			fmt.Sprintf("jk%02d", i),
			fmt.Sprintf("Strategy Manager %d", i),
			fmt.Sprintf("Firm %d", i),
			"Remote",
			"$140K - $160K a year",
			"Lead product strategy. MBA preferred. Strong leadership and analytics.",
		))
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "business analyst", r.URL.Query().Get("q"))
		assert.Equal(t, "date", r.URL.Query().Get("sort"))
		switch r.URL.Query().Get("start") {
		case "0":
			fmt.Fprint(w, resultsPage(pageOne, true))
		case "10":
			fmt.Fprint(w, resultsPage(pageTwo, false))
		default:
			t.Errorf("unexpected start offset %q", r.URL.Query().Get("start"))
		}
	}))
	defer srv.Close()

	s := NewIndeedScraper(testIndeedConfig())
	s.baseURL = srv.URL

	jobs, err := collect(t, s.Search(context.Background(), model.SearchRequest{
		Query:    "business analyst",
		Location: "Austin, TX",
		MaxPages: 5,
	}))
	require.NoError(t, err)
	require.Len(t, jobs, 13)

	seen := map[string]struct{}{}
	for _, job := range jobs {
		assert.Equal(t, indeedName, job.Source)
		assert.NotEmpty(t, job.Title)
		assert.True(t, strings.HasPrefix(job.SourceURL, srv.URL+"/viewjob?jk="), "source url %q", job.SourceURL)
		assert.GreaterOrEqual(t, job.RelevanceScore, 0.0)
		assert.LessOrEqual(t, job.RelevanceScore, 1.0)

		fp := Fingerprint(job.Title, job.CompanyName, job.Location)
		_, dup := seen[fp]
		assert.False(t, dup, "duplicate slipped through: %s", job.Title)
		seen[fp] = struct{}{}

		skillSet := map[string]struct{}{}
		for _, skill := range job.Skills {
			lower := strings.ToLower(skill)
			_, dup := skillSet[lower]
			assert.False(t, dup, "duplicate skill %q on %s", skill, job.Title)
			skillSet[lower] = struct{}{}
		}
	}

	first := jobs[0]
	require.NotNil(t, first.SalaryMin)
	assert.InDelta(t, 90000, *first.SalaryMin, 0.01)
	require.NotNil(t, first.SalaryMax)
	assert.InDelta(t, 110000, *first.SalaryMax, 0.01)
	require.NotNil(t, first.PostedDate)

	remote := jobs[len(jobs)-1]
	assert.True(t, remote.IsRemote)
	require.NotNil(t, remote.SalaryMin)
	assert.InDelta(t, 140000, *remote.SalaryMin, 0.01)
}

func TestIndeedPaginationStopsOnEmptyPage(t *testing.T) {
	pageOne := []string{
		jobCard("a1", "Operations Analyst", "Acme", "Dallas, TX", "", "Ops work."),
		jobCard("a2", "Finance Manager", "Globex", "Dallas, TX", "", "Finance."),
		jobCard("a3", "Marketing Lead", "Initech", "Dallas, TX", "", "Marketing."),
	}

	var pagesServed int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pagesServed++
		if r.URL.Query().Get("start") == "0" {
			fmt.Fprint(w, resultsPage(pageOne, true))
			return
		}
		fmt.Fprint(w, "<html><body><div id='resultsCol'></div></body></html>")
	}))
	defer srv.Close()

	s := NewIndeedScraper(testIndeedConfig())
	s.baseURL = srv.URL

	jobs, err := collect(t, s.Search(context.Background(), model.SearchRequest{Query: "analyst", MaxPages: 5}))
	require.NoError(t, err)
	assert.Len(t, jobs, 3)
	assert.Equal(t, 2, pagesServed)
}

func TestIndeedStopsWithoutNextLink(t *testing.T) {
	var pagesServed int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pagesServed++
		fmt.Fprint(w, resultsPage([]string{
			jobCard("b1", "Consultant", "Bain", "Boston, MA", "", "Consulting."),
		}, false))
	}))
	defer srv.Close()

	s := NewIndeedScraper(testIndeedConfig())
	s.baseURL = srv.URL

	jobs, err := collect(t, s.Search(context.Background(), model.SearchRequest{Query: "consultant", MaxPages: 5}))
	require.NoError(t, err)
	assert.Len(t, jobs, 1)
	assert.Equal(t, 1, pagesServed)
}

func TestIndeedRateLimitPropagates(t *testing.T) {
	pageOne := []string{
		jobCard("c1", "Product Manager", "Acme", "Austin, TX", "", "Products."),
		jobCard("c2", "Program Manager", "Globex", "Austin, TX", "", "Programs."),
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("start") == "0" {
			fmt.Fprint(w, resultsPage(pageOne, true))
			return
		}
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	s := NewIndeedScraper(testIndeedConfig())
	s.baseURL = srv.URL

	jobs, err := collect(t, s.Search(context.Background(), model.SearchRequest{Query: "manager", MaxPages: 5}))
	assert.Len(t, jobs, 2, "page-1 records arrive before the failure")

	var rateErr *RateLimitedError
	require.ErrorAs(t, err, &rateErr)
}

func TestIndeedSearchContextCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cards := make([]string, 10)
		for i := range cards {
			cards[i] = jobCard(fmt.Sprintf("d%d", i), fmt.Sprintf("Role %d", i), fmt.Sprintf("Co %d", i), "NYC", "", "Work.")
		}
		fmt.Fprint(w, resultsPage(cards, true))
	}))
	defer srv.Close()

	s := NewIndeedScraper(testIndeedConfig())
	s.baseURL = srv.URL

	ctx, cancel := context.WithCancel(context.Background())
	stream := s.Search(ctx, model.SearchRequest{Query: "role", MaxPages: 5})

	res, ok := <-stream
	require.True(t, ok)
	require.NoError(t, res.Err)
	cancel()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-stream:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("stream did not close after cancellation")
		}
	}
}

func TestBuildSearchParams(t *testing.T) {
	s := NewIndeedScraper(testIndeedConfig())

	params := s.buildSearchParams(model.SearchRequest{
		Query:    "product manager",
		Location: "Remote",
		Filters: model.SearchFilters{
			SalaryMin:       100000,
			JobType:         "full-time",
			ExperienceLevel: "senior",
			RemoteOnly:      true,
			DatePostedDays:  7,
		},
	})

	assert.Equal(t, "product manager", params.Get("q"))
	assert.Equal(t, "Remote", params.Get("l"))
	assert.Equal(t, "date", params.Get("sort"))
	assert.Equal(t, "50", params.Get("limit"))
	assert.Equal(t, "100000+", params.Get("salary"))
	assert.Equal(t, "fulltime", params.Get("jt"))
	assert.Equal(t, "senior_level", params.Get("explvl"))
	assert.Equal(t, "1", params.Get("remotejob"))
	assert.Equal(t, "7", params.Get("fromage"))
}

func TestJobDetailsParsesSections(t *testing.T) {
	detailHTML := `<html><body>
  <h1 class="jobsearch-JobInfoHeader-title">Senior Strategy Consultant</h1>
  <div data-testid="inlineHeader-companyName">McKinsey</div>
  <div data-testid="inlineHeader-companyLocation">Chicago, IL</div>
  <div id="salaryInfoAndJobType"><span>$150,000 - $180,000 a year</span> - Full-time</div>
  <div id="jobDescriptionText">
    <p>Drive strategy engagements with analytics and leadership.</p>
    <h3>Requirements</h3>
    <ul><li>MBA from a top program</li><li>5+ years consulting</li></ul>
    <h3>Benefits</h3>
    <ul><li>Health insurance</li><li>401(k) matching</li></ul>
  </div>
</body></html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("Referer"), "/jobs")
		fmt.Fprint(w, detailHTML)
	}))
	defer srv.Close()

	s := NewIndeedScraper(testIndeedConfig())
	s.baseURL = srv.URL

	job, err := s.JobDetails(context.Background(), srv.URL+"/viewjob?jk=x1")
	require.NoError(t, err)

	assert.Equal(t, "Senior Strategy Consultant", job.Title)
	assert.Equal(t, "McKinsey", job.CompanyName)
	assert.Equal(t, "Chicago, IL", job.Location)
	assert.Equal(t, "full-time", job.JobType)
	require.NotNil(t, job.SalaryMin)
	assert.InDelta(t, 150000, *job.SalaryMin, 0.01)
	assert.Equal(t, []string{"MBA from a top program", "5+ years consulting"}, []string(job.Requirements))
	assert.Equal(t, []string{"Health insurance", "401(k) matching"}, []string(job.Benefits))
	assert.Contains(t, job.Description, "strategy engagements")
}
