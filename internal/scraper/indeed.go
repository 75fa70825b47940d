package scraper

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/job-radar/internal/model"
	"github.com/job-radar/internal/textparse"
)

const (
	indeedName     = "indeed"
	indeedBaseURL  = "https://www.indeed.com"
	indeedPageSize = 10
)

var (
	nextLinkTextRe = regexp.MustCompile(`(?i)\bnext\b`)
	headingSplitRe = regexp.MustCompile(`(?i)requirement|qualification`)
	benefitRe      = regexp.MustCompile(`(?i)benefit|perk|we offer`)
)

// IndeedScraper extracts job postings from Indeed search-results and
// detail pages. Indeed ships several generations of markup, so every
// field is read through an ordered chain of selectors; the first
// non-empty result wins.
type IndeedScraper struct {
	client  *HTTPClient
	scorer  *Scorer
	cfg     Config
	baseURL string
}

func NewIndeedScraper(cfg Config) *IndeedScraper {
	return &IndeedScraper{
		client:  NewHTTPClient(indeedName, cfg),
		scorer:  NewScorer(),
		cfg:     cfg,
		baseURL: indeedBaseURL,
	}
}

func (s *IndeedScraper) Name() string    { return indeedName }
func (s *IndeedScraper) BaseURL() string { return s.baseURL }

// Search streams unique, scored job records page by page. The stream
// terminates after the last page, after a page with no recognizable
// cards, when no next-page link exists, or with a single terminal error
// Result when a fetch fails.
func (s *IndeedScraper) Search(ctx context.Context, req model.SearchRequest) <-chan Result {
	out := make(chan Result)

	go func() {
		defer close(out)

		maxPages := req.MaxPages
		if maxPages <= 0 {
			maxPages = s.cfg.MaxPages
		}
		params := s.buildSearchParams(req)
		dedup := NewDeduplicator()

		for page := 0; page < maxPages; page++ {
			params.Set("start", strconv.Itoa(page*indeedPageSize))
			pageURL := s.baseURL + "/jobs?" + params.Encode()

			body, err := s.client.Fetch(ctx, pageURL)
			if err != nil {
				emit(ctx, out, Result{Err: fmt.Errorf("search page %d: %w", page+1, err)})
				return
			}

			doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
			if err != nil {
				emit(ctx, out, Result{Err: fmt.Errorf("parsing page %d: %w", page+1, err)})
				return
			}

			jobs := s.extractListings(doc)
			if len(jobs) == 0 {
				log.Printf("[%s] page %d has no job cards, stopping", indeedName, page+1)
				return
			}

			for _, job := range jobs {
				if dedup.Seen(job) {
					continue
				}
				if s.cfg.FetchDetails && job.SourceURL != "" {
					if detail, err := s.JobDetails(ctx, job.SourceURL); err != nil {
						log.Printf("[%s] detail fetch failed for %s: %v", indeedName, job.SourceURL, err)
					} else {
						mergeDetail(job, detail)
					}
				}
				s.finalize(job)
				if !emit(ctx, out, Result{Job: job}) {
					return
				}
			}

			if !hasNextPage(doc) {
				return
			}
		}
	}()

	return out
}

// buildSearchParams maps a search request onto Indeed's query string.
func (s *IndeedScraper) buildSearchParams(req model.SearchRequest) url.Values {
	params := url.Values{}
	params.Set("q", req.Query)
	params.Set("sort", "date")
	params.Set("limit", "50")
	if req.Location != "" {
		params.Set("l", req.Location)
	}

	f := req.Filters
	if f.SalaryMin > 0 {
		params.Set("salary", fmt.Sprintf("%d+", f.SalaryMin))
	}
	if jt, ok := indeedJobTypes[strings.ToLower(f.JobType)]; ok {
		params.Set("jt", jt)
	}
	if lvl, ok := indeedExperienceLevels[strings.ToLower(f.ExperienceLevel)]; ok {
		params.Set("explvl", lvl)
	}
	if f.RemoteOnly {
		params.Set("remotejob", "1")
	}
	if f.DatePostedDays > 0 {
		params.Set("fromage", strconv.Itoa(f.DatePostedDays))
	}
	return params
}

var indeedJobTypes = map[string]string{
	"full-time":  "fulltime",
	"full_time":  "fulltime",
	"fulltime":   "fulltime",
	"part-time":  "parttime",
	"part_time":  "parttime",
	"parttime":   "parttime",
	"contract":   "contract",
	"temporary":  "temporary",
	"internship": "internship",
}

var indeedExperienceLevels = map[string]string{
	"entry":  "entry_level",
	"mid":    "mid_level",
	"senior": "senior_level",
}

func (s *IndeedScraper) extractListings(doc *goquery.Document) []*model.Job {
	cards := doc.Find("div[data-jk], a[data-jk]")
	if cards.Length() == 0 {
		cards = doc.Find("td.resultContent")
	}

	var jobs []*model.Job
	cards.Each(func(_ int, card *goquery.Selection) {
		if job := s.extractCard(card); job != nil {
			jobs = append(jobs, job)
		}
	})
	return jobs
}

func (s *IndeedScraper) extractCard(card *goquery.Selection) *model.Job {
	title := firstNonEmpty(card,
		text("h2.jobTitle"),
		text("a[data-jk] span"),
		attr("span[title]", "title"),
		text("a.jcs-JobTitle"),
	)
	if title == "" {
		return nil
	}

	jobID := strings.TrimSpace(card.AttrOr("data-jk", ""))
	if jobID == "" {
		jobID = strings.TrimSpace(card.Find("a[data-jk]").First().AttrOr("data-jk", ""))
	}

	job := &model.Job{
		Source:      indeedName,
		SourceJobID: jobID,
		Title:       title,
		CompanyName: firstNonEmpty(card,
			text("span.companyName"),
			text("[data-testid='company-name']"),
			text("div.companyName"),
		),
		Location: firstNonEmpty(card,
			text("div[data-testid='job-location']"),
			text("span.locationsContainer"),
			text("div.companyLocation"),
		),
		Description: firstNonEmpty(card,
			text("div.job-snippet"),
			text("span.summary"),
			text("div[data-testid='job-snippet']"),
		),
		SalaryCurrency: "USD",
		ScrapedAt:      time.Now().UTC(),
	}
	if jobID != "" {
		job.SourceURL = s.baseURL + "/viewjob?jk=" + jobID
	}

	if salaryText := firstNonEmpty(card, text("span.salaryText"), text("div.salary-snippet"), text("div.salary-snippet-container")); salaryText != "" {
		applySalary(job, salaryText)
	}
	if dateText := firstNonEmpty(card, text("span.date"), text("span[data-testid='myJobsStateDate']")); dateText != "" {
		job.PostedDate = textparse.ParseDate(dateText, time.Now().UTC())
	}

	return job
}

// JobDetails fetches and parses a full job posting page. The search
// results URL is sent as Referer so the request looks like a click
// through from the listing.
func (s *IndeedScraper) JobDetails(ctx context.Context, jobURL string) (*model.Job, error) {
	body, err := s.client.FetchDetail(ctx, jobURL, s.baseURL+"/jobs")
	if err != nil {
		return nil, fmt.Errorf("fetching detail page: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing detail page: %w", err)
	}

	job := &model.Job{
		Source:    indeedName,
		SourceURL: jobURL,
		Title: firstNonEmpty(doc.Selection,
			text("h1.jobsearch-JobInfoHeader-title"),
			text("h1[data-testid='jobsearch-JobInfoHeader-title']"),
			text("h1.icl-u-xs-mb--xs"),
		),
		CompanyName: firstNonEmpty(doc.Selection,
			text("div[data-testid='inlineHeader-companyName']"),
			text("div.jobsearch-InlineCompanyRating div"),
			text("a[data-testid='company-name']"),
		),
		Location: firstNonEmpty(doc.Selection,
			text("div[data-testid='inlineHeader-companyLocation']"),
			text("div[data-testid='job-location']"),
		),
		Description: firstNonEmpty(doc.Selection,
			text("#jobDescriptionText"),
			text("div[data-testid='jobsearch-jobDescriptionText']"),
			text("div.jobsearch-jobDescriptionText"),
		),
		SalaryCurrency: "USD",
		ScrapedAt:      time.Now().UTC(),
	}

	if salaryText := firstNonEmpty(doc.Selection,
		text("span[data-testid='detailSalary']"),
		text("div#salaryInfoAndJobType span"),
		text("span.salaryText"),
	); salaryText != "" {
		applySalary(job, salaryText)
	}

	job.JobType = detectJobType(doc)
	job.Requirements = sectionAfterHeading(doc, headingSplitRe)
	job.Benefits = sectionItems(doc, benefitRe)

	return job, nil
}

// detectJobType scans the salary/type metadata strip for a known
// employment-type phrase.
func detectJobType(doc *goquery.Document) string {
	meta := doc.Find("div#salaryInfoAndJobType, div[data-testid='jobsearch-JobMetadataHeader']").Text()
	if meta == "" {
		meta = doc.Find("div.jobsearch-JobMetadataHeader-item").Text()
	}
	lower := strings.ToLower(meta)
	for _, jt := range []string{"full-time", "part-time", "contract", "temporary", "internship"} {
		if strings.Contains(lower, jt) {
			return jt
		}
	}
	return ""
}

// sectionAfterHeading finds the first heading matching re and returns
// the text of the block that follows it, split into lines.
func sectionAfterHeading(doc *goquery.Document, re *regexp.Regexp) []string {
	var lines []string
	doc.Find("h2, h3, h4, strong, b").EachWithBreak(func(_ int, heading *goquery.Selection) bool {
		if !re.MatchString(heading.Text()) {
			return true
		}
		block := heading.NextFiltered("ul, div, p")
		if block.Length() == 0 {
			block = heading.Parent().NextFiltered("ul, div, p")
		}
		if block.Length() == 0 {
			return true
		}
		if items := block.Find("li"); items.Length() > 0 {
			items.Each(func(_ int, li *goquery.Selection) {
				if t := strings.TrimSpace(li.Text()); t != "" {
					lines = append(lines, t)
				}
			})
		} else if t := strings.TrimSpace(block.Text()); t != "" {
			lines = append(lines, t)
		}
		return false
	})
	return lines
}

func sectionItems(doc *goquery.Document, re *regexp.Regexp) []string {
	return sectionAfterHeading(doc, re)
}

// mergeDetail copies non-empty detail-page fields onto the listing
// record, keeping listing values where the detail page had nothing.
func mergeDetail(job, detail *model.Job) {
	if detail == nil {
		return
	}
	if detail.Description != "" {
		job.Description = detail.Description
	}
	if detail.Location != "" {
		job.Location = detail.Location
	}
	if detail.JobType != "" {
		job.JobType = detail.JobType
	}
	if len(detail.Requirements) > 0 {
		job.Requirements = detail.Requirements
	}
	if len(detail.Benefits) > 0 {
		job.Benefits = detail.Benefits
	}
	if detail.SalaryMin != nil {
		job.SalaryMin = detail.SalaryMin
		job.SalaryMax = detail.SalaryMax
		job.SalaryPeriod = detail.SalaryPeriod
		job.SalaryCurrency = detail.SalaryCurrency
	}
}

// finalize derives the normalized and scored fields once the record is
// in its final textual shape.
func (s *IndeedScraper) finalize(job *model.Job) {
	job.LocationNormalized = textparse.NormalizeLocation(job.Location)
	job.IsRemote = textparse.IsRemoteLocation(job.Location) ||
		textparse.IsRemoteLocation(job.Description)

	skillText := job.Description
	if len(job.Requirements) > 0 {
		skillText += " " + strings.Join(job.Requirements, " ")
	}
	job.Skills = textparse.ExtractSkills(skillText, textparse.DefaultMaxSkills)

	job.RelevanceScore = s.scorer.Score(job)
}

func hasNextPage(doc *goquery.Document) bool {
	if doc.Find("a[aria-label='Next Page'], a[aria-label='Next']").Length() > 0 {
		return true
	}
	if doc.Find("a.pn").Length() > 0 {
		return true
	}
	found := false
	doc.Find("a").EachWithBreak(func(_ int, link *goquery.Selection) bool {
		if nextLinkTextRe.MatchString(link.Text()) {
			found = true
			return false
		}
		return true
	})
	return found
}

// fieldStrategy reads one candidate value for a field out of a
// selection.
type fieldStrategy func(*goquery.Selection) string

func firstNonEmpty(sel *goquery.Selection, strategies ...fieldStrategy) string {
	for _, strat := range strategies {
		if v := strings.TrimSpace(strat(sel)); v != "" {
			return v
		}
	}
	return ""
}

func text(selector string) fieldStrategy {
	return func(sel *goquery.Selection) string {
		return sel.Find(selector).First().Text()
	}
}

func attr(selector, name string) fieldStrategy {
	return func(sel *goquery.Selection) string {
		return sel.Find(selector).First().AttrOr(name, "")
	}
}

func applySalary(job *model.Job, raw string) {
	parsed := textparse.ParseSalary(raw)
	job.SalaryMin = parsed.Min
	job.SalaryMax = parsed.Max
	if parsed.Currency != "" {
		job.SalaryCurrency = parsed.Currency
	}
	if parsed.Period != "" {
		job.SalaryPeriod = parsed.Period
	}
}
