// ABOUTME: Course catalog scraper producing the courses.json data file
// ABOUTME: Fetches the course table, then each course page for description and schedule
package scrape

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/harper/course-advisor/internal/models"
	"github.com/harper/course-advisor/internal/vectorindex"
)

// notListed is the placeholder for detail fields the course page lacks.
const notListed = "N/A"

// Scraper builds a course catalog from the department course listing.
type Scraper struct {
	client  *http.Client
	baseURL string
	// delay between course page fetches, to stay polite
	delay time.Duration
}

// New creates a Scraper for the given base URL (e.g. https://cs.example.edu).
func New(baseURL string) *Scraper {
	return &Scraper{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		delay:   500 * time.Millisecond,
	}
}

// Catalog fetches the course listing and every course detail page, returning
// the full catalog in listing order.
func (s *Scraper) Catalog(ctx context.Context) ([]models.Course, error) {
	doc, err := s.fetch(ctx, s.baseURL+"/courses/")
	if err != nil {
		return nil, fmt.Errorf("fetching course list: %w", err)
	}

	courses := parseCourseList(doc, s.baseURL)
	if len(courses) == 0 {
		return nil, fmt.Errorf("no courses found at %s/courses/", s.baseURL)
	}

	for i := range courses {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		detail, err := s.fetch(ctx, courses[i].URL)
		if err != nil {
			// A single broken course page should not sink the whole scrape.
			courses[i].Description = notListed
			courses[i].Instructor = notListed
			courses[i].Meets = notListed
			continue
		}
		courses[i].Description, courses[i].Instructor, courses[i].Meets = parseCourseDetail(detail)
		time.Sleep(s.delay)
	}

	return courses, nil
}

// SaveCatalog writes the catalog atomically as indented JSON.
func SaveCatalog(path string, courses []models.Course) error {
	data, err := json.MarshalIndent(courses, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	return vectorindex.WriteFileAtomic(path, data)
}

// fetch GETs a URL and parses it into a goquery document.
func (s *Scraper) fetch(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}
	return goquery.NewDocumentFromReader(resp.Body)
}

// parseCourseList extracts code, title, and detail URL from the listing
// table. Rows without a /courses/info/ link are skipped.
func parseCourseList(doc *goquery.Document, baseURL string) []models.Course {
	var courses []models.Course

	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}

		link := cells.Eq(0).Find("a").First()
		href, ok := link.Attr("href")
		if !ok || !strings.HasPrefix(href, "/courses/info/") {
			return
		}

		courses = append(courses, models.Course{
			Code:  strings.TrimSpace(cells.Eq(0).Text()),
			Title: strings.TrimSpace(cells.Eq(1).Text()),
			URL:   baseURL + href,
		})
	})

	return courses
}

// parseCourseDetail extracts description, instructor, and meeting info from
// a course page. The description is the first substantial paragraph.
func parseCourseDetail(doc *goquery.Document) (description, instructor, meets string) {
	description = notListed
	doc.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		text := strings.TrimSpace(p.Text())
		if len(text) > 50 {
			description = text
			return false
		}
		return true
	})

	instructor = tableValue(doc, "Instructor(s):")
	meets = tableValue(doc, "Meets:")
	return description, instructor, meets
}

// tableValue finds the second cell of the row whose first cell contains label.
func tableValue(doc *goquery.Document, label string) string {
	value := notListed
	doc.Find("tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return true
		}
		if strings.Contains(cells.Eq(0).Text(), label) {
			value = strings.TrimSpace(cells.Eq(1).Text())
			return false
		}
		return true
	})
	return value
}
