package fetch

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// periodRegex matches monthly directories such as "2025-04" or "2024-12-DLC1"
var periodRegex = regexp.MustCompile(`^\d{4}-\d{2}(-[A-Za-z0-9]+)?$`)

// ExtractIndexLinks returns the link targets of a directory index page,
// excluding parent and query links, in document order.
func ExtractIndexLinks(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var links []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "..") || strings.HasPrefix(href, "?") || strings.HasPrefix(href, "/") {
			return
		}
		links = append(links, href)
	})

	return links, nil
}

// ListPeriods lists the monthly periods published under baseURL, oldest first.
func ListPeriods(ctx context.Context, baseURL string, opts *Options) ([]string, error) {
	links, err := listIndex(ctx, strings.TrimRight(baseURL, "/")+"/", opts)
	if err != nil {
		return nil, err
	}

	var periods []string
	for _, link := range links {
		name := strings.TrimSuffix(link, "/")
		if strings.HasSuffix(link, "/") && periodRegex.MatchString(name) {
			periods = append(periods, name)
		}
	}
	sort.Strings(periods)
	return periods, nil
}

// ListReports lists the report files published for a period, sorted by
// format then rating.
func ListReports(ctx context.Context, baseURL, period string, opts *Options) ([]ReportID, error) {
	links, err := listIndex(ctx, fmt.Sprintf("%s/%s/", strings.TrimRight(baseURL, "/"), period), opts)
	if err != nil {
		return nil, err
	}

	var reports []ReportID
	for _, link := range links {
		id, ok := ParseReportFile(link)
		if !ok {
			continue
		}
		id.Period = period
		reports = append(reports, id)
	}

	sort.Slice(reports, func(i, j int) bool {
		if reports[i].Format != reports[j].Format {
			return reports[i].Format < reports[j].Format
		}
		return reports[i].Rating < reports[j].Rating
	})
	return reports, nil
}

func listIndex(ctx context.Context, indexURL string, opts *Options) ([]string, error) {
	body, err := Text(ctx, indexURL, opts)
	if err != nil {
		return nil, err
	}
	return ExtractIndexLinks(body)
}
