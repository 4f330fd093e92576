package enrich

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/ppiankov/bluecite/internal/logging"
	"github.com/ppiankov/bluecite/internal/model"
)

// PageMetadata is what a page says about itself in its head
type PageMetadata struct {
	Title         string
	Author        string
	PublishedDate string
	SiteName      string
}

// LookupWebsite fetches a cited page and reads its title and meta tags.
// robots.txt is honoured when configured.
func (s *Service) LookupWebsite(ctx context.Context, c model.Citation) Result {
	if c.URL == "" {
		return Result{Suggestions: []Record{}, Source: SourceURLMetadata}
	}

	return s.cached("website", c.URL, func() Result {
		result := Result{Suggestions: []Record{}, Source: SourceURLMetadata}

		record, err := s.fetchPageRecord(ctx, c.URL)
		if err != nil {
			s.logger.Debug("page metadata unavailable", logging.String("url", c.URL), logging.Err(err))
			result.Error = err.Error()
			return result
		}
		if record == nil {
			return result
		}

		result.Suggestions = append(result.Suggestions, *record)
		result.found()
		return result
	})
}

// fetchPageRecord returns nil without error when the page answered with
// anything but 200
func (s *Service) fetchPageRecord(ctx context.Context, rawURL string) (*Record, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return nil, fmt.Errorf("invalid URL %q", rawURL)
	}

	if s.robots != nil {
		allowed, _, err := s.robots.CanFetch(ctx, rawURL)
		if err != nil {
			return nil, fmt.Errorf("check robots.txt: %w", err)
		}
		if !allowed {
			return nil, ErrDisallowedByRobots
		}
	}

	status, body, err := s.fetch(ctx, rawURL, nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, nil
	}

	meta, err := ParsePageMetadata(string(body))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	siteName := meta.SiteName
	if siteName == "" {
		siteName = parsed.Host
	}

	return &Record{
		Title:         meta.Title,
		Author:        meta.Author,
		PublishedDate: meta.PublishedDate,
		SiteName:      siteName,
		URL:           rawURL,
	}, nil
}

// ParsePageMetadata reads <title>, the author and date meta tags and
// og:site_name from an HTML document. Dates are cut to YYYY-MM-DD.
func ParsePageMetadata(htmlContent string) (PageMetadata, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return PageMetadata{}, err
	}

	var meta PageMetadata
	var walk func(*html.Node)

	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if meta.Title == "" && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					meta.Title = strings.TrimSpace(n.FirstChild.Data)
				}
			case "meta":
				readMetaTag(n, &meta)
			case "body":
				// Metadata lives in the head
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)

	return meta, nil
}

func readMetaTag(n *html.Node, meta *PageMetadata) {
	var name, property, content string
	for _, attr := range n.Attr {
		switch strings.ToLower(attr.Key) {
		case "name":
			name = strings.ToLower(attr.Val)
		case "property":
			property = strings.ToLower(attr.Val)
		case "content":
			content = strings.TrimSpace(attr.Val)
		}
	}
	if content == "" {
		return
	}

	switch {
	case name == "author" && meta.Author == "":
		meta.Author = content
	case (property == "article:published_time" || name == "date") && meta.PublishedDate == "":
		if len(content) > 10 {
			content = content[:10]
		}
		meta.PublishedDate = content
	case property == "og:site_name" && meta.SiteName == "":
		meta.SiteName = content
	}
}
