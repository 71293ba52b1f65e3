// Package citation resolves a summarized document against public
// bibliographic records so the output can carry a formatted reference.
package citation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// CrossrefClient queries the Crossref works API for bibliographic matches.
type CrossrefClient struct {
	baseURL string
	client  *http.Client
}

func NewCrossrefClient(baseURL string, timeout time.Duration) *CrossrefClient {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = "https://api.crossref.org"
	}
	return &CrossrefClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Work is one bibliographic record returned by a lookup.
type Work struct {
	Title     string
	Authors   []string
	Year      int
	Container string
	DOI       string
}

// Search returns up to rows candidate works for a free-form bibliographic
// query.
func (c *CrossrefClient) Search(ctx context.Context, query string, rows int) ([]Work, error) {
	if rows <= 0 {
		rows = 5
	}
	q := url.Values{}
	q.Set("query.bibliographic", query)
	q.Set("rows", strconv.Itoa(rows))
	q.Set("select", "title,author,issued,container-title,DOI")

	httpReq, _ := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/works?"+q.Encode(), nil)
	httpReq.Header.Set("User-Agent", "paperbrief/1.0")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("crossref request failed: %w", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		msg := strings.TrimSpace(string(body))
		if len(msg) > 256 {
			msg = msg[:256]
		}
		return nil, fmt.Errorf("crossref error %d: %s", resp.StatusCode, msg)
	}

	var parsed struct {
		Message struct {
			Items []struct {
				Title  []string `json:"title"`
				Author []struct {
					Given  string `json:"given"`
					Family string `json:"family"`
					Name   string `json:"name"`
				} `json:"author"`
				Issued struct {
					DateParts [][]int `json:"date-parts"`
				} `json:"issued"`
				ContainerTitle []string `json:"container-title"`
				DOI            string   `json:"DOI"`
			} `json:"items"`
		} `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode crossref response: %w", err)
	}

	works := make([]Work, 0, len(parsed.Message.Items))
	for _, item := range parsed.Message.Items {
		if len(item.Title) == 0 {
			continue
		}
		w := Work{Title: item.Title[0], DOI: item.DOI}
		for _, a := range item.Author {
			name := strings.TrimSpace(a.Given + " " + a.Family)
			if name == "" {
				name = strings.TrimSpace(a.Name)
			}
			if name != "" {
				w.Authors = append(w.Authors, name)
			}
		}
		if len(item.Issued.DateParts) > 0 && len(item.Issued.DateParts[0]) > 0 {
			w.Year = item.Issued.DateParts[0][0]
		}
		if len(item.ContainerTitle) > 0 {
			w.Container = item.ContainerTitle[0]
		}
		works = append(works, w)
	}
	return works, nil
}

// FormatCitation renders a work as a single citation line:
// authors (year). title. venue. DOI link.
func FormatCitation(w Work) string {
	var b strings.Builder
	if len(w.Authors) > 0 {
		b.WriteString(strings.Join(w.Authors, ", "))
	}
	if w.Year > 0 {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "(%d).", w.Year)
	} else if b.Len() > 0 {
		b.WriteString(".")
	}
	if b.Len() > 0 {
		b.WriteString(" ")
	}
	b.WriteString(strings.TrimSpace(w.Title))
	b.WriteString(".")
	if w.Container != "" {
		b.WriteString(" ")
		b.WriteString(w.Container)
		b.WriteString(".")
	}
	if w.DOI != "" {
		b.WriteString(" https://doi.org/")
		b.WriteString(w.DOI)
	}
	return b.String()
}
