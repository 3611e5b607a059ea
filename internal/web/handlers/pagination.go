package handlers

import (
	"net/url"
	"strconv"
)

type pageLink struct {
	Number  int
	URL     string
	Current bool
}

type pagination struct {
	Prev  string
	Next  string
	Pages []pageLink
}

// pageLinks builds links for a window of pages around current. Empty params
// are dropped from the query string.
func pageLinks(base string, current, total int, params map[string]string) pagination {
	var p pagination
	if total <= 1 {
		return p
	}

	link := func(n int) string {
		q := url.Values{}
		for k, v := range params {
			if v != "" {
				q.Set(k, v)
			}
		}
		q.Set("page", strconv.Itoa(n))
		return base + "?" + q.Encode()
	}

	from := max(1, current-3)
	to := min(total, current+3)
	for n := from; n <= to; n++ {
		p.Pages = append(p.Pages, pageLink{Number: n, URL: link(n), Current: n == current})
	}
	if current > 1 {
		p.Prev = link(current - 1)
	}
	if current < total {
		p.Next = link(current + 1)
	}
	return p
}
