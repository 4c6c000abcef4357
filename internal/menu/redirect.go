package menu

import (
	"net/url"
	"strings"
)

// Location is the host page's current path and query string.
type Location struct {
	Path  string
	Query string
}

// ParseLocation splits raw into path and query. A leading "?" on the query
// is dropped.
func ParseLocation(raw string) Location {
	path, query, _ := strings.Cut(raw, "?")
	return Location{Path: path, Query: query}
}

func (l Location) String() string {
	if l.Query == "" {
		return l.Path
	}
	return l.Path + "?" + l.Query
}

// Value returns the first value of name in the query, if parseable.
func (l Location) Value(name string) (string, bool) {
	values, err := url.ParseQuery(strings.TrimPrefix(l.Query, "?"))
	if err != nil {
		return "", false
	}
	if _, ok := values[name]; !ok {
		return "", false
	}
	return values.Get(name), true
}

// RedirectQuery sets name=value on query and returns the encoded result.
// With overwrite, or when query is empty, the existing parameters are
// dropped first. A query that cannot be parsed is treated as empty.
func RedirectQuery(query, name, value string, overwrite bool) string {
	query = strings.TrimPrefix(query, "?")
	params := url.Values{}
	if !overwrite && query != "" {
		if parsed, err := url.ParseQuery(query); err == nil {
			params = parsed
		}
	}
	params.Set(name, value)
	return params.Encode()
}

// RedirectURL builds the destination of r relative to loc.
func RedirectURL(loc Location, r Redirect, overwrite bool) string {
	return loc.Path + "?" + RedirectQuery(loc.Query, r.Param, r.Value, overwrite)
}
