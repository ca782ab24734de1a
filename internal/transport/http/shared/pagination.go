package shared

import (
	"net/http"
	"strconv"
)

// Window is a resolved list window, in the same limit/offset shape the
// listing helpers consume: Limit <= 0 means the whole result set.
type Window struct {
	Limit  int
	Offset int
}

// ParseWindow reads limit, offset and the dashboard's 1-based page parameter
// from the query string. page is shorthand for offset = (page-1)*limit; an
// explicit offset wins, and page is meaningless without a bounded limit.
// maxLimit caps client-supplied limits; defaultLimit 0 leaves the window
// unbounded unless the client asks otherwise.
func ParseWindow(r *http.Request, defaultLimit, maxLimit int) Window {
	query := r.URL.Query()

	limit := defaultLimit
	if v, ok := positiveInt(query.Get("limit")); ok {
		limit = v
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}

	offset := 0
	switch {
	case query.Get("offset") != "":
		if v, ok := positiveInt(query.Get("offset")); ok {
			offset = v
		}
	case limit > 0:
		if page, ok := positiveInt(query.Get("page")); ok {
			offset = (page - 1) * limit
		}
	}
	return Window{Limit: limit, Offset: offset}
}

func positiveInt(raw string) (int, bool) {
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
