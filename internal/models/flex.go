package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// FlexString accepts a JSON string, number or {"value": ...} object.
// Upstream is inconsistent about score fields across endpoints.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
	case '{':
		var obj struct {
			Value FlexString `json:"value"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		*f = obj.Value
	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*f = FlexString(strconv.FormatFloat(n, 'f', -1, 64))
	}
	return nil
}

func (f FlexString) String() string {
	return string(f)
}

// Genres decodes either a ", "-joined string or a JSON array of strings.
type Genres []string

func (g *Genres) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*g = nil
		return nil
	}

	if data[0] == '[' {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			// genreList entries are {"title": ...} objects on detail pages
			var objs []struct {
				Title string `json:"title"`
			}
			if objErr := json.Unmarshal(data, &objs); objErr != nil {
				return err
			}
			list = make([]string, 0, len(objs))
			for _, o := range objs {
				list = append(list, o.Title)
			}
		}
		*g = list
		return nil
	}

	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return err
	}
	*g = SplitGenres(joined)
	return nil
}

// SplitGenres splits the upstream "Action, Comedy" format, dropping blanks.
func SplitGenres(joined string) Genres {
	if strings.TrimSpace(joined) == "" {
		return nil
	}
	parts := strings.Split(joined, ",")
	out := make(Genres, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
