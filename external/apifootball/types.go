package apifootball

import (
	"strconv"
	"strings"
)

type envelope[T any] struct {
	Response []T `json:"response"`
}

type teamItem struct {
	Team team `json:"team"`
}

type team struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type fixtureItem struct {
	Fixture fixtureInfo `json:"fixture"`
	League  league      `json:"league"`
	Teams   struct {
		Home team `json:"home"`
		Away team `json:"away"`
	} `json:"teams"`
	Goals struct {
		Home optionalInt `json:"home"`
		Away optionalInt `json:"away"`
	} `json:"goals"`
}

type fixtureInfo struct {
	ID     int64  `json:"id"`
	Date   string `json:"date"`
	Status struct {
		Short string `json:"short"`
	} `json:"status"`
}

type league struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Season int    `json:"season"`
}

type fixturePlayersItem struct {
	Team    team         `json:"team"`
	Players []playerLine `json:"players"`
}

type playerLine struct {
	Player struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"player"`
	Statistics []playerStatistics `json:"statistics"`
}

type playerStatistics struct {
	Games struct {
		Minutes optionalInt `json:"minutes"`
	} `json:"games"`
	Goals struct {
		Total   optionalInt `json:"total"`
		Assists optionalInt `json:"assists"`
	} `json:"goals"`
}

// optionalInt keeps "absent" apart from zero. Only non-negative integral JSON numbers are kept;
// null, missing, quoted, boolean and negative values all decode to absent.
type optionalInt struct {
	value *int
}

func (o *optionalInt) UnmarshalJSON(data []byte) error {
	o.value = nil

	text := strings.TrimSpace(string(data))
	if text == "" || !isNumberToken(text) {
		return nil
	}

	if v, err := strconv.Atoi(text); err == nil {
		if v >= 0 {
			o.value = &v
		}
		return nil
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil && f >= 0 && f == float64(int(f)) {
		v := int(f)
		o.value = &v
	}
	return nil
}

// isNumberToken reports whether a raw JSON value is a number literal rather than a string,
// boolean, null, object or array.
func isNumberToken(text string) bool {
	c := text[0]
	return c == '-' || (c >= '0' && c <= '9')
}

func (o optionalInt) Ptr() *int {
	if o.value == nil {
		return nil
	}
	v := *o.value
	return &v
}
