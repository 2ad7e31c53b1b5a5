package roster

import (
	"regexp"
	"strings"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

var resultLabelRegex = regexp.MustCompile(`^[WLD] \d+-\d+$`)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func recordValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation("club_game_date", func(fl validator.FieldLevel) bool {
			return IsClubGameDate(fl.Field().String())
		})
		_ = v.RegisterValidation("result_label", func(fl validator.FieldLevel) bool {
			return resultLabelRegex.MatchString(fl.Field().String())
		})
		validate = v
	})
	return validate
}

// IsClubGameDate accepts YYYY-MM-DD or the placeholder written when the provider had no kickoff date.
func IsClubGameDate(value string) bool {
	if value == UnknownDate {
		return true
	}
	_, err := time.Parse(time.DateOnly, value)
	return err == nil
}

func (g LastClubGame) Validate() error {
	if err := recordValidator().Struct(g); err != nil {
		return crerr.Wrap(err, "invalid last club game")
	}
	return nil
}

func (r Record) Validate() error {
	if err := recordValidator().Struct(r); err != nil {
		return crerr.Wrapf(err, "invalid player record %q", r.DisplayName())
	}
	return nil
}

// ValidateCollection checks every record and that non-empty ids are unique. Ids are compared
// with their JSON kind, so the number 1 and the string "1" are distinct.
func ValidateCollection(records []Record) error {
	type idKey struct {
		value   string
		numeric bool
	}

	seen := make(map[idKey]int, len(records))
	for i, rec := range records {
		if err := rec.Validate(); err != nil {
			return crerr.Wrapf(err, "record[%d]", i)
		}
		if rec.ID.IsZero() {
			continue
		}
		key := idKey{value: strings.TrimSpace(rec.ID.String()), numeric: rec.ID.IsNumeric()}
		if prev, ok := seen[key]; ok {
			return crerr.Newf("record[%d]: duplicate id %q (first seen at record[%d])", i, key.value, prev)
		}
		seen[key] = i
	}
	return nil
}
