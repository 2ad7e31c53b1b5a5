package roster

import (
	"bytes"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
)

// JSON keys the enrichment jobs are allowed to write. Everything else on a record belongs to the curator.
const (
	FieldAPITeamID    = "apiTeamId"
	FieldAPIPlayerID  = "apiPlayerId"
	FieldLastClubGame = "lastClubGame"
)

var PipelineOwnedFields = []string{FieldAPITeamID, FieldAPIPlayerID, FieldLastClubGame}

const (
	UnknownDate     = "Unknown date"
	UnknownOpponent = "Unknown opponent"
)

// Record is one player entry of players.json.
//
// The typed fields are a read view validated at load time. The on-disk key order and raw values
// are kept alongside so that a save only rewrites keys the jobs own.
type Record struct {
	ID           PlayerID      `json:"id,omitempty"`
	Name         string        `json:"name" validate:"required"`
	Position     string        `json:"position,omitempty"`
	Number       *int          `json:"number,omitempty" validate:"omitempty,gte=0"`
	ClubTeam     string        `json:"clubTeam,omitempty"`
	APITeamID    *int64        `json:"apiTeamId,omitempty" validate:"omitempty,gt=0"`
	APIPlayerID  *int64        `json:"apiPlayerId,omitempty" validate:"omitempty,gt=0"`
	LastClubGame *LastClubGame `json:"lastClubGame,omitempty" validate:"omitempty"`

	fields []rawField
	dirty  []string
}

// LastClubGame summarizes the most recent completed club match of a player.
type LastClubGame struct {
	Date          string `json:"date" validate:"required,club_game_date"`
	Opponent      string `json:"opponent" validate:"required"`
	Competition   string `json:"competition,omitempty"`
	Minutes       *int   `json:"minutes,omitempty" validate:"omitempty,gte=0"`
	MinutesPlayed *int   `json:"minutesPlayed,omitempty" validate:"omitempty,gte=0"`
	Goals         *int   `json:"goals,omitempty" validate:"omitempty,gte=0"`
	Assists       *int   `json:"assists,omitempty" validate:"omitempty,gte=0"`
	Result        string `json:"result,omitempty" validate:"omitempty,result_label"`
}

func (r Record) DisplayName() string {
	if name := strings.TrimSpace(r.Name); name != "" {
		return name
	}
	if !r.ID.IsZero() {
		return r.ID.String()
	}
	return "unnamed player"
}

func (r Record) HasExternalIDs() bool {
	return r.APITeamID != nil && *r.APITeamID > 0 && r.APIPlayerID != nil && *r.APIPlayerID > 0
}

// Extra returns the raw value of a key the typed view does not model, such as "lock".
func (r Record) Extra(key string) ([]byte, bool) {
	for _, f := range r.fields {
		if f.key == key {
			return f.value, true
		}
	}
	return nil, false
}

func (r Record) Keys() []string {
	out := make([]string, 0, len(r.fields))
	for _, f := range r.fields {
		out = append(out, f.key)
	}
	return out
}

func (r Record) isDirty(key string) bool {
	for _, k := range r.dirty {
		if k == key {
			return true
		}
	}
	return false
}

func (r Record) markDirty(key string) Record {
	if r.isDirty(key) {
		return r
	}
	dirty := make([]string, 0, len(r.dirty)+1)
	dirty = append(dirty, r.dirty...)
	r.dirty = append(dirty, key)
	return r
}

// PlayerID accepts both string and numeric identifiers and writes them back in the same form.
type PlayerID struct {
	value   string
	numeric bool
}

func StringID(v string) PlayerID {
	return PlayerID{value: v}
}

func NumericID(v int64) PlayerID {
	return PlayerID{value: strconv.FormatInt(v, 10), numeric: true}
}

func (p PlayerID) String() string { return p.value }

func (p PlayerID) IsZero() bool { return p.value == "" }

func (p PlayerID) IsNumeric() bool { return p.numeric }

func (p PlayerID) MarshalJSON() ([]byte, error) {
	if p.numeric {
		return []byte(p.value), nil
	}
	return sonic.Marshal(p.value)
}

func (p *PlayerID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*p = PlayerID{}
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := sonic.Unmarshal(trimmed, &s); err != nil {
			return crerr.Wrap(err, "decode player id")
		}
		*p = StringID(s)
		return nil
	}
	if _, err := strconv.ParseFloat(string(trimmed), 64); err != nil {
		return crerr.Newf("player id must be a string or number, got %s", string(trimmed))
	}
	*p = PlayerID{value: string(trimmed), numeric: true}
	return nil
}
