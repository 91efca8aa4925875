package remote

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/dmuchiri/tributewall/internal/models"
)

// Defaults substituted at the wire boundary when the store omits a field.
const (
	defaultAuthorName = "Anonymous"
	defaultLocation   = "Kenya"
)

// looseString tolerates the store sending either a JSON string or a number.
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = looseString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = looseString(n.String())
	return nil
}

// looseTime tolerates RFC 3339 strings, date-only strings, and unix
// milliseconds (numeric or quoted). Unparseable values decode to zero.
type looseTime time.Time

func (t *looseTime) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		*t = looseTime(time.Time{})
		return nil
	}

	raw := strings.Trim(string(data), `"`)

	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*t = looseTime(time.UnixMilli(ms).UTC())
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			*t = looseTime(parsed.UTC())
			return nil
		}
	}

	*t = looseTime(time.Time{})
	return nil
}

// wireTribute is a tribute as the store serializes it.
type wireTribute struct {
	ID        looseString `json:"id"`
	Name      string      `json:"name"`
	Message   string      `json:"message"`
	Relation  string      `json:"relation"`
	Location  string      `json:"location"`
	UUID      looseString `json:"uuid"`
	Timestamp looseTime   `json:"timestamp"`
}

// toModel maps the loose wire shape into the strict Tribute, substituting
// defaults for missing fields. Candles are always lit on fetched records:
// the store does not track them, so a refresh can only re-light.
func (w *wireTribute) toModel() models.Tribute {
	name := strings.TrimSpace(w.Name)
	if name == "" {
		name = defaultAuthorName
	}

	location := strings.TrimSpace(w.Location)
	if location == "" {
		location = defaultLocation
	}

	relation := strings.TrimSpace(w.Relation)
	if !models.ValidRelationship(relation) {
		relation = models.RelationshipFan
	}

	return models.Tribute{
		ID:           string(w.ID),
		AuthorName:   name,
		Message:      w.Message,
		Relationship: relation,
		Location:     location,
		SubmittedAt:  time.Time(w.Timestamp),
		HasCandleLit: true,
		OwnerToken:   string(w.UUID),
	}
}

// listResponse is the store's list envelope.
type listResponse struct {
	Data []wireTribute `json:"data"`
}

// mutationResponse is the store's reply to append and remove posts.
type mutationResponse struct {
	Status  string      `json:"status"`
	ID      looseString `json:"id"`
	Message string      `json:"message"`
}

const (
	statusSuccess  = "success"
	statusDeleted  = "deleted"
	statusNotFound = "notfound"
	statusError    = "error"
)
