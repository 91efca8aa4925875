// Package models defines the tribute records shared by the wall engine,
// the local cache and the reference store.
package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmuchiri/tributewall/internal/common"
)

// Relationship labels the submitter's connection to the honoree. The set is
// closed; unknown values normalize to RelationshipFan at the wire boundary.
const (
	RelationshipFamily           = "Family"
	RelationshipFriend           = "Friend"
	RelationshipFellowMinister   = "Fellow Minister"
	RelationshipMentee           = "Mentee"
	RelationshipSpiritualLeader  = "Spiritual Leader"
	RelationshipFan              = "Fan"
	RelationshipInternationalFan = "International Fan"
)

// Relationships is the closed label set offered by the tribute form.
var Relationships = []string{
	RelationshipFamily,
	RelationshipFriend,
	RelationshipFellowMinister,
	RelationshipMentee,
	RelationshipSpiritualLeader,
	RelationshipFan,
	RelationshipInternationalFan,
}

// ValidRelationship reports whether label is one of the closed set.
func ValidRelationship(label string) bool {
	for _, r := range Relationships {
		if r == label {
			return true
		}
	}
	return false
}

// Tribute is a single remembrance on the wall.
type Tribute struct {
	// ID is assigned by the remote store on a successful append.
	// Empty means the record has not been accepted remotely.
	ID string `json:"id"`

	// AuthorName is the submitter's display name.
	AuthorName string `json:"authorName"`

	// Message is the tribute body, 10–500 characters.
	Message string `json:"message"`

	// Relationship is one of Relationships, or empty.
	Relationship string `json:"relationship,omitempty"`

	// Location is a free-text place string ("City, Country").
	Location string `json:"location,omitempty"`

	// SubmittedAt is the creation instant, immutable once assigned.
	SubmittedAt time.Time `json:"submittedAt"`

	// HasCandleLit is a local-only ceremonial flag. It never round-trips
	// through the remote store; any viewer may flip it to true.
	HasCandleLit bool `json:"hasCandleLit"`

	// OwnerToken is the submitting device's identity token. Used only to
	// authorize deletion, never displayed.
	OwnerToken string `json:"ownerToken"`
}

// OwnedBy reports whether token may delete this tribute.
func (t *Tribute) OwnedBy(token string) bool {
	return token != "" && t.OwnerToken == token
}

const (
	minNameLen    = 2
	minMessageLen = 10
	maxMessageLen = 500
)

// Draft is an unsubmitted tribute as typed into the form.
type Draft struct {
	AuthorName   string
	Message      string
	Relationship string
	Location     string
}

// Validate applies the form rules locally, before any network call:
// name at least 2 characters, message between 10 and 500 characters.
// Lengths are counted in runes so multi-byte names are not penalized.
func (d *Draft) Validate() error {
	name := strings.TrimSpace(d.AuthorName)
	if utf8.RuneCountInString(name) < minNameLen {
		return fmt.Errorf("%w: name must be at least %d characters", common.ErrValidation, minNameLen)
	}

	msg := strings.TrimSpace(d.Message)
	if n := utf8.RuneCountInString(msg); n < minMessageLen {
		return fmt.Errorf("%w: message must be at least %d characters", common.ErrValidation, minMessageLen)
	} else if n > maxMessageLen {
		return fmt.Errorf("%w: message must be less than %d characters", common.ErrValidation, maxMessageLen)
	}

	if d.Relationship != "" && !ValidRelationship(d.Relationship) {
		return fmt.Errorf("%w: unknown relationship %q", common.ErrValidation, d.Relationship)
	}

	return nil
}
