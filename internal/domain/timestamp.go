package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Layouts accepted when decoding date-times. Fractional seconds are accepted
// after the seconds field of the zoneless layout too.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Timestamp decodes an ISO-8601 date-time with or without a zone offset.
// Values without an offset are read as UTC.
type Timestamp time.Time

func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parsing time %q: not an ISO-8601 date-time", s)
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = Timestamp(v)
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(t))
}

func (t *Timestamp) ptr() *time.Time {
	if t == nil {
		return nil
	}
	v := time.Time(*t)
	return &v
}

func timestampPtr(t *time.Time) *Timestamp {
	if t == nil {
		return nil
	}
	v := Timestamp(*t)
	return &v
}

func (p *UserProfile) UnmarshalJSON(data []byte) error {
	type profileAlias UserProfile
	aux := struct {
		*profileAlias
		DateOfBirth Timestamp  `json:"DateOfBirth"`
		CreatedAt   Timestamp  `json:"CreatedAt"`
		UpdatedAt   *Timestamp `json:"UpdatedAt"`
	}{
		profileAlias: (*profileAlias)(p),
		DateOfBirth:  Timestamp(p.DateOfBirth),
		CreatedAt:    Timestamp(p.CreatedAt),
		UpdatedAt:    timestampPtr(p.UpdatedAt),
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	p.DateOfBirth = time.Time(aux.DateOfBirth)
	p.CreatedAt = time.Time(aux.CreatedAt)
	p.UpdatedAt = aux.UpdatedAt.ptr()
	return nil
}

func (c *Contact) UnmarshalJSON(data []byte) error {
	type contactAlias Contact
	aux := struct {
		*contactAlias
		CreatedAt Timestamp  `json:"CreatedAt"`
		UpdatedAt *Timestamp `json:"UpdatedAt"`
	}{
		contactAlias: (*contactAlias)(c),
		CreatedAt:    Timestamp(c.CreatedAt),
		UpdatedAt:    timestampPtr(c.UpdatedAt),
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	c.CreatedAt = time.Time(aux.CreatedAt)
	c.UpdatedAt = aux.UpdatedAt.ptr()
	return nil
}

func (b *ProfileBio) UnmarshalJSON(data []byte) error {
	type bioAlias ProfileBio
	aux := struct {
		*bioAlias
		CreatedAt Timestamp  `json:"CreatedAt"`
		UpdatedAt *Timestamp `json:"UpdatedAt"`
	}{
		bioAlias:  (*bioAlias)(b),
		CreatedAt: Timestamp(b.CreatedAt),
		UpdatedAt: timestampPtr(b.UpdatedAt),
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	b.CreatedAt = time.Time(aux.CreatedAt)
	b.UpdatedAt = aux.UpdatedAt.ptr()
	return nil
}
