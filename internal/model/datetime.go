package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// DateTime is an ISO-8601 local timestamp without a zone, the wire format
// bookers and owners exchange (`2006-01-02T15:04:05`).
type DateTime struct {
	time.Time
}

const dateTimeLayout = "2006-01-02T15:04:05"

func NewDateTime(t time.Time) DateTime {
	return DateTime{Time: t}
}

func (d *DateTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), "\"")
	if s == "" || s == "null" {
		return nil
	}
	t, err := time.Parse(dateTimeLayout, s)
	if err != nil {
		// tolerate clients sending fractional seconds
		if t, err = time.Parse(dateTimeLayout+".999999999", s); err != nil {
			return err
		}
	}
	d.Time = t
	return nil
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateTimeLayout) + `"`), nil
}

func (d *DateTime) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		d.Time = v
		return nil
	case nil:
		d.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("scan DateTime: unsupported type %T", src)
	}
}

func (d DateTime) Value() (driver.Value, error) {
	return d.Time, nil
}
