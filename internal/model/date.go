package model

import (
	"database/sql/driver"
	"time"

	"github.com/pkg/errors"
)

// Date is a calendar date without a time component.
// It is stored as a DATE column and rendered as "2006-01-02" in JSON.
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	return Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// DaysUntil counts calendar days from d to other.
func (d Date) DaysUntil(other Date) int {
	return int(other.Sub(d.Time).Hours() / 24)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(time.DateOnly) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return errors.Errorf("date: invalid literal %s", s)
	}
	t, err := time.Parse(time.DateOnly, s[1:len(s)-1])
	if err != nil {
		return errors.Wrap(err, "date")
	}
	*d = NewDate(t)
	return nil
}

func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*d = NewDate(v)
		return nil
	case string:
		t, err := time.Parse(time.DateOnly, v)
		if err != nil {
			return errors.Wrap(err, "scan date")
		}
		*d = NewDate(t)
		return nil
	case []byte:
		return d.Scan(string(v))
	default:
		return errors.Errorf("scan date: unsupported type %T", src)
	}
}

// NullDate is a Date that may be absent, mirroring sql.NullTime.
type NullDate struct {
	Date  Date
	Valid bool
}

func NewNullDate(t time.Time) NullDate {
	return NullDate{Date: NewDate(t), Valid: true}
}

func (d NullDate) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte("null"), nil
	}
	return d.Date.MarshalJSON()
}

func (d *NullDate) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = NullDate{}
		return nil
	}
	if err := d.Date.UnmarshalJSON(data); err != nil {
		return err
	}
	d.Valid = true
	return nil
}

func (d NullDate) Value() (driver.Value, error) {
	if !d.Valid {
		return nil, nil
	}
	return d.Date.Value()
}

func (d *NullDate) Scan(src interface{}) error {
	if src == nil {
		*d = NullDate{}
		return nil
	}
	if err := d.Date.Scan(src); err != nil {
		return err
	}
	d.Valid = true
	return nil
}
