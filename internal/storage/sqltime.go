package storage

import (
	"fmt"
	"time"

	"github.com/julianstephens/pkm/internal/constants"
	"github.com/julianstephens/pkm/internal/utils"
)

// sqlTime scans a timestamp column. Timestamps are stored as wall-clock time,
// so values are reinterpreted in loc whatever zone the driver attached.
type sqlTime struct {
	loc   *time.Location
	Time  time.Time
	Valid bool
}

func newSQLTime(loc *time.Location) *sqlTime {
	return &sqlTime{loc: loc}
}

func (t *sqlTime) Scan(src interface{}) error {
	t.Valid = false
	switch v := src.(type) {
	case nil:
		return nil
	case time.Time:
		t.Time = time.Date(v.Year(), v.Month(), v.Day(), v.Hour(), v.Minute(), v.Second(), v.Nanosecond(), t.loc)
	case string:
		parsed, err := utils.ParseTimestamp(v, t.loc)
		if err != nil {
			return err
		}
		t.Time = parsed
	case []byte:
		parsed, err := utils.ParseTimestamp(string(v), t.loc)
		if err != nil {
			return err
		}
		t.Time = parsed
	default:
		return fmt.Errorf("cannot scan %T into a timestamp", src)
	}
	t.Valid = true
	return nil
}

// sqlDate scans a date column into its YYYY-MM-DD form.
type sqlDate struct {
	String string
}

func (d *sqlDate) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		d.String = ""
	case time.Time:
		d.String = v.Format(constants.DateFormat)
	case string:
		d.String = trimDate(v)
	case []byte:
		d.String = trimDate(string(v))
	default:
		return fmt.Errorf("cannot scan %T into a date", src)
	}
	return nil
}

func trimDate(s string) string {
	if len(s) > len(constants.DateFormat) {
		return s[:len(constants.DateFormat)]
	}
	return s
}

// timestampArg formats t as a timestamp parameter in loc.
func timestampArg(t time.Time, loc *time.Location) string {
	return utils.FormatTimestamp(t.In(loc))
}
