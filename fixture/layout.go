package fixture

import (
	"path/filepath"
	"time"
)

const (
	DayFolderLayout  = "20060102"
	MinuteFileLayout = "1504"
	FileExt          = ".csv"

	minutesPerDay = 24 * 60
)

// DayFolderName formats the calendar date of t as YYYYMMDD.
func DayFolderName(t time.Time) string {
	return t.Format(DayFolderLayout)
}

// MinuteFileName formats the time of day of t as HHMM.csv (24-hour clock).
func MinuteFileName(t time.Time) string {
	return t.Format(MinuteFileLayout) + FileExt
}

// DayStart returns the date of base advanced by day calendar days, at the
// hour and minute of base. Minute offsets never carry over into the next day.
func DayStart(base time.Time, day int) time.Time {
	d := base.AddDate(0, 0, day)
	return time.Date(d.Year(), d.Month(), d.Day(), base.Hour(), base.Minute(), 0, 0, base.Location())
}

// Entry is one planned minute file.
type Entry struct {
	Day    time.Time
	Minute time.Time
	Dir    string
	Name   string
}

// Path joins the entry onto the dataset root.
func (e Entry) Path(root string) string {
	return filepath.Join(root, e.Dir, e.Name)
}

// Plan lists every file a run writes, in write order.
func Plan(start time.Time, days, filesPerDay int) []Entry {
	if days <= 0 || filesPerDay <= 0 {
		return nil
	}
	out := make([]Entry, 0, days*filesPerDay)
	for d := 0; d < days; d++ {
		ds := DayStart(start, d)
		dir := DayFolderName(ds)
		for i := 0; i < filesPerDay; i++ {
			ts := ds.Add(time.Duration(i) * time.Minute)
			out = append(out, Entry{
				Day:    ds,
				Minute: ts,
				Dir:    dir,
				Name:   MinuteFileName(ts),
			})
		}
	}
	return out
}
