package utils

import "time"

// TruncateToSecond drops sub-second precision from a timestamp. Ledger
// rows are stamped at second precision only.
func TruncateToSecond(t time.Time) time.Time {
	return t.Truncate(time.Second)
}
