package core

/**
 * status.go - http status classes
 */

const (
	/* Status code used when no status was observed at all */
	StatusNone = 0

	/* Bucket for codes outside 100..599, including StatusNone */
	StatusOther = 0

	Status1xx = 1
	Status2xx = 2
	Status3xx = 3
	Status4xx = 4
	Status5xx = 5

	/* Number of status buckets */
	StatusClasses = 6
)

/**
 * Bucket labels indexed by status class
 */
var StatusClassNames = [StatusClasses]string{"other", "1xx", "2xx", "3xx", "4xx", "5xx"}

/**
 * Maps status code to its bucket. Out of range codes
 * are not an error, they land in StatusOther
 */
func StatusClass(code int) int {
	if code < 100 || code > 599 {
		return StatusOther
	}
	return code / 100
}
