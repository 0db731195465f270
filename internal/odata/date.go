package odata

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	datePrefix = "/Date("
	dateSuffix = ")"

	// dateOffsetLength is the length of a "+hhmm" or "-hhmm" suffix inside the token.
	dateOffsetLength = 5
)

// ErrInvalidDate is returned for values that do not carry an epoch-millisecond token.
var ErrInvalidDate = errors.New("invalid date token")

// ConvertDate turns a backend date such as "/Date(1700000000000)/" or "/Date(1700000000000+0000)/"
// into the UTC calendar date "2023-11-14". Empty values stay empty. The offset never shifts the date.
func ConvertDate(value string) (string, error) {
	if value == "" {
		return "", nil
	}

	millis, err := parseDateToken(value)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}

	return time.UnixMilli(millis).UTC().Format(time.DateOnly), nil
}

func parseDateToken(value string) (int64, error) {
	body, ok := strings.CutPrefix(value, datePrefix)
	if !ok {
		return 0, errors.New("missing prefix")
	}

	end := strings.Index(body, dateSuffix)
	if end < 0 {
		return 0, errors.New("missing terminator")
	}

	if trailer := body[end+len(dateSuffix):]; trailer != "" && trailer != "/" {
		return 0, errors.New("unexpected trailer")
	}

	token := body[:end]
	if n := len(token); n > dateOffsetLength && (token[n-dateOffsetLength] == '+' || token[n-dateOffsetLength] == '-') {
		if !isDigits(token[n-dateOffsetLength+1:]) {
			return 0, errors.New("malformed offset")
		}
		token = token[:n-dateOffsetLength]
	}

	if !isDigits(strings.TrimPrefix(token, "-")) {
		return 0, errors.New("malformed milliseconds")
	}

	return strconv.ParseInt(token, 10, 64)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}

	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}
