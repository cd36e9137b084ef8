package utils

import (
	"errors"
	"strconv"
	"strings"
)

func CalculateTotalPages(total int64, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

func CalculateOffset(page, perPage int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * perPage
}

// ClampPage resolves a raw page parameter against the result size. Malformed
// values fall back to the first page, out-of-range values snap to the nearest
// valid page, and an empty result still has one (empty) page.
func ClampPage(raw string, total int64, perPage int) int {
	lastPage := CalculateTotalPages(total, perPage)
	if lastPage < 1 {
		lastPage = 1
	}

	page, err := strconv.Atoi(raw)
	if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(raw, "-") {
		return lastPage
	}
	if err != nil || page < 1 {
		return 1
	}
	if page > lastPage {
		return lastPage
	}
	return page
}
