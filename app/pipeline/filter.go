package pipeline

import (
	"fmt"
	"strings"

	"github.com/ainews-tools/harvester/app/article"
	"github.com/ainews-tools/harvester/app/config"
)

// filtered reports whether a record is dropped by the source's filter
// rules, and why. Excludes win over includes; a filter with includes
// drops everything that matches none of them.
func filtered(a article.Article, filters []config.Filter) (bool, string) {
	for _, filter := range filters {
		value := fieldValue(a, filter.Field)

		for _, exclude := range filter.Excludes {
			if matches(value, exclude) {
				return true, fmt.Sprintf("excluded by %s filter: contains %q", filter.Field, exclude)
			}
		}

		if len(filter.Includes) > 0 {
			matched := false
			for _, include := range filter.Includes {
				if matches(value, include) {
					matched = true
					break
				}
			}
			if !matched {
				return true, fmt.Sprintf("excluded by %s filter: does not contain any of %v", filter.Field, filter.Includes)
			}
		}
	}

	return false, ""
}

func matches(value, pattern string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(pattern))
}

func fieldValue(a article.Article, field string) string {
	switch field {
	case "title":
		return a.Title
	case "description":
		return a.ShortDescription
	default:
		return ""
	}
}
