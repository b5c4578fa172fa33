package ruleset

import "github.com/goliatone/go-formvalidator/internal/labels"

// Options configures the Builder. They are constructed by the public adapter
// in pkg/ruleset and passed into New.
type Options struct {
	Labeler func(string) string
	Customs *CustomRegistry
}

func defaultOptions() Options {
	return Options{
		Labeler: labels.FromName,
		Customs: NewCustomRegistry(),
	}
}
