package store_test

import "github.com/nhle/classify/internal/model"

func fieldNames(verr *model.ValidationError) []string {
	names := make([]string, len(verr.Fields))
	for i, f := range verr.Fields {
		names[i] = f.Field
	}
	return names
}
