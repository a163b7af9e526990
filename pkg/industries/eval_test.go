package industries

import (
	"regexp"
	"testing"

	"github.com/jordanlanch/industrycatalog/pkg/models"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// evalFilter reports whether the stored form of rec satisfies filter.
// Supported: equality, $or, $in and case-insensitive regexes, with array
// fields matching when any element matches.
func evalFilter(t *testing.T, rec models.Industry, filter bson.D) bool {
	t.Helper()

	raw, err := bson.Marshal(rec)
	require.NoError(t, err)

	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))

	return evalDoc(t, doc, filter)
}

func evalDoc(t *testing.T, doc bson.M, filter bson.D) bool {
	for _, e := range filter {
		if e.Key == "$or" {
			matched := false
			for _, clause := range e.Value.(bson.A) {
				if evalDoc(t, doc, clause.(bson.D)) {
					matched = true
					break
				}
			}
			if !matched {
				return false
			}
			continue
		}
		if !evalField(t, doc[e.Key], e.Value) {
			return false
		}
	}
	return true
}

func evalField(t *testing.T, actual, cond interface{}) bool {
	switch c := cond.(type) {
	case primitive.Regex:
		require.Equal(t, "i", c.Options)
		re := regexp.MustCompile("(?i)" + c.Pattern)
		return matchAny(actual, re.MatchString)
	case bson.D:
		require.Len(t, c, 1)
		require.Equal(t, "$in", c[0].Key)
		for _, v := range c[0].Value.([]string) {
			if matchAny(actual, func(s string) bool { return s == v }) {
				return true
			}
		}
		return false
	case string:
		return matchAny(actual, func(s string) bool { return s == c })
	default:
		t.Fatalf("unsupported condition %T", cond)
		return false
	}
}

func matchAny(actual interface{}, match func(string) bool) bool {
	switch v := actual.(type) {
	case string:
		return match(v)
	case bson.A:
		for _, el := range v {
			if s, ok := el.(string); ok && match(s) {
				return true
			}
		}
	}
	return false
}
