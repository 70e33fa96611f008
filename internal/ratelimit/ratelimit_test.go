package ratelimit

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/namelens/gh-whenreset/internal/errors"
)

const mixedResources = `{
  "resources": {
    "core": {"remaining": 0, "reset": 100},
    "search": {"remaining": 1, "reset": 200},
    "graphql": {"remaining": 0, "reset": 150},
    "invalid_type": "nope",
    "invalid_shape": {"remaining": "0", "reset": 300}
  }
}`

func mustResources(t *testing.T, doc string) Resources {
	t.Helper()
	payload, err := ParsePayload([]byte(doc), "stdin")
	require.NoError(t, err)
	resources, err := payload.Resources()
	require.NoError(t, err)
	return resources
}

func TestConsideredBucketsDefaultFiltersExhausted(t *testing.T) {
	resources := mustResources(t, mixedResources)

	got := slices.Collect(ConsideredBuckets(resources, false))
	require.Equal(t, []Bucket{
		{Name: "core", Remaining: 0, Reset: 100},
		{Name: "graphql", Remaining: 0, Reset: 150},
	}, got)
}

func TestConsideredBucketsAllIncludesAllValid(t *testing.T) {
	resources := mustResources(t, mixedResources)

	got := slices.Collect(ConsideredBuckets(resources, true))
	require.Equal(t, []Bucket{
		{Name: "core", Remaining: 0, Reset: 100},
		{Name: "search", Remaining: 1, Reset: 200},
		{Name: "graphql", Remaining: 0, Reset: 150},
	}, got)
}

func TestBucketsSkipsMalformedEntries(t *testing.T) {
	resources := mustResources(t, `{"resources": {
		"float_reset": {"remaining": 0, "reset": 1.5},
		"exp_reset": {"remaining": 0, "reset": 1e3},
		"bool_remaining": {"remaining": false, "reset": 10},
		"missing_reset": {"remaining": 0},
		"null_entry": null,
		"array_entry": [1, 2],
		"ok": {"remaining": 0, "reset": 42, "limit": 60}
	}}`)

	got := slices.Collect(Buckets(resources))
	require.Equal(t, []Bucket{{Name: "ok", Remaining: 0, Reset: 42}}, got)
}

func TestConsideredBucketsStopsEarly(t *testing.T) {
	resources := mustResources(t, mixedResources)

	var seen []string
	for bucket := range ConsideredBuckets(resources, true) {
		seen = append(seen, bucket.Name)
		if len(seen) == 2 {
			break
		}
	}
	require.Equal(t, []string{"core", "search"}, seen)
}

func TestLatest(t *testing.T) {
	resources := mustResources(t, mixedResources)

	selected, ok := Latest(ConsideredBuckets(resources, false))
	require.True(t, ok)
	require.Equal(t, "graphql", selected.Name)

	selected, ok = Latest(ConsideredBuckets(resources, true))
	require.True(t, ok)
	require.Equal(t, "search", selected.Name)
}

func TestLatestTieFirstSeenWins(t *testing.T) {
	resources := mustResources(t, `{"resources": {
		"search": {"remaining": 0, "reset": 500},
		"core": {"remaining": 0, "reset": 500},
		"graphql": {"remaining": 0, "reset": 100}
	}}`)

	selected, ok := Latest(ConsideredBuckets(resources, false))
	require.True(t, ok)
	require.Equal(t, "search", selected.Name)
}

func TestLatestEmpty(t *testing.T) {
	resources := mustResources(t, `{"resources": {"core": {"remaining": 3, "reset": 1}}}`)

	_, ok := Latest(ConsideredBuckets(resources, false))
	require.False(t, ok)
}

func TestParsePayloadErrors(t *testing.T) {
	_, err := ParsePayload([]byte("not-json"), "stdin")
	require.Error(t, err)
	require.True(t, apperrors.HasCode(err, apperrors.CodeInvalidInput))
	require.Contains(t, apperrors.Message(err), "Failed to parse JSON from stdin")

	_, err = ParsePayload([]byte(""), "gh api rate_limit")
	require.Error(t, err)
	require.Contains(t, apperrors.Message(err), "Failed to parse JSON from gh api rate_limit")

	_, err = ParsePayload([]byte("[]"), "stdin")
	require.Error(t, err)
	require.Equal(t, "Input JSON must be an object", apperrors.Message(err))
}

func TestPayloadResourcesMissing(t *testing.T) {
	for _, doc := range []string{`{"rate": {}}`, `{"resources": []}`, `{"resources": "core"}`} {
		payload, err := ParsePayload([]byte(doc), "stdin")
		require.NoError(t, err)

		_, err = payload.Resources()
		require.Error(t, err, doc)
		require.True(t, apperrors.HasCode(err, apperrors.CodeValidation))
		require.Equal(t, "missing object field: resources", apperrors.Message(err))
	}
}

func TestBucketsDuplicateNameKeepsLastValueAtFirstPosition(t *testing.T) {
	resources := mustResources(t, `{"resources": {
		"core": {"remaining": 0, "reset": 900},
		"graphql": {"remaining": 0, "reset": 500},
		"core": {"remaining": 0, "reset": 100}
	}}`)

	got := slices.Collect(Buckets(resources))
	require.Equal(t, []Bucket{
		{Name: "core", Remaining: 0, Reset: 100},
		{Name: "graphql", Remaining: 0, Reset: 500},
	}, got)

	selected, ok := Latest(ConsideredBuckets(resources, false))
	require.True(t, ok)
	require.Equal(t, Bucket{Name: "graphql", Remaining: 0, Reset: 500}, selected)
}

func TestBucketsDuplicateNameLastValueMalformed(t *testing.T) {
	resources := mustResources(t, `{"resources": {
		"core": {"remaining": 0, "reset": 900},
		"search": {"remaining": 0, "reset": 10},
		"core": "gone"
	}}`)

	got := slices.Collect(Buckets(resources))
	require.Equal(t, []Bucket{{Name: "search", Remaining: 0, Reset: 10}}, got)
}

func TestBucketsDuplicateFieldLastWins(t *testing.T) {
	resources := mustResources(t, `{"resources": {
		"core": {"remaining": 5, "reset": 1, "remaining": 0, "reset": 7}
	}}`)

	got := slices.Collect(ConsideredBuckets(resources, false))
	require.Equal(t, []Bucket{{Name: "core", Remaining: 0, Reset: 7}}, got)
}

func TestPayloadResourcesDuplicateKeyLastWins(t *testing.T) {
	payload, err := ParsePayload([]byte(`{"resources": "x", "resources": {"core": {"remaining": 0, "reset": 3}}}`), "stdin")
	require.NoError(t, err)

	resources, err := payload.Resources()
	require.NoError(t, err)
	require.Equal(t, []Bucket{{Name: "core", Remaining: 0, Reset: 3}}, slices.Collect(Buckets(resources)))

	payload, err = ParsePayload([]byte(`{"resources": {"core": {"remaining": 0, "reset": 3}}, "resources": []}`), "stdin")
	require.NoError(t, err)

	_, err = payload.Resources()
	require.Error(t, err)
	require.Equal(t, "missing object field: resources", apperrors.Message(err))
}
