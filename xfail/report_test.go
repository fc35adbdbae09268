package xfail

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleReport = `Run tests sequentially
test_add (test.module.ClassA) ... ok
test_sub (test.module.ClassA) ... FAIL
----------------------------------------------------------------------
== Tests result: FAILED
`

func TestParseString_When_WellFormedReport(t *testing.T) {
	t.Parallel()

	res, skipped := ParseString(sampleReport)

	assert.Equal(t, "FAILED", res.Overall)
	assert.Equal(t, 0, skipped)
	require.Len(t, res.Tests, 2)
	assert.Equal(t, Test{Name: "test_add", Path: "test.module.ClassA", Result: "ok"}, res.Tests[0])
	assert.Equal(t, Test{Name: "test_sub", Path: "test.module.ClassA", Result: "fail"}, res.Tests[1])
	assert.Equal(t, sampleReport, res.Raw)
}

func TestParseString_When_ResultCaseVaried(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		outcome string
		want    string
	}{
		{name: "upper", outcome: "FAIL", want: "fail"},
		{name: "mixed", outcome: "Fail", want: "fail"},
		{name: "lower", outcome: "ok", want: "ok"},
		{name: "multi_word", outcome: "ERROR -- deterministic", want: "error -- deterministic"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			raw := "Run tests sequentially\n" +
				"test_x (test.module.ClassA) ... " + tc.outcome + "\n" +
				"----------------------------------------------------------------------\n"
			res, _ := ParseString(raw)

			require.Len(t, res.Tests, 1)
			assert.Equal(t, tc.want, res.Tests[0].Result)
		})
	}
}

func TestParseString_When_LinesOutsideBlock(t *testing.T) {
	t.Parallel()

	raw := `noise_before (test.module.ClassA) ... FAIL
Run tests sequentially
test_in (test.module.ClassA) ... ok
----------------------------------------------------------------------
noise_after (test.module.ClassA) ... FAIL
== Tests result: SUCCESS
`
	res, skipped := ParseString(raw)

	require.Len(t, res.Tests, 1)
	assert.Equal(t, "test_in", res.Tests[0].Name)
	assert.Equal(t, "SUCCESS", res.Overall)
	assert.Equal(t, 0, skipped)
}

func TestParseString_When_ReservedAndMalformedLines(t *testing.T) {
	t.Parallel()

	raw := `Run tests sequentially
[ 1/2] test_add
tests completed so far: 1
test_add (test.module.ClassA) ... ok
partial line only

test_sub (test.module.ClassA) ... FAIL
----------------------------------------------------------------------
`
	res, skipped := ParseString(raw)

	require.Len(t, res.Tests, 2)
	assert.Equal(t, "test_add", res.Tests[0].Name)
	assert.Equal(t, "test_sub", res.Tests[1].Name)
	// "partial line only" is a candidate with too few fields; blank lines
	// and progress/summary-reserved lines are not counted.
	assert.Equal(t, 1, skipped)
}

func TestParseString_When_RepeatedDelimiters(t *testing.T) {
	t.Parallel()

	raw := `Run tests sequentially
test_a (test.module.ClassA) ... ok
----------------------------------------------------------------------
ignored_a (test.module.ClassA) ... FAIL
Run tests sequentially
test_b (test.module.ClassB) ... FAIL
----------------------------------------------------------------------
----------------------------------------------------------------------
ignored_b (test.module.ClassB) ... FAIL
== Tests result: FAILED
`
	res, _ := ParseString(raw)

	require.Len(t, res.Tests, 2)
	assert.Equal(t, "test_a", res.Tests[0].Name)
	assert.Equal(t, "test_b", res.Tests[1].Name)
	assert.Equal(t, "FAILED", res.Overall)
}

func TestParseString_When_OverallHasTrailingText(t *testing.T) {
	t.Parallel()

	res, _ := ParseString("== Tests result: FAILURE then 3 re-run\n")

	assert.Equal(t, "FAILURE", res.Overall)
}

func TestParseString_When_EmptyInput(t *testing.T) {
	t.Parallel()

	res, skipped := ParseString("")

	assert.Empty(t, res.Overall)
	assert.Empty(t, res.Tests)
	assert.Equal(t, 0, skipped)
}

func TestParseString_When_CalledTwice_ResultsAreIndependent(t *testing.T) {
	t.Parallel()

	first, _ := ParseString(sampleReport)
	second, _ := ParseString("Run tests sequentially\n" +
		"test_only (test.module.ClassB) ... ok\n" +
		"----------------------------------------------------------------------\n")

	first.Tests = append(first.Tests, Test{Name: "mutated"})

	require.Len(t, second.Tests, 1)
	assert.Equal(t, "test_only", second.Tests[0].Name)
}

func TestParseStream_When_Reader(t *testing.T) {
	t.Parallel()

	res, skipped, err := ParseStream(strings.NewReader(sampleReport))

	require.NoError(t, err)
	assert.Equal(t, 0, skipped)
	assert.Len(t, res.Tests, 2)
}
