package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/sqlbook/sqlbook/internal/report"
)

// AssertGolden compares a result set's canonical JSON against a golden file.
// The golden file is stored in testdata/golden/{name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Golden files serve as the source of truth for the documented output of
// each catalog query: every cell of every row, in order, with money at
// exactly two decimal places.
//
// Returns an error if serialization fails. Test failure (via goldie)
// occurs if the output doesn't match the golden file.
func AssertGolden(t *testing.T, name string, rs *report.ResultSet) error {
	t.Helper()

	data, err := rs.MarshalCanonical()
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)

	return nil
}
