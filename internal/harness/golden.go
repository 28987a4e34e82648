package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// RunWithGolden executes a scenario, checks its expectations, and
// compares the rendered outcome against testdata/golden/{name}.golden.
func RunWithGolden(t *testing.T, sc *Scenario) {
	t.Helper()

	out, err := Run(sc)
	if err != nil {
		t.Fatalf("scenario %s: %v", sc.Name, err)
	}

	for _, failure := range Check(sc, out) {
		t.Errorf("scenario %s: %s", sc.Name, failure)
	}

	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"))
	g.Assert(t, sc.Name, []byte(RenderReport(sc, out)))
}
