package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// CheckResultsCompatibility reports whether results written by resultsVersion
// can be read by an engine at engineVersion. Result files keep their layout
// within a minor version, so major and minor must match and patches may differ.
// "main" on either side skips the check. A missing resultsVersion means the
// results predate version stamping and are rejected.
func CheckResultsCompatibility(engineVersion, resultsVersion string) error {
	engineVersion = strings.TrimPrefix(engineVersion, "v")
	resultsVersion = strings.TrimPrefix(resultsVersion, "v")

	if engineVersion == "main" || resultsVersion == "main" {
		return nil
	}

	engine, err := semver.NewVersion(engineVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeIncompatibleResults, err, "invalid engine version %q", engineVersion)
	}

	results, err := semver.NewVersion(resultsVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeIncompatibleResults, err, "invalid results version %q", resultsVersion)
	}

	if engine.Major() != results.Major() {
		return errors.Newf(errors.ErrCodeIncompatibleResults,
			"major version mismatch: engine is %d.x.x but results were written by %d.x.x", engine.Major(), results.Major())
	}

	if engine.Minor() != results.Minor() {
		return errors.Newf(errors.ErrCodeIncompatibleResults,
			"minor version mismatch: engine is %d.%d.x but results were written by %d.%d.x",
			engine.Major(), engine.Minor(), results.Major(), results.Minor())
	}

	return nil
}
