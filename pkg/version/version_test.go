package version_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/macropower/pgn/pkg/version"
)

func TestGetVersion(t *testing.T) {
	t.Parallel()

	assert.NotEmpty(t, version.GetVersion())
	assert.Contains(t, version.Info(), version.GoVersion)
	assert.Contains(t, version.Info(), version.GoOS+"/"+version.GoArch)
}
