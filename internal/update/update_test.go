package update

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeVersion(t *testing.T) {
	t.Run("Should strip tag prefixes", func(t *testing.T) {
		assert.Equal(t, "1.2.3", NormalizeVersion("v1.2.3"))
		assert.Equal(t, "1.2.3", NormalizeVersion("attsup/v1.2.3"))
		assert.Equal(t, "1.2.3", NormalizeVersion("1.2.3"))
	})
}

func TestReleaseVersion(t *testing.T) {
	t.Run("Should expose the normalized tag", func(t *testing.T) {
		r := &Release{TagName: "attsup/v0.4.0"}
		assert.Equal(t, "0.4.0", r.Version())
	})
}
