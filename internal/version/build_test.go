package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromBuild(t *testing.T) {
	v := FromBuild()
	assert.Equal(t, "vercheck", v.Application)
	assert.Equal(t, valueNotProvided, v.Version)
	assert.Equal(t, runtime.Version(), v.GoVersion)
	assert.Equal(t, "vercheck/"+valueNotProvided, v.UserAgent())
}
