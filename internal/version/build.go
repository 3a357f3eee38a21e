/*
Package version contains build information injected at link time (via -ldflags "-X ...").
*/
package version

import (
	"fmt"
	"runtime"

	"github.com/anchore/vercheck/internal"
)

const valueNotProvided = "[not provided]"

// all variables here are provided as build-time arguments, with clear default values
var version = valueNotProvided
var gitCommit = valueNotProvided
var gitTreeState = valueNotProvided
var buildDate = valueNotProvided
var platform = fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)

// Version describes the running binary.
type Version struct {
	Application  string `json:"application"`
	Version      string `json:"version"`
	GitCommit    string `json:"gitCommit"`
	GitTreeState string `json:"gitTreeState"`
	BuildDate    string `json:"buildDate"`
	GoVersion    string `json:"goVersion"`
	Compiler     string `json:"compiler"`
	Platform     string `json:"platform"`
}

func FromBuild() Version {
	return Version{
		Application:  internal.ApplicationName,
		Version:      version,
		GitCommit:    gitCommit,
		GitTreeState: gitTreeState,
		BuildDate:    buildDate,
		GoVersion:    runtime.Version(),
		Compiler:     runtime.Compiler,
		Platform:     platform,
	}
}

// UserAgent identifies the application on outbound requests.
func (v Version) UserAgent() string {
	return fmt.Sprintf("%s/%s", v.Application, v.Version)
}
