package cli

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Go      string `json:"go"`
	OS      string `json:"os"`
	Arch    string `json:"arch"`
}

// Set from main via SetVersionInfo. Release builds fill them with ldflags.
var build = BuildInfo{Version: "dev", Commit: "none", Date: "unknown"}

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of tally.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := currentBuild()
		if machineMode {
			return WriteJSONSuccess(cmd.OutOrStdout(), info)
		}
		writeVersion(cmd.OutOrStdout(), info, versionShort)
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "print only the version number")
	rootCmd.AddCommand(versionCmd)
}

// currentBuild fills in the runtime fields. A dev build installed with
// `go install module@version` reports the module version instead.
func currentBuild() BuildInfo {
	info := build
	if info.Version == "dev" {
		if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.Version = bi.Main.Version
		}
	}
	info.Go = runtime.Version()
	info.OS = runtime.GOOS
	info.Arch = runtime.GOARCH
	return info
}

func writeVersion(w io.Writer, info BuildInfo, short bool) {
	if short {
		fmt.Fprintln(w, info.Version)
		return
	}
	fmt.Fprintf(w, "tally %s\ncommit: %s\nbuilt: %s\ngo: %s\nos/arch: %s/%s\n",
		formatVersion(info.Version), info.Commit, info.Date, info.Go, info.OS, info.Arch)
}

// formatVersion adds the 'v' prefix to release versions.
func formatVersion(v string) string {
	if v == "" || v == "dev" || v[0] == 'v' {
		return v
	}
	return "v" + v
}

// SetVersionInfo records the ldflags values from main.
func SetVersionInfo(version, commit, date string) {
	build = BuildInfo{Version: version, Commit: commit, Date: date}
	rootCmd.Version = formatVersion(version)
}
