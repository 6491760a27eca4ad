package main

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sys/cpu"

	"github.com/coregx/regexbuilder/internal/version"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "regexbuilder version %s\n", version.Version)
			fmt.Fprintf(out, "  commit: %s\n", version.Commit)
			fmt.Fprintf(out, "  built:  %s\n", version.Date)
			fmt.Fprintf(out, "  go:     %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			fmt.Fprintf(out, "  engine: %s\n", a.cfg.Engine.Kind)
			fmt.Fprintf(out, "  simd:   %s\n", simdFeatures())
		},
	}
}

// simdFeatures lists the CPU features the coregex scanners can use.
func simdFeatures() string {
	var features []string
	switch runtime.GOARCH {
	case "amd64":
		if cpu.X86.HasSSSE3 {
			features = append(features, "ssse3")
		}
		if cpu.X86.HasAVX2 {
			features = append(features, "avx2")
		}
	case "arm64":
		if cpu.ARM64.HasASIMD {
			features = append(features, "asimd")
		}
	}
	if len(features) == 0 {
		return "none"
	}
	return strings.Join(features, " ")
}
