package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/assistkit/sanibundle/internal/config"
	"github.com/assistkit/sanibundle/internal/output"
	"github.com/assistkit/sanibundle/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	flagRoot       string
	flagOut        string
	flagMatch      string
	flagExclude    string
	flagFormat     string
	flagReportOut  string
	flagNoManifest bool
)

func addBundleFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagRoot, "root", "", "Project root (default: parent of the executable's directory)")
	cmd.Flags().StringVar(&flagOut, "out", "", "Archive path (default: <root>/"+config.ArtifactName+")")
	cmd.Flags().StringVar(&flagMatch, "match", "", "Exclusion match mode (substring, glob, segment)")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "Extra exclusion patterns (comma-separated)")
	cmd.Flags().StringVar(&flagFormat, "format", "", "Result format (text, json)")
	cmd.Flags().StringVar(&flagReportOut, "report-out", "", "Write the result report to a file instead of stdout")
	cmd.Flags().BoolVar(&flagNoManifest, "no-manifest", false, "Do not write a bundle manifest into the archive")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagRoot != "" {
		m["root"] = flagRoot
	}
	if flagOut != "" {
		m["out"] = flagOut
	}
	if flagMatch != "" {
		m["match"] = flagMatch
	}
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagNoManifest {
		m["manifest"] = "false"
	}
	return m
}

func splitComma(s string) []string {
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

var bundleCmd = &cobra.Command{
	Use:   "bundle",
	Short: "Produce a sanitized archive of the project",
	Long: "Bundle stages a filtered copy of the project, redacts secrets in " +
		"environment and configuration files, and writes one compressed " +
		"archive. Nothing in the source tree is modified.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides(), splitComma(flagExclude))
		if err != nil {
			return err
		}

		result, err := pipeline.Run(cfg, version, reportStage)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		if err := output.WriteResult(result, cfg.Format, flagReportOut); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}
		return nil
	},
}

func reportStage(s pipeline.Stage) {
	switch s {
	case pipeline.StageIdle, pipeline.StageDone, pipeline.StageFailed:
		return
	}
	fmt.Fprintf(os.Stderr, "%s...\n", s)
}

func init() {
	addBundleFlags(bundleCmd)
}
