package main

import (
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/thanhminhmr/go-testerror/configuration"
	"github.com/thanhminhmr/go-testerror/exception"
	"github.com/thanhminhmr/go-testerror/jserror"
	"github.com/thanhminhmr/go-testerror/render"
	"github.com/thanhminhmr/go-testerror/testerror"
)

const stdinName = "-"

const (
	errorOpen   = exception.String("Failed to open report")
	errorColor  = exception.String("Unsupported color mode")
	errorOutput = exception.String("Failed to write report")
	errorStdin  = exception.String("Stdin can only be read once")
)

var (
	formatInput string
	formatColor string
	formatRaw   bool
)

var formatCmd = &cobra.Command{
	Use:   "format [file...]",
	Short: "Render error reports read from files or stdin",
	Long: `format reads serialized error reports (JSON, or YAML for .yaml and .yml
files) and prints them with the test harness frames hidden. With no file, or
with "-", the report is read from stdin.`,
	RunE: runFormat,
}

func init() {
	formatCmd.Flags().StringVarP(&formatInput, "input", "i", "", "input format: json or yaml (default: by file extension)")
	formatCmd.Flags().StringVar(&formatColor, "color", "", "color output: auto, always or never (default: $RENDER_COLOR)")
	formatCmd.Flags().BoolVar(&formatRaw, "raw", false, "render every frame without abbreviation")
	rootCmd.AddCommand(formatCmd)
}

func runFormat(cmd *cobra.Command, args []string) error {
	renderer, err := newRenderer(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{stdinName}
	}
	stdinAt := slices.Index(args, stdinName)
	if stdinAt >= 0 && slices.Contains(args[stdinAt+1:], stdinName) {
		return errorStdin
	}
	out := cmd.OutOrStdout()
	for index, name := range args {
		report, err := readReport(cmd.InOrStdin(), name)
		if err != nil {
			return err
		}
		text := formatReport(report, renderer, formatRaw)
		if index > 0 {
			text = "\n" + text
		}
		if _, err := io.WriteString(out, text+"\n"); err != nil {
			return errorOutput.AddCause(err)
		}
	}
	return nil
}

// formatReport renders report, abbreviated unless raw is set.
func formatReport(report *jserror.Error, renderer testerror.Renderer, raw bool) string {
	if raw {
		return renderer.Render(report)
	}
	return testerror.FormatTestError(report, renderer)
}

func newRenderer(out io.Writer) (testerror.Renderer, error) {
	var config render.Config
	if err := configuration.Load(&config); err != nil {
		return nil, err
	}
	mode := config.Color
	if formatColor != "" {
		mode = render.ColorMode(formatColor)
	}
	switch mode {
	case render.ColorAuto, render.ColorAlways, render.ColorNever:
	default:
		return nil, errorColor.SetMessage("%q", mode)
	}
	file, _ := out.(*os.File)
	return render.New(mode.Enabled(file)), nil
}

func readReport(stdin io.Reader, name string) (*jserror.Error, error) {
	format := jserror.FormatFromPath(name)
	if formatInput != "" {
		parsed, err := jserror.ParseFormat(formatInput)
		if err != nil {
			return nil, err
		}
		format = parsed
	}
	if name == stdinName {
		return jserror.Decode(stdin, format)
	}
	file, err := os.Open(name)
	if err != nil {
		return nil, errorOpen.AddCause(err)
	}
	defer file.Close()
	report, err := jserror.Decode(file, format)
	if err != nil {
		return nil, errorOpen.SetMessage("%s", name).AddCause(err)
	}
	return report, nil
}
