package render

import (
	"os"

	"github.com/mattn/go-isatty"

	"github.com/thanhminhmr/go-testerror/configuration"
)

// ColorMode decides whether rendered reports contain ANSI styling.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

type Config struct {
	Color ColorMode `env:"RENDER_COLOR" validate:"oneof=auto always never"`
}

func init() {
	configuration.SetDefault("RENDER_COLOR", "never")
}

// Enabled resolves the mode for output written to file. Auto enables colors
// only for a terminal and only when NO_COLOR is unset.
func (m ColorMode) Enabled(file *os.File) bool {
	switch m {
	case ColorAlways:
		return true
	case ColorAuto:
		if _, set := os.LookupEnv("NO_COLOR"); set || file == nil {
			return false
		}
		return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
	default:
		return false
	}
}
