package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/stigoleg/jiggler/internal/config"
	"github.com/stigoleg/jiggler/internal/jiggle"
)

// gen-docs writes shell completions, a man page and a sample config file
// from the flags the binary actually registers.

const (
	appName        = config.AppName
	appDescription = "Keeps the session active by nudging the mouse cursor a few pixels at a randomized interval."
)

type flagDef = config.FlagDef

func main() {
	flags := append(config.Flags(), flagDef{Short: "-h", Long: "--help", Desc: "Show help message"})

	if err := writeCompletions(flags); err != nil {
		log.Fatalf("gen-docs: completions: %v", err)
	}
	if err := writeMan(flags); err != nil {
		log.Fatalf("gen-docs: man page: %v", err)
	}
	if err := writeSampleConfig(); err != nil {
		log.Fatalf("gen-docs: sample config: %v", err)
	}
}

func writeSampleConfig() error {
	if err := os.MkdirAll("docs", 0o755); err != nil {
		return err
	}
	return config.WriteFile(filepath.Join("docs", appName+".yaml"), jiggle.DefaultConfig())
}

func synopsis(flags []flagDef) string {
	var parts []string
	for _, f := range flags {
		var names []string
		if f.Short != "" {
			names = append(names, roffEscape(f.Short))
		}
		if f.Long != "" {
			names = append(names, roffEscape(f.Long))
		}
		part := strings.Join(names, "|")
		if f.Arg != "" {
			part += " " + f.Arg
		}
		parts = append(parts, "["+part+"]")
	}
	return strings.Join(parts, " ")
}

func roffEscape(s string) string {
	return strings.ReplaceAll(s, "-", "\\-")
}

func writeCompletions(flags []flagDef) error {
	base := filepath.Join("docs", "completions")
	if err := os.MkdirAll(base, 0o755); err != nil {
		return err
	}

	// Bash
	var bash strings.Builder
	bash.WriteString("_" + appName + "() {\n")
	bash.WriteString("  local cur prev opts\n")
	bash.WriteString("  COMPREPLY=()\n")
	bash.WriteString("  cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	var opts []string
	for _, f := range flags {
		if f.Short != "" {
			opts = append(opts, f.Short)
		}
		if f.Long != "" {
			opts = append(opts, f.Long)
		}
	}
	bash.WriteString("  opts=\"" + strings.Join(opts, " ") + "\"\n")
	bash.WriteString("  if [[ ${cur} == -* ]] ; then\n")
	bash.WriteString("    COMPREPLY=( $(compgen -W \"${opts}\" -- ${cur}) )\n")
	bash.WriteString("    return 0\n")
	bash.WriteString("  fi\n")
	bash.WriteString("}\n")
	bash.WriteString("complete -F _" + appName + " " + appName + "\n")
	if err := os.WriteFile(filepath.Join(base, appName+".bash"), []byte(bash.String()), 0o644); err != nil {
		return err
	}

	// Zsh
	var zsh strings.Builder
	zsh.WriteString("#compdef " + appName + "\n")
	zsh.WriteString("_arguments ")
	var parts []string
	for _, f := range flags {
		form := fmt.Sprintf("'%s[%s]%s'", zFlagName(f), f.Desc, zArgSuffix(f.Arg))
		parts = append(parts, form)
	}
	zsh.WriteString(strings.Join(parts, " ") + "\n")
	if err := os.WriteFile(filepath.Join(base, "_"+appName), []byte(zsh.String()), 0o644); err != nil {
		return err
	}

	// Fish
	var fish strings.Builder
	fish.WriteString("complete -c " + appName + " -f\n")
	for _, f := range flags {
		fish.WriteString(fishFlagLine(f))
	}
	if err := os.WriteFile(filepath.Join(base, appName+".fish"), []byte(fish.String()), 0o644); err != nil {
		return err
	}

	return nil
}

func zFlagName(f flagDef) string {
	if f.Arg != "" {
		// zsh requires = for options with arguments
		if f.Long != "" {
			return f.Long + "="
		}
		return f.Short + "="
	}
	if f.Long != "" {
		return f.Long
	}
	return f.Short
}

func zArgSuffix(arg string) string {
	if arg == "" {
		return ""
	}
	return ":value:" + strings.Trim(arg, "<>")
}

func fishFlagLine(f flagDef) string {
	var b strings.Builder
	b.WriteString("complete -c ")
	b.WriteString(appName)
	if f.Short != "" {
		b.WriteString(" -s ")
		b.WriteString(strings.TrimPrefix(f.Short, "-"))
	}
	if f.Long != "" {
		b.WriteString(" -l ")
		b.WriteString(strings.TrimPrefix(f.Long, "--"))
	}
	if f.Arg != "" {
		b.WriteString(" -r")
	} else {
		b.WriteString(" -f")
	}
	b.WriteString(" -d \"")
	b.WriteString(escapeDoubleQuotes(f.Desc))
	b.WriteString("\"\n")
	return b.String()
}

func escapeDoubleQuotes(s string) string {
	return strings.ReplaceAll(s, "\"", "\\\"")
}

func writeMan(flags []flagDef) error {
	if err := os.MkdirAll("man", 0o755); err != nil {
		return err
	}
	var b strings.Builder
	b.WriteString(".TH \"" + strings.ToUpper(appName) + "\" \"1\" \"\" \"" + appName + "\" \"User Commands\"\n")
	b.WriteString(".SH NAME\n" + appName + " - " + appDescription + "\n")
	b.WriteString(".SH SYNOPSIS\n.B " + appName + "\n")
	b.WriteString(synopsis(flags) + "\n")
	b.WriteString(".SH DESCRIPTION\n" + appDescription + "\n")
	b.WriteString(".SH OPTIONS\n")
	for _, f := range flags {
		names := f.Short
		if f.Long != "" {
			if names != "" {
				names += ", "
			}
			names += f.Long
		}
		if f.Arg != "" {
			names += " " + f.Arg
		}
		b.WriteString(".TP\n\\fB" + names + "\\fR\n" + f.Desc + "\n")
	}
	b.WriteString(".SH EXAMPLES\n")
	b.WriteString(".TP\n\\fB" + appName + "\\fR\nOpen the control panel, paused.\n")
	b.WriteString(".TP\n\\fB" + appName + " -s -i 45s -a 5\\fR\nStart at once, jiggling up to 5 pixels roughly every 45 seconds.\n")
	b.WriteString(".TP\n\\fB" + appName + " --headless -d 2h30m\\fR\nRun without the panel for 2 hours 30 minutes.\n")
	b.WriteString(".TP\n\\fB" + appName + " -f ~/.config/jiggler.yaml\\fR\nRead settings from a file and apply edits to it while running.\n")
	b.WriteString(".SH FILES\nThe config file accepts the keys \\fBinterval\\fR, \\fBamplitude\\fR and \\fBrandomize\\fR. Flags given on the command line win over the file.\n")
	b.WriteString(".SH SEE ALSO\nProject homepage: https://github.com/stigoleg/jiggler\n")
	return os.WriteFile(filepath.Join("man", appName+".1"), []byte(b.String()), 0o644)
}
