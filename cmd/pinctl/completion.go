package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
)

var supportedShells = []string{"bash", "zsh", "fish", "powershell"}

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate and install shell completion scripts",
	Long: `Generate shell completion scripts for pinctl.

With a shell argument the script is written to stdout:
  source <(pinctl completion bash)
  pinctl completion fish | source

With --install the script is installed for the current user. Running without
arguments detects your shell and prints setup instructions.`,
	ValidArgs: supportedShells,
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	Run: func(cmd *cobra.Command, args []string) {
		install, _ := cmd.Flags().GetBool("install")
		out := cmd.OutOrStdout()

		shell := ""
		if len(args) > 0 {
			shell = args[0]
		} else {
			shell = detectShell()
			if shell == "" {
				fmt.Fprintln(out, "❌ Could not detect your shell automatically")
				fmt.Fprintf(out, "\n🔍 Please specify your shell explicitly: pinctl completion [%s]\n", strings.Join(supportedShells, "|"))
				return
			}
			if !install {
				showCompletionInstructions(out, shell)
				return
			}
		}

		if install {
			home, err := os.UserHomeDir()
			if err != nil {
				GetLogger().Error("Failed to install completion", "error", err)
				os.Exit(1)
			}
			if err := installCompletion(cmd.Root(), shell, home, out); err != nil {
				GetLogger().Error("Failed to install completion", "error", err)
				os.Exit(1)
			}
			return
		}

		if err := writeCompletion(cmd.Root(), shell, out); err != nil {
			GetLogger().Error("Failed to generate completion", "error", err)
			os.Exit(1)
		}
	},
}

func init() {
	completionCmd.Flags().BoolP("install", "i", false, "Install completion for the current user")
}

// detectShell guesses the user's shell from the environment
func detectShell() string {
	if shell := os.Getenv("SHELL"); shell != "" {
		shellName := filepath.Base(shell)
		for _, s := range []string{"bash", "zsh", "fish"} {
			if strings.Contains(shellName, s) {
				return s
			}
		}
	}

	if runtime.GOOS == "windows" && os.Getenv("PSModulePath") != "" {
		return "powershell"
	}
	return ""
}

// writeCompletion writes the completion script for shell
func writeCompletion(root *cobra.Command, shell string, w io.Writer) error {
	switch shell {
	case "bash":
		return root.GenBashCompletionV2(w, true)
	case "zsh":
		return root.GenZshCompletion(w)
	case "fish":
		return root.GenFishCompletion(w, true)
	case "powershell":
		return root.GenPowerShellCompletionWithDesc(w)
	default:
		return fmt.Errorf("unsupported shell: %s", shell)
	}
}

func showCompletionInstructions(w io.Writer, shell string) {
	fmt.Fprintf(w, "🚀 Setting up %s completion for pinctl\n\n", shell)

	switch shell {
	case "bash":
		fmt.Fprintln(w, "Current session:   source <(pinctl completion bash)")
		fmt.Fprintln(w, "Permanent:         pinctl completion bash --install")
		fmt.Fprintln(w, "\nThe bash-completion package must be installed.")
	case "zsh":
		fmt.Fprintln(w, "Current session:   source <(pinctl completion zsh)")
		fmt.Fprintln(w, "Permanent:         pinctl completion zsh --install")
		fmt.Fprintln(w, "\nIf completion does not work, ensure compinit is loaded:")
		fmt.Fprintln(w, "   echo 'autoload -Uz compinit && compinit' >> ~/.zshrc")
	case "fish":
		fmt.Fprintln(w, "Current session:   pinctl completion fish | source")
		fmt.Fprintln(w, "Permanent:         pinctl completion fish --install")
	case "powershell":
		fmt.Fprintln(w, "Current session:   pinctl completion powershell | Out-String | Invoke-Expression")
		fmt.Fprintln(w, "Permanent:         pinctl completion powershell >> $PROFILE")
	default:
		fmt.Fprintf(w, "❌ Unknown shell: %s\n", shell)
		fmt.Fprintf(w, "\nSupported shells: %s\n", strings.Join(supportedShells, ", "))
	}
}

// installCompletion installs the script under home for shells with a per-user
// completion directory, or adds a source line to the shell rc file
func installCompletion(root *cobra.Command, shell, home string, out io.Writer) error {
	var script strings.Builder
	if err := writeCompletion(root, shell, &script); err != nil {
		return err
	}

	switch shell {
	case "bash":
		return writeCompletionFile(filepath.Join(home, ".local", "share", "bash-completion", "completions", "pinctl"), script.String(), out)
	case "fish":
		return writeCompletionFile(filepath.Join(home, ".config", "fish", "completions", "pinctl.fish"), script.String(), out)
	case "zsh":
		return appendSourceLine(filepath.Join(home, ".zshrc"), "source <(pinctl completion zsh)", out)
	default:
		return fmt.Errorf("automatic installation is not supported for %s; run 'pinctl completion %s >> $PROFILE'", shell, shell)
	}
}

func writeCompletionFile(path, script string, out io.Writer) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create completion directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(script), 0600); err != nil {
		return fmt.Errorf("failed to write completion file: %w", err)
	}
	fmt.Fprintf(out, "✅ Completion installed to %s\n", path)
	fmt.Fprintln(out, "🔄 Restart your shell for changes to take effect")
	return nil
}

// appendSourceLine adds line to the rc file unless a pinctl completion line is already there
func appendSourceLine(rc, line string, out io.Writer) error {
	if content, err := os.ReadFile(rc); err == nil && strings.Contains(string(content), "pinctl completion") {
		fmt.Fprintf(out, "✅ Completion already configured in %s\n", rc)
		return nil
	}

	f, err := os.OpenFile(rc, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", rc, err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "\n# pinctl completion\n%s\n", line); err != nil {
		return err
	}
	fmt.Fprintf(out, "✅ Added completion to %s\n", rc)
	fmt.Fprintf(out, "🔄 Restart your shell or run: source %s\n", rc)
	return nil
}
