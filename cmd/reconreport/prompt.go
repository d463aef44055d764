package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"golang.org/x/term"

	"reconreport/internal/core/options"
)

// isInteractive 标准输入是否为终端, 便于测试替换
var isInteractive = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// selectOutputMode 展示二选一菜单, 只调用一次
// 标准输入不是终端时无法显示菜单, 退回终端输出
func selectOutputMode(out io.Writer) (options.OutputMode, error) {
	fmt.Fprintln(out, pterm.NewStyle(pterm.FgMagenta, pterm.Bold).Sprint("=== MENU ==="))

	if !isInteractive() {
		pterm.Warning.WithWriter(out).Println("stdin is not a terminal, showing output in the terminal")
		return options.OutputTerminal, nil
	}

	labels := make([]string, 0, len(options.MenuOptions))
	for _, o := range options.MenuOptions {
		labels = append(labels, o.Label)
	}

	selected, err := pterm.DefaultInteractiveSelect.
		WithOptions(labels).
		WithDefaultOption(labels[0]).
		Show("Select output")
	if err != nil {
		return "", fmt.Errorf("output selection failed: %w", err)
	}

	mode, err := options.ModeForLabel(selected)
	if err != nil {
		return "", err
	}
	fmt.Fprintln(out, pterm.Green(fmt.Sprintf(" You chose: %s\n", selected)))
	return mode, nil
}
