package tui_cmd

import (
	"archivuelo/cmd/cmd_env"
	"archivuelo/tui"
	"context"
	"flag"

	tea "github.com/charmbracelet/bubbletea"
)

func Execute(ctx context.Context, args []string) error {
	tuiCmd := flag.NewFlagSet("tui", flag.ExitOnError)
	flags := cmd_env.RegisterCommonFlags(tuiCmd)
	tuiCmd.Usage = func() {
		PrintUsage()
	}
	if err := tuiCmd.Parse(args); err != nil {
		return err
	}
	// log output would garble the alt screen
	*flags.LogLevel = "silent"
	if err := flags.Apply(); err != nil {
		return err
	}

	env, err := cmd_env.Open(ctx, flags, false)
	if err != nil {
		return err
	}
	defer env.Close(ctx)

	app := tui.NewApp(ctx, env.Repo)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}
