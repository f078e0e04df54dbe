package cmd

import (
	"errors"
	"fmt"

	"locplot/internal/app"
	"locplot/internal/git"
	"locplot/internal/shell"
	"locplot/internal/tags"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// newTagsCmd 创建 tags 子命令，列出 plot 将要遍历的发布标签（旧到新）。
func newTagsCmd(global *globalOptions) *cobra.Command {
	var releases int

	tagsCmd := &cobra.Command{
		Use:   "tags <repository>",
		Short: "列出将被遍历的发布标签",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := global.load(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("releases") {
				cfg.Releases = releases
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			client := git.NewClient(shell.NewSubprocess(cfg.Git.Timeout, logger), cfg.Git.Binary)
			tagSet, err := app.NewRunner(client, nil, cmd.OutOrStdout(), logger).Tags(cmd.Context(), args[0], cfg.Releases)
			if errors.Is(err, tags.ErrNoReleases) {
				color.New(color.FgYellow).Fprintln(cmd.OutOrStdout(), "No releases found!")
				return nil
			}
			if err != nil {
				return err
			}

			for _, tag := range tagSet {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), tag); err != nil {
					return err
				}
			}
			return nil
		},
	}

	tagsCmd.Flags().IntVar(&releases, "releases", tags.DefaultLimit, "最多列出的最新发布数量")

	return tagsCmd
}
