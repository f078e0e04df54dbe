package cmd

import (
	"fmt"
	"os/exec"
	"strings"
	"text/tabwriter"

	"locplot/internal/counter"

	"github.com/spf13/cobra"
)

// newCountersCmd 创建 counters 子命令。
// 命令用于展示支持的计数器以及它们的可执行文件位置；配置了 counter.binary 时按配置查找。
func newCountersCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "counters",
		Short: "展示支持的计数器及可执行文件位置",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := global.load(cmd)
			if err != nil {
				return err
			}

			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			if _, err := fmt.Fprintln(writer, "COUNTER\tBINARY"); err != nil {
				return err
			}

			configured := strings.ToLower(strings.TrimSpace(cfg.Counter.Kind))
			for _, kind := range counter.Kinds() {
				binary := kind
				if kind == configured && strings.TrimSpace(cfg.Counter.Binary) != "" {
					binary = cfg.Counter.Binary
				}

				location, err := exec.LookPath(binary)
				if err != nil {
					location = fmt.Sprintf("(%s not found)", binary)
				}
				if _, err := fmt.Fprintf(writer, "%s\t%s\n", kind, location); err != nil {
					return err
				}
			}

			return writer.Flush()
		},
	}
}
