package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// configDefault 编译进二进制的默认配置内容，首次运行时落盘
var configDefault string

var rootCmd = &cobra.Command{
	Use:   "store-settings-service",
	Short: "Store Settings Service",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.HelpTemplate()
		cmd.Help()
	},
}

func Execute(c string) {
	configDefault = c
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
