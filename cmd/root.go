package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "golang-ddnsd",
	Short: "golang-ddnsd is a dynamic-DNS update daemon for dyn.dns.he.net compatible APIs",
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
