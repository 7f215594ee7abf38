package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "contractplus",
	Short: "ContractPlus CLI",
	Long:  `A CLI tool to interact with the ContractPlus contract management server.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.contractplus.yaml)")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".contractplus")

		// Create config file if it doesn't exist
		configPath := filepath.Join(home, ".contractplus.yaml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			f, err := os.Create(configPath)
			if err != nil {
				fmt.Printf("Warning: failed to create config file: %v\n", err)
			} else {
				f.Close()
			}
		}
	}

	viper.AutomaticEnv()
	viper.ReadInConfig()
}

func serverURL() string {
	url := viper.GetString("server_url")
	if url == "" {
		url = "http://localhost:8080"
	}
	return url
}

func main() {
	Execute()
}
