package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pdf-ocr/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the saved settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(cfgPath)
		if err != nil {
			return err
		}

		key := "(not set)"
		if cfg.APIKey != "" {
			key = "(set)"
		}
		fmt.Printf("config file:  %s\n", cfgPath)
		fmt.Printf("api_key:      %s\n", key)
		fmt.Printf("provider:     %s\n", cfg.Provider)
		fmt.Printf("base_url:     %s\n", cfg.BaseURL)
		fmt.Printf("model:        %s\n", cfg.Model)
		fmt.Printf("output_dir:   %s\n", cfg.OutputDir)
		fmt.Printf("poppler_path: %s\n", cfg.PopplerPath)
		fmt.Printf("raster_dpi:   %d\n", cfg.RasterDPI)
		fmt.Printf("dark_mode:    %t\n", cfg.DarkMode)
		fmt.Printf("debug:        %t\n", cfg.Debug)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change settings and save them",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(cfgPath)
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("api-key") {
			key, _ := cmd.Flags().GetString("api-key")
			cfg.SetAPIKey(key)
		}
		if cmd.Flags().Changed("provider") {
			cfg.Provider, _ = cmd.Flags().GetString("provider")
		}
		if cmd.Flags().Changed("base-url") {
			cfg.BaseURL, _ = cmd.Flags().GetString("base-url")
		}
		if cmd.Flags().Changed("model") {
			cfg.Model, _ = cmd.Flags().GetString("model")
		}
		if cmd.Flags().Changed("output-dir") {
			cfg.OutputDir, _ = cmd.Flags().GetString("output-dir")
		}
		if cmd.Flags().Changed("poppler-path") {
			cfg.PopplerPath, _ = cmd.Flags().GetString("poppler-path")
		}
		if cmd.Flags().Changed("raster-dpi") {
			cfg.RasterDPI, _ = cmd.Flags().GetInt("raster-dpi")
		}
		if cmd.Flags().Changed("dark-mode") {
			cfg.DarkMode, _ = cmd.Flags().GetBool("dark-mode")
		}
		if cmd.Flags().Changed("debug") {
			cfg.Debug, _ = cmd.Flags().GetBool("debug")
		}

		if err := cfg.Save(cfgPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("Settings saved to %s\n", cfgPath)
		return nil
	},
}

func init() {
	configSetCmd.Flags().String("api-key", "", "API credential (stored base64-encoded)")
	configSetCmd.Flags().String("provider", "", "llm provider: openai or ollama")
	configSetCmd.Flags().String("base-url", "", "llm endpoint base URL")
	configSetCmd.Flags().String("model", "", "llm model name")
	configSetCmd.Flags().String("output-dir", "", "directory for generated documents")
	configSetCmd.Flags().String("poppler-path", "", "directory containing the pdftoppm binary")
	configSetCmd.Flags().Int("raster-dpi", 0, "rasterization resolution")
	configSetCmd.Flags().Bool("dark-mode", false, "dark display theme")
	configSetCmd.Flags().Bool("debug", false, "verbose logging")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
