package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/havara/internal/archive"
	"codeberg.org/snonux/havara/internal/audio"
	"codeberg.org/snonux/havara/internal/cli"
	"codeberg.org/snonux/havara/internal/processor"
	"codeberg.org/snonux/havara/internal/voices"
	"codeberg.org/snonux/havara/internal/vowelize"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Execute command
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	if err := cli.ApplyConfig(cmd); err != nil {
		return err
	}
	ctx := cmd.Context()

	// Handle --archive flag
	if flags.Archive {
		path, err := archive.ArchiveOutput(flags.OutputDir)
		if err != nil {
			return fmt.Errorf("failed to archive output: %w", err)
		}
		fmt.Printf("Output directory archived to: %s\n", path)
		return nil
	}

	// Handle --clear-cache flag
	if flags.ClearCache {
		path, err := cli.DefaultCachePath()
		if err != nil {
			return err
		}
		n, err := vowelize.ClearCache(ctx, path)
		if err != nil {
			return err
		}
		fmt.Printf("Removed %d cached vowelizations from %s\n", n, path)
		return nil
	}

	// Handle --list-voices flag
	if flags.ListVoices {
		return listVoices(ctx, flags)
	}

	if flags.BatchFile == "" && len(args) == 0 {
		return cmd.Help()
	}

	options, err := flags.ProcessorOptions()
	if err != nil {
		return err
	}

	vowelizerConfig, err := flags.VowelizerConfig()
	if err != nil {
		return err
	}
	vowelizer, err := vowelize.New(ctx, vowelizerConfig)
	if err != nil {
		return fmt.Errorf("failed to create vowelizer: %w", err)
	}
	defer vowelize.Close(vowelizer)

	// A phonetic-only run needs no synthesis credentials
	var provider audio.Provider
	if !options.PhoneticOnly {
		provider, err = newProvider(ctx, flags)
		if err != nil {
			return err
		}
		defer audio.Close(provider)
	}

	proc := processor.NewProcessor(vowelizer, provider, options)

	if flags.BatchFile != "" {
		if _, err := proc.ProcessBatch(ctx, flags.BatchFile); err != nil {
			return err
		}
	} else if _, err := proc.ProcessSingle(ctx, args[0]); err != nil {
		return err
	}

	// The processor has already printed the transcription
	if options.PhoneticOnly {
		return nil
	}
	fmt.Printf("\nDone! Audio saved to: %s\n", options.OutputDir)
	return nil
}

func newProvider(ctx context.Context, flags *cli.Flags) (audio.Provider, error) {
	config, err := flags.AudioConfig()
	if err != nil {
		return nil, err
	}

	provider, err := audio.NewProvider(ctx, config)
	if errors.Is(err, audio.ErrMissingKey) {
		return nil, fmt.Errorf("%w: set GOOGLE_API_KEY or OPENAI_API_KEY, use --api-key, or configure it in .havara.yaml", err)
	}
	if err != nil {
		return nil, err
	}

	if err := provider.IsAvailable(); err != nil {
		return nil, fmt.Errorf("audio provider %s is not available: %w", provider.Name(), err)
	}
	return provider, nil
}

func listVoices(ctx context.Context, flags *cli.Flags) error {
	provider, err := newProvider(ctx, flags)
	if err != nil {
		return err
	}
	defer audio.Close(provider)

	source, _ := provider.(audio.VoiceLister)
	return voices.NewLister(provider.Name(), source, os.Stdout).ListAvailableVoices(ctx, flags.Language)
}
