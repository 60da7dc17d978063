package main

import (
	"context"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/flaneur2020/pngme/pngme"
	"github.com/flaneur2020/pngme/pngme/config"
	"github.com/flaneur2020/pngme/pngme/logger"
	"github.com/flaneur2020/pngme/pngme/storage"
)

var (
	configPath string
	cfg        *config.Config
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pngme",
		Short: "Hide and recover messages in PNG chunks",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(configPath, cmd.Flags())
			if err != nil {
				return err
			}
			level, _ := loaded.Level()
			logger.SetLogLevel(level)
			cfg = loaded
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("log-level", "error", "Log level: silent, error, warn, info, debug")
	rootCmd.PersistentFlags().Bool("no-progress", false, "Disable the progress bar when reading images")
	rootCmd.PersistentFlags().Bool("backup", false, "Keep a .bak copy of images that are rewritten")

	// encode command
	encodeCmd := &cobra.Command{
		Use:   "encode <FILE> <CHUNK_TYPE> <MESSAGE> [OUTPUT]",
		Short: "Hide a message in a new chunk. Rewrites FILE unless OUTPUT is given",
		Args:  cobra.RangeArgs(3, 4),
		RunE:  runEncode,
	}

	// decode command
	decodeCmd := &cobra.Command{
		Use:   "decode <FILE> <CHUNK_TYPE>",
		Short: "Print the message stored in the first chunk of CHUNK_TYPE",
		Args:  cobra.ExactArgs(2),
		RunE:  runDecode,
	}

	// remove command
	removeCmd := &cobra.Command{
		Use:   "remove <FILE> <CHUNK_TYPE>",
		Short: "Remove the first chunk of CHUNK_TYPE from FILE",
		Args:  cobra.ExactArgs(2),
		RunE:  runRemove,
	}

	// print command
	printCmd := &cobra.Command{
		Use:   "print <FILE>",
		Short: "List the chunks of FILE",
		Args:  cobra.ExactArgs(1),
		RunE:  runPrint,
	}

	rootCmd.AddCommand(encodeCmd, decodeCmd, removeCmd, printCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode is 2 when the image or chunk type was rejected, 1 for any other
// failure (I/O, config, usage).
func exitCode(err error) int {
	if pngme.IsPngError(err) {
		logger.Debug("Rejected with code %s", pngme.GetErrorCode(err))
		return 2
	}
	return 1
}

func newEditor() pngme.Editor {
	store := storage.NewLocalStorage().WithBackup(cfg.Backup)

	// Progress bar only when stderr is a terminal
	if !cfg.NoProgress && term.IsTerminal(int(os.Stderr.Fd())) {
		var bar *progressbar.ProgressBar
		store = store.WithProgress(func(current, total int64) {
			if bar == nil && total > 0 {
				bar = progressbar.NewOptions64(total,
					progressbar.OptionSetWriter(os.Stderr),
					progressbar.OptionSetDescription("Reading image"),
					progressbar.OptionShowBytes(true),
					progressbar.OptionClearOnFinish(),
				)
			}
			if bar != nil {
				bar.Set64(current)
			}
		})
	}
	return pngme.NewEditor(store)
}

func runEncode(cmd *cobra.Command, args []string) error {
	input, chunkType, message := args[0], args[1], args[2]
	output := ""
	if len(args) > 3 {
		output = args[3]
	}

	if err := newEditor().EncodeFile(context.Background(), input, chunkType, message, output); err != nil {
		return err
	}
	fmt.Println("File was encoded successfully!")
	return nil
}

func runDecode(cmd *cobra.Command, args []string) error {
	chunk, err := newEditor().DecodeFile(context.Background(), args[0], args[1])
	if err != nil {
		return err
	}

	message, err := chunk.DataAsString()
	if err != nil {
		return fmt.Errorf("chunk %s was found but its data is not text: %w", chunk.ChunkType(), err)
	}
	fmt.Println(message)
	return nil
}

func runRemove(cmd *cobra.Command, args []string) error {
	chunk, err := newEditor().RemoveFile(context.Background(), args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Printf("Chunk was removed: %s\n", chunk)
	return nil
}

func runPrint(cmd *cobra.Command, args []string) error {
	p, err := newEditor().PrintFile(context.Background(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Chunks in %s:\n", args[0])
	for _, s := range pngme.Summarize(p) {
		fmt.Printf("%d: %s %s (offset: %d, length: %d, crc: 0x%08x, digest: %s)\n",
			s.Index, s.Type, s.Flags(), s.Offset, s.Length, s.CRC, s.Digest)
	}
	return nil
}
