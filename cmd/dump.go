package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BitPonyLLC/logohue/buildinfo"
	"github.com/BitPonyLLC/logohue/pkg/chart"
	"github.com/BitPonyLLC/logohue/pkg/logocolor"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var dumpCmd = &cobra.Command{
	Use:    "dump",
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, arg := range args {
			err := dump(arg, cmd.OutOrStdout())
			if err != nil {
				return err
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}

func dump(key string, writer io.Writer) error {
	val := ""

	switch key {
	case "config":
		return showConfig(writer)
	case "name":
		val = buildinfo.App.Name
	case "desc":
		val = buildinfo.App.Description
	case "full":
		val = buildinfo.App.FullDescription
	case "version":
		val = buildinfo.All
	case "categories":
		lines := make([]string, 0, len(logocolor.Categories))
		for _, c := range logocolor.Categories {
			lines = append(lines, fmt.Sprintf("%s = %s", c, chart.Mood(c)))
		}
		val = strings.Join(lines, "\n") + "\n"
	default:
		return fmt.Errorf("unknown dump key requested: %s", key)
	}

	_, err := writer.Write([]byte(val))
	if err != nil {
		return err
	}

	return nil
}

func showConfig(writer io.Writer) error {
	tf, err := os.CreateTemp(os.TempDir(), buildinfo.App.Name+"-*.toml")
	if err != nil {
		return err
	}

	defer func() {
		tf.Close()
		os.Remove(tf.Name())
	}()

	err = viper.WriteConfigAs(tf.Name())
	if err != nil {
		return fmt.Errorf("unable to write config: %w", err)
	}

	_, err = tf.Seek(0, io.SeekStart)
	if err != nil {
		return err
	}

	scanner := bufio.NewScanner(tf)
	for scanner.Scan() {
		fmt.Fprintln(writer, scanner.Text())
	}

	return scanner.Err()
}
