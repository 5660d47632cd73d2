package sftemplate

import (
	"fmt"
	"os"

	"github.com/jdcrensh/sftemplate/pkg/config"
	"github.com/jdcrensh/sftemplate/pkg/errors"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	var (
		path    string
		apiName string
		force   bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: MsgInitShort,
		Long:  MsgInitLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(path); err == nil && !force {
				return errors.Newf(errors.ErrAlreadyExists, MsgErrConfigExists, path)
			}

			content, err := config.Starter(apiName)
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, content, 0644); err != nil {
				return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path)
			}

			fmt.Fprintf(cmd.OutOrStdout(), MsgConfigWritten, path)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", config.DefaultFileNames[0], MsgFlagInitPath)
	cmd.Flags().StringVar(&apiName, "api-name", "", MsgFlagAPIName)
	cmd.Flags().BoolVar(&force, "force", false, MsgFlagForce)
	return cmd
}
