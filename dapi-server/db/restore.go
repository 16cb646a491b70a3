package db

import (
	"io"
	"os"
	"path"

	"github.com/dustin/go-humanize"
	"github.com/oraclelabs/dapi-server/cmd"
	"github.com/oraclelabs/dapi-server/config/params"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

const dbExistsConfirmText = "A database file already exists in the target directory. " +
	"Are you sure that you want to overwrite it"

// Restore a dAPI server database from a backup file.
func Restore(cliCtx *cli.Context) error {
	sourceFile := cliCtx.String(cmd.RestoreSourceFileFlag.Name)
	targetDir := cliCtx.String(cmd.RestoreTargetDirFlag.Name)
	return restore(sourceFile, targetDir, func() (bool, error) {
		return cmd.ConfirmAction(dbExistsConfirmText, "Restore aborted")
	})
}

func restore(sourceFile, targetDir string, confirm func() (bool, error)) error {
	if sourceFile == "" {
		return errors.New("no backup file to restore from")
	}
	restoreFile := path.Join(targetDir, params.DapiConfig().DatabaseFileName)
	info, err := os.Stat(restoreFile)
	switch {
	case err == nil && info.Mode().IsRegular():
		ok, err := confirm()
		if err != nil {
			return errors.Wrap(err, "could not confirm overwrite")
		}
		if !ok {
			return nil
		}
	case err != nil && !os.IsNotExist(err):
		return errors.Wrapf(err, "could not check if database exists in %s", restoreFile)
	}
	if err := os.MkdirAll(targetDir, 0700); err != nil {
		return err
	}
	size, err := copyFile(sourceFile, restoreFile)
	if err != nil {
		return errors.Wrap(err, "could not copy backup")
	}
	log.WithField("size", humanize.Bytes(uint64(size))).Info("Restore completed successfully")
	return nil
}

func copyFile(src, dst string) (int64, error) {
	in, err := os.Open(src) // #nosec G304
	if err != nil {
		return 0, err
	}
	defer func() {
		if err := in.Close(); err != nil {
			log.WithError(err).Error("Could not close backup file")
		}
	}()
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600) // #nosec G304
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(out, in)
	if err != nil {
		_ = out.Close()
		return 0, err
	}
	return n, out.Close()
}
