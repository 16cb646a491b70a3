package kv

import (
	"context"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/oraclelabs/dapi-server/config/params"
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
	"go.opencensus.io/trace"
)

// Backup the database to outputDir, or to the backups directory inside the
// data directory when outputDir is empty.
// Example: $DATADIR/backups/dapiserver_backup_1650000000.backup
func (s *Store) Backup(ctx context.Context, outputDir string, permissionOverride bool) error {
	_, span := trace.StartSpan(ctx, "DapiDB.Backup")
	defer span.End()

	backupsDir := outputDir
	if backupsDir == "" {
		backupsDir = path.Join(s.databasePath, params.DapiConfig().BackupsDirName)
	}
	if err := handleBackupDir(backupsDir, permissionOverride); err != nil {
		return err
	}
	backupPath := path.Join(backupsDir, fmt.Sprintf("dapiserver_backup_%d.backup", time.Now().UnixNano()))
	var size int64
	if err := s.db.View(func(tx *bolt.Tx) error {
		size = tx.Size()
		return tx.CopyFile(backupPath, 0600)
	}); err != nil {
		return errors.Wrap(err, "could not write backup")
	}
	backupsCreated.Inc()
	log.WithField("backup", backupPath).WithField("size", humanize.Bytes(uint64(size))).Info("Wrote backup database")
	return nil
}

// handleBackupDir creates the backups directory. An existing directory with
// permissions looser than 0700 is rejected unless permissionOverride is set,
// in which case it is tightened.
func handleBackupDir(dir string, permissionOverride bool) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0700)
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return errors.Errorf("backup path %s is not a directory", dir)
	}
	if info.Mode().Perm()&0077 == 0 {
		return nil
	}
	if !permissionOverride {
		return errors.Errorf("backup directory %s has permissions %o, expected 0700", dir, info.Mode().Perm())
	}
	return os.Chmod(dir, 0700)
}
