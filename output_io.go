package cepac

import "os"

// AppendToOutputFile creates path if it does not exist and appends b to
// it, syncing before return. Every flat-file output writer in this
// package funnels through here, the same append-or-create contract as
// the teacher's csv_logger.go: AppendToFile.
func AppendToOutputFile(path string, b []byte) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(b); err != nil {
		return err
	}
	return f.Sync()
}
