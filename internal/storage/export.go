package storage

import (
	"encoding/json"
	"io"
	"os"
)

// Export writes the run summary as indented JSON.
func Export(w io.Writer, meta *RunMetadata) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func ExportFile(path string, meta *RunMetadata) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := Export(file, meta); err != nil {
		return err
	}
	return file.Close()
}
