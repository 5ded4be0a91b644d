package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/kwargs/pkg/value"
	"github.com/spf13/cobra"
)

// readDoc decodes path, or stdin when path is "" or "-". The encoding comes
// from the file extension, falling back to fallback.
func readDoc(cmd *cobra.Command, path string, fallback value.Encoding) (value.Value, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return value.Null(), fmt.Errorf("failed to read input: %w", err)
	}

	v, err := value.Decode(data, encodingFor(path, fallback))
	if err != nil {
		name := path
		if name == "" || name == "-" {
			name = "stdin"
		}
		return value.Null(), fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return v, nil
}

func encodingFor(path string, fallback value.Encoding) value.Encoding {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return value.EncodingJSON
	case ".yaml", ".yml":
		return value.EncodingYAML
	}
	return fallback
}

func writeDoc(cmd *cobra.Command, v value.Value, enc value.Encoding) error {
	data, err := value.Encode(v, enc, true)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
