// Package attachment turns file content into inline payloads suitable for
// embedding in a JSON request body.
package attachment

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"sync"
)

// File is a named, readable handle to attachment content.
type File struct {
	Name string
	Type string
	Data io.Reader
}

// Encoded is the submission shape: FileData carries the base64 payload,
// the part a browser would place after the data-URL comma.
type Encoded struct {
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
	FileData string `json:"fileData"`
}

// Encode reads one file and produces its inline payload. Read failures
// identify the offending file by name.
func Encode(file File) (Encoded, error) {
	content, err := io.ReadAll(file.Data)
	if err != nil {
		return Encoded{}, fmt.Errorf("failed to read %s: %w", file.Name, err)
	}
	return Encoded{
		FileName: file.Name,
		FileType: file.Type,
		FileData: base64.StdEncoding.EncodeToString(content),
	}, nil
}

// EncodeAll encodes every file concurrently and waits for all of them.
// A single failure fails the whole batch: nothing is returned and the
// submission carrying these attachments must be aborted.
func EncodeAll(ctx context.Context, files []File) ([]Encoded, error) {
	if len(files) == 0 {
		return []Encoded{}, nil
	}

	encoded := make([]Encoded, len(files))
	errs := make([]error, len(files))

	var wg sync.WaitGroup
	for i, file := range files {
		wg.Add(1)
		go func(i int, file File) {
			defer wg.Done()
			encoded[i], errs[i] = Encode(file)
		}(i, file)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return encoded, nil
}
