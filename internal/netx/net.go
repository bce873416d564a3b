// Package netx holds the raw storage-write primitive: a single PUT of encoded
// bytes to a presigned object-storage URL. The URL itself carries the
// authorization; no session credential is attached here.
package netx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
)

// PutPresigned writes body to a presigned URL with a single PUT. Any 2xx
// status is success. No retry is attempted: a presigned URL is single-use and
// the caller must obtain a fresh one before trying again.
func PutPresigned(ctx context.Context, client *http.Client, url string, body []byte, contentType string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)

	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("storage write failed: %s; body: %s", resp.Status, string(b))
	}
	return nil
}
