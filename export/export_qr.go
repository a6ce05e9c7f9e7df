package export

import (
	"fmt"
	"os"

	qrcode "github.com/skip2/go-qrcode"
)

const qrImageSize = 512

// WriteQR saves a QR code PNG encoding the part number and returns the
// created file path.
func WriteQR(dir, partNum string) (string, error) {
	if partNum == "" {
		return "", fmt.Errorf("part number must not be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := UniquePath(dir, partNum+"_qr", "png")
	if err := qrcode.WriteFile(partNum, qrcode.Medium, qrImageSize, path); err != nil {
		return "", fmt.Errorf("failed to write QR code for %s: %w", partNum, err)
	}
	return path, nil
}
