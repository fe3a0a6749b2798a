package export

import (
	"fmt"
	"io"

	qr "github.com/skip2/go-qrcode"
)

// DefaultQRSize is the QR code edge length in pixels.
const DefaultQRSize = 256

// WriteQRCode writes doc as a PNG QR code. Documents beyond QR capacity fail.
func WriteQRCode(w io.Writer, doc []byte, size int) error {
	if len(doc) == 0 {
		return ErrNothingToExport
	}
	if size <= 0 {
		size = DefaultQRSize
	}
	png, err := qr.Encode(string(doc), qr.Low, size)
	if err != nil {
		return fmt.Errorf("failed to encode qr code: %w", err)
	}
	if _, err := w.Write(png); err != nil {
		return fmt.Errorf("failed to write qr code: %w", err)
	}
	return nil
}
