package service

import (
	"github.com/google/uuid"
)

// QRCodeService defines the interface for tip QR code generation and parsing
type QRCodeService interface {
	// GenerateTipQR renders a PNG QR code that lets other players tip the recipient
	GenerateTipQR(recipientID uuid.UUID) ([]byte, error)

	// ParseTipQR decodes the scanned payload and returns the recipient ID
	ParseTipQR(payload string) (uuid.UUID, error)
}
