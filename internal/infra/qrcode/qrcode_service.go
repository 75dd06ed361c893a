package qrcode

import (
	"encoding/json"
	"fmt"
	"strings"

	"plaza/config"
	"plaza/internal/domain/service"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

const (
	defaultSize = 256
	tipType     = "tip"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// TipPayload is the JSON encoded in a tip QR code
type TipPayload struct {
	RecipientID string `json:"recipient_id"`
	Type        string `json:"type"`
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(cfg *config.Config) service.QRCodeService {
	size, level := defaultSize, ""
	if cfg != nil && cfg.QRCode != nil {
		if cfg.QRCode.Size > 0 {
			size = cfg.QRCode.Size
		}
		level = cfg.QRCode.ErrorCorrectionLevel
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: recoveryLevel(level),
	}
}

func recoveryLevel(level string) qrcode.RecoveryLevel {
	switch strings.ToUpper(level) {
	case "L":
		return qrcode.Low
	case "Q":
		return qrcode.High
	case "H":
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}

// GenerateTipQR renders the recipient's tip payload as a PNG
func (s *qrcodeService) GenerateTipQR(recipientID uuid.UUID) ([]byte, error) {
	jsonData, err := json.Marshal(TipPayload{
		RecipientID: recipientID.String(),
		Type:        tipType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal QR code data: %w", err)
	}

	qrCode, err := qrcode.New(string(jsonData), s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}

// ParseTipQR parses a scanned payload and returns the recipient ID
func (s *qrcodeService) ParseTipQR(payload string) (uuid.UUID, error) {
	var data TipPayload
	if err := json.Unmarshal([]byte(strings.TrimSpace(payload)), &data); err != nil {
		return uuid.Nil, fmt.Errorf("failed to unmarshal QR code data: %w", err)
	}

	if data.Type != tipType {
		return uuid.Nil, fmt.Errorf("invalid QR code type: %s", data.Type)
	}

	recipientID, err := uuid.Parse(data.RecipientID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to parse recipient ID: %w", err)
	}

	return recipientID, nil
}
