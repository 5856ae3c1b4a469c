package service

import (
	"github.com/google/uuid"
)

// QRCodeService generates and parses store share codes.
type QRCodeService interface {
	// GenerateStoreQR returns a PNG encoding the store's share link.
	GenerateStoreQR(storeID uuid.UUID) ([]byte, error)

	// ParseStoreQR extracts the store ID from scanned share link data.
	ParseStoreQR(qrData string) (uuid.UUID, error)
}
