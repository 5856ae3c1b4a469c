package qrcode

import (
	"net/url"
	"path"
	"strings"

	"gahana/config"
	"gahana/internal/domain/service"
	"gahana/internal/errors"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

const (
	defaultSize    = 256
	defaultBaseURL = "https://hamrogahana.com"
	storePathPart  = "stores"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
	baseURL              *url.URL
}

// NewQRCodeService creates a QR code service from the qrcode config section.
func NewQRCodeService(cfg *config.Config) (service.QRCodeService, error) {
	qrCfg := config.QRCodeConfig{}
	if cfg.QRCode != nil {
		qrCfg = *cfg.QRCode
	}

	size := qrCfg.Size
	if size <= 0 {
		size = defaultSize
	}

	rawBase := qrCfg.BaseURL
	if rawBase == "" {
		rawBase = defaultBaseURL
	}
	baseURL, err := url.Parse(rawBase)
	if err != nil || baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, errors.Errorf("invalid qrcode base url %q", rawBase)
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: recoveryLevel(qrCfg.ErrorCorrectionLevel),
		baseURL:              baseURL,
	}, nil
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

// GenerateStoreQR encodes the public link of a store as a PNG.
func (s *qrcodeService) GenerateStoreQR(storeID uuid.UUID) ([]byte, error) {
	if storeID == uuid.Nil {
		return nil, errors.New("store id is required")
	}

	pngBytes, err := qrcode.Encode(s.storeURL(storeID), s.errorCorrectionLevel, s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate QR code")
	}

	return pngBytes, nil
}

// ParseStoreQR accepts a scanned store link of the form <base>/stores/<id>.
func (s *qrcodeService) ParseStoreQR(qrData string) (uuid.UUID, error) {
	link, err := url.Parse(strings.TrimSpace(qrData))
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to parse QR code data")
	}
	if link.Host != s.baseURL.Host {
		return uuid.Nil, errors.Errorf("QR code points to unknown host %q", link.Host)
	}

	dir, last := path.Split(strings.TrimSuffix(link.Path, "/"))
	if path.Base(dir) != storePathPart {
		return uuid.Nil, errors.Errorf("QR code is not a store link: %s", link.Path)
	}

	storeID, err := uuid.Parse(last)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to parse store ID")
	}

	return storeID, nil
}

func (s *qrcodeService) storeURL(storeID uuid.UUID) string {
	return s.baseURL.JoinPath(storePathPart, storeID.String()).String()
}
