package utils

import (
	qrcode "github.com/skip2/go-qrcode"
)

// GenerateShopQR encode l'URL de la boutique en PNG
func GenerateShopQR(url string) ([]byte, error) {
	return qrcode.Encode(url, qrcode.Medium, 512)
}
