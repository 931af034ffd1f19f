// Package qrpayload owns the snapshot embedded in a team's printed QR code.
// The payload is produced exactly once, at registration, from the validated
// input. After that the printed code is static: scans only ever read the
// teamId back out of it, everything else is re-read from storage.
package qrpayload

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

var ErrInvalidPayload = errors.New("INVALID_QR_PAYLOAD")

type Member struct {
	Name        string `json:"name"`
	CollegeName string `json:"collegeName"`
	IsFromIIITS bool   `json:"isFromIIITS"`
}

type FoodStatus struct {
	Lunch  string `json:"lunch"`
	Dinner string `json:"dinner"`
	Snacks string `json:"snacks"`
}

type Payload struct {
	TeamID     string     `json:"teamId"`
	TeamName   string     `json:"teamName"`
	Leader     string     `json:"leader"`
	Members    []Member   `json:"members"`
	Status     string     `json:"status"`
	FoodStatus FoodStatus `json:"foodStatus"`
	Allotment  string     `json:"allotment"`
	CreatedAt  string     `json:"createdAt"`
}

func Encode(p Payload) (string, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encoding qr payload: %w", err)
	}
	return string(raw), nil
}

// Decode parses a scanned payload. Only TeamID is trusted by callers; a
// payload that does not carry one is as useless as one that does not parse.
func Decode(raw string) (*Payload, error) {
	var p Payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, ErrInvalidPayload
	}
	if p.TeamID == "" {
		return nil, ErrInvalidPayload
	}
	return &p, nil
}

const imageSize = 256

// ImageDataURL renders the stored payload as a PNG QR code wrapped in a
// data URL, ready for an <img> tag in the admin console.
func ImageDataURL(raw string) (string, error) {
	png, err := qrcode.Encode(raw, qrcode.Medium, imageSize)
	if err != nil {
		return "", fmt.Errorf("rendering qr code: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
