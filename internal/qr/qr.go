// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package qr

import (
	"fmt"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
)

// quietZone is the number of blank modules framing the code. The QR spec
// asks for four; two per side scans fine at terminal sizes and saves columns.
const quietZone = 2

// Render encodes content as a QR code drawn with half-block runes. Dark
// modules are full/half blocks; callers style the string with a
// dark-on-light color pair to keep it scannable.
func Render(content string) (string, error) {
	if content == "" {
		return "", fmt.Errorf("empty QR content")
	}

	code, err := qr.Encode(content, qr.M, qr.Auto)
	if err != nil {
		return "", fmt.Errorf("failed to encode QR: %w", err)
	}
	return draw(code), nil
}

// draw maps two module rows onto one text row:
// top+bottom dark = '█', top dark = '▀', bottom dark = '▄', neither = ' '.
func draw(code barcode.Barcode) string {
	bounds := code.Bounds()
	minX, minY := bounds.Min.X, bounds.Min.Y
	maxX, maxY := bounds.Max.X, bounds.Max.Y

	dark := func(x, y int) bool {
		if x < minX || x >= maxX || y < minY || y >= maxY {
			return false // quiet zone
		}
		r, _, _, _ := code.At(x, y).RGBA()
		return r < 0x8000
	}

	var sb strings.Builder
	for y := minY - quietZone; y < maxY+quietZone; y += 2 {
		for x := minX - quietZone; x < maxX+quietZone; x++ {
			top := dark(x, y)
			bottom := dark(x, y+1)
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteRune(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return strings.TrimRight(sb.String(), "\n")
}
