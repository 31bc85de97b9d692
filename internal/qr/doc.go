// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package qr renders QR codes as terminal text.
//
// The MFA enrollment flow shows an otpauth provisioning URL as a scannable
// code. Each pair of QR module rows becomes one text row using half-block
// characters, which keeps the code roughly square in a terminal cell grid.
package qr
